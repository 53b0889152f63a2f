// Package messages maps the fixed message keys used by the engine to
// human-readable text. The engine never hardcodes user-facing strings; it
// asks a LookupFunc for them, so an embedding application can localize the
// labels by installing its own lookup.
package messages

// Key identifies one translatable message.
type Key string

const (
	SuiteInactive      Key = "suite-inactive"
	TestInactive       Key = "test-inactive"
	SuiteInitFailed    Key = "suite-init-failed"
	SuiteCleanupFailed Key = "suite-cleanup-failed"
	UnexpectedPanic    Key = "unexpected-panic"
	SystemSource       Key = "system-source"

	SummaryHeader Key = "summary-header"
	LabelType     Key = "label-type"
	LabelTotal    Key = "label-total"
	LabelRan      Key = "label-ran"
	LabelPassed   Key = "label-passed"
	LabelFailed   Key = "label-failed"
	LabelInactive Key = "label-inactive"
	LabelSuites   Key = "label-suites"
	LabelTests    Key = "label-tests"
	LabelAsserts  Key = "label-asserts"
	LabelNA       Key = "label-na"
	LabelElapsed  Key = "label-elapsed"
	LabelSeconds  Key = "label-seconds"
)

// LookupFunc resolves a message key to display text. Returning "" falls
// back to the built-in table.
type LookupFunc func(Key) string

var english = map[Key]string{
	SuiteInactive:      "Suite inactive",
	TestInactive:       "Test inactive",
	SuiteInitFailed:    "Suite initialization failed - suite skipped",
	SuiteCleanupFailed: "Suite cleanup failed",
	UnexpectedPanic:    "Unexpected panic in test",
	SystemSource:       "suitekit",

	SummaryHeader: "Run Summary:",
	LabelType:     "Type",
	LabelTotal:    "Total",
	LabelRan:      "Ran",
	LabelPassed:   "Passed",
	LabelFailed:   "Failed",
	LabelInactive: "Inactive",
	LabelSuites:   "suites",
	LabelTests:    "tests",
	LabelAsserts:  "asserts",
	LabelNA:       "n/a",
	LabelElapsed:  "Elapsed time = ",
	LabelSeconds:  " seconds",
}

// Default returns the built-in English text for key, or the key itself if
// the key is unknown.
func Default(key Key) string {
	if s, ok := english[key]; ok {
		return s
	}
	return string(key)
}
