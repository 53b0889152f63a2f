package harness

import (
	"iter"

	"github.com/suitekit/suitekit/framework/opt"
)

// FailureKind classifies a FailureRecord.
type FailureKind int

const (
	// FailureAssert records a failed assertion inside a test body.
	FailureAssert FailureKind = iota
	// FailureSuiteInit records a suite initialization hook that returned
	// an error.
	FailureSuiteInit
	// FailureSuiteCleanup records a suite cleanup hook that returned an
	// error.
	FailureSuiteCleanup
	// FailureSuiteInactive records an inactive suite encountered while the
	// fail-on-inactive policy is enabled.
	FailureSuiteInactive
	// FailureTestInactive records an inactive test encountered while the
	// fail-on-inactive policy is enabled.
	FailureTestInactive
	// FailurePanic records a panic that escaped a test body.
	FailurePanic
)

var failureKindNames = map[FailureKind]string{
	FailureAssert:        "assertion failed",
	FailureSuiteInit:     "suite initialization failed",
	FailureSuiteCleanup:  "suite cleanup failed",
	FailureSuiteInactive: "suite inactive",
	FailureTestInactive:  "test inactive",
	FailurePanic:         "test panicked",
}

func (k FailureKind) String() string {
	if s, ok := failureKindNames[k]; ok {
		return s
	}
	return "unknown failure"
}

// FailureRecord is one recorded failure event. Records reference, but do
// not own, the implicated suite and test; they remain valid only while the
// registry that owns those entities is alive, and only until the next run
// begins.
type FailureRecord struct {
	Kind      FailureKind
	Line      opt.Maybe[int]
	Condition string
	File      string
	Suite     *Suite
	Test      *Test
}

// addFailure appends a record to the failure log. When the failure-record
// limit is reached the record is dropped silently and the summary counter
// is left untouched.
func (c *Context) addFailure(kind FailureKind, line opt.Maybe[int], condition, file string, suite *Suite, test *Test) {
	if c.limits.MaxFailureRecords > 0 && len(c.failures) >= c.limits.MaxFailureRecords {
		return
	}
	c.failures = append(c.failures, &FailureRecord{
		Kind:      kind,
		Line:      line,
		Condition: condition,
		File:      file,
		Suite:     suite,
		Test:      test,
	})
	c.summary.FailureRecords++
}

// Failures returns a lazy, restartable traversal of the failure records
// for the current (or most recent) run, in the chronological order they
// occurred. Repeated ranging over the returned sequence yields the same
// elements.
func (c *Context) Failures() iter.Seq[*FailureRecord] {
	records := c.failures
	return func(yield func(*FailureRecord) bool) {
		for _, r := range records {
			if !yield(r) {
				return
			}
		}
	}
}

// FailureCount returns the number of failure records for the current (or
// most recent) run.
func (c *Context) FailureCount() int { return len(c.failures) }
