// Package status defines the closed set of result codes reported by
// suitekit registration and run operations. The zero value OK means
// success; every other code satisfies the error interface, so operations
// return a Code directly where they would otherwise return an error.
package status

import "errors"

// Code identifies the outcome of a registration or run operation.
type Code int

const (
	// OK indicates success. It is never returned as a non-nil error.
	OK Code = iota
	// NoRegistry means no registry is currently active.
	NoRegistry
	// NoSuite means a required suite argument was nil.
	NoSuite
	// NoTest means a required test argument was nil.
	NoTest
	// NoSuiteName means a suite name was empty.
	NoSuiteName
	// NoTestName means a test name was empty.
	NoTestName
	// NoTestBody means a test was registered without a body.
	NoTestBody
	// DuplicateSuite reports that a suite was registered under a name that
	// already exists. The registration still succeeds; the condition is
	// surfaced through the last-error channel only.
	DuplicateSuite
	// DuplicateTest is the test-level analog of DuplicateSuite.
	DuplicateTest
	// OutOfMemory means a configured storage limit was exhausted.
	OutOfMemory
	// SuiteInitFailed means a suite initialization hook returned an error.
	SuiteInitFailed
	// SuiteCleanupFailed means a suite cleanup hook returned an error.
	SuiteCleanupFailed
	// SuiteInactive means a run touched a suite whose active flag is off.
	SuiteInactive
	// TestInactive means a run touched a test whose active flag is off.
	TestInactive
	// TestNotInSuite means the test passed to a single-test run is not
	// owned by the suite it was paired with.
	TestNotInSuite
)

var codeText = map[Code]string{
	OK:                 "success",
	NoRegistry:         "no registry is active",
	NoSuite:            "suite is nil",
	NoTest:             "test is nil",
	NoSuiteName:        "suite name is required",
	NoTestName:         "test name is required",
	NoTestBody:         "test body is required",
	DuplicateSuite:     "a suite with this name is already registered",
	DuplicateTest:      "a test with this name is already registered in the suite",
	OutOfMemory:        "storage limit exhausted",
	SuiteInitFailed:    "suite initialization failed",
	SuiteCleanupFailed: "suite cleanup failed",
	SuiteInactive:      "suite is inactive",
	TestInactive:       "test is inactive",
	TestNotInSuite:     "test is not registered in the suite",
}

func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "unknown status code"
}

// Error makes every Code usable as an error value. Comparisons work with
// errors.Is because Code is comparable.
func (c Code) Error() string { return c.String() }

// Err returns nil for OK and the code itself otherwise.
func (c Code) Err() error {
	if c == OK {
		return nil
	}
	return c
}

// Of extracts the Code carried by an error returned from a suitekit
// operation. It returns OK for nil errors and for errors that do not wrap
// a Code.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return OK
}
