package harness

import (
	"path/filepath"
	"runtime"

	"github.com/suitekit/suitekit/framework/opt"
)

// abortSignal is the one-shot, per-test non-local exit used by fatal
// assertions. It is thrown with panic and recovered only by the runner
// frame that established it; it carries no payload beyond the identity of
// the test being aborted.
type abortSignal struct {
	test *Test
}

// Assert records the outcome of one assertion and returns value unchanged,
// so non-fatal call sites can branch on the result themselves. It must
// only be called while a test is executing (enforced by panic).
//
// The total assertion count always increments. When value is false, the
// failed count increments and a failure record is appended carrying
// condition, file, line and the current suite and test; if fatal is also
// true and an abort target is established, the remainder of the test body
// is abandoned, though the suite tearDown still runs.
func (c *Context) Assert(value bool, line int, condition, file string, fatal bool) bool {
	if c.curSuite == nil || c.curTest == nil {
		panic(&preconditionError{msg: "Assert called outside an executing test"})
	}

	c.summary.Asserts++
	if !value {
		c.summary.AssertsFailed++
		recordedLine := opt.None[int]()
		if line > 0 {
			recordedLine = opt.Some(line)
		}
		c.addFailure(FailureAssert, recordedLine, condition, file, c.curSuite, c.curTest)

		if fatal && c.curTest.abort != nil {
			panic(c.curTest.abort)
		}
	}
	return value
}

// Check records a non-fatal assertion, capturing the caller's source file
// and line automatically. The test body continues regardless of the
// outcome.
func (c *Context) Check(value bool, condition string) bool {
	return c.assertAtCaller(value, condition, false)
}

// Require records a fatal assertion, capturing the caller's source file
// and line automatically. On failure the remainder of the current test
// body is abandoned.
func (c *Context) Require(value bool, condition string) bool {
	return c.assertAtCaller(value, condition, true)
}

func (c *Context) assertAtCaller(value bool, condition string, fatal bool) bool {
	file, line := "", 0
	if _, f, l, ok := runtime.Caller(2); ok {
		file, line = filepath.Base(f), l
	}
	return c.Assert(value, line, condition, file, fatal)
}
