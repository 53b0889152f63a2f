package harness

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/suitekit/suitekit/framework/messages"
	"github.com/suitekit/suitekit/framework/opt"
	"github.com/suitekit/suitekit/framework/status"
)

// ErrorAction selects whether a multi-suite run stops at the first
// non-success result or continues through the remaining suites. Either
// way, the run's returned error is the first non-success result seen.
type ErrorAction int

const (
	// ContinueOnError runs every remaining suite and test regardless of
	// earlier failures. This is the default.
	ContinueOnError ErrorAction = iota
	// StopOnError abandons the run at the first non-success result.
	StopOnError
)

// Limits bounds the engine's storage. Zero values mean unbounded.
// Exceeding MaxSuites or MaxTests surfaces status.OutOfMemory from the
// registration call; failure records past MaxFailureRecords are dropped.
type Limits struct {
	MaxSuites         int
	MaxTests          int
	MaxFailureRecords int
}

// Context owns all of the mutable state for one logical test collection:
// the active registry, the run state machine, the failure log, the run
// summary, the policies, and the event handler slots. Execution is
// single-threaded and cooperative; a Context is not safe for concurrent
// use and must be serialized externally if ever shared.
type Context struct {
	registry *Registry

	running   bool
	curSuite  *Suite
	curTest   *Test
	startTime time.Time

	failures []*FailureRecord
	summary  Summary

	failOnInactive          bool
	errorAction             ErrorAction
	cleanupAfterInitFailure bool
	limits                  Limits

	clock  Clock
	lookup messages.LookupFunc

	handlers handlerSlots

	lastErr error
}

// New returns a Context with no active registry, the system clock, the
// built-in message table, fail-on-inactive enabled, and the
// continue-on-error action. Call InitializeRegistry or SetRegistry before
// registering suites.
func New() *Context {
	return &Context{
		failOnInactive: true,
		clock:          systemClock{},
		lookup:         messages.Default,
	}
}

var defaultContext = New()

// Default returns the process-wide Context, for applications that do not
// need isolated engine instances.
func Default() *Context { return defaultContext }

// preconditionError marks a fatal programming error: registry mutation
// mid-run, asserting outside a test, a nested run. It is raised with panic
// and deliberately never converted into a recoverable result code.
type preconditionError struct {
	msg string
}

func (e *preconditionError) Error() string { return "harness: " + e.msg }

func (c *Context) mustNotBeRunning(op string) {
	if c.running {
		panic(&preconditionError{msg: op + " is forbidden while a run is active"})
	}
}

// Running reports whether a run is in progress.
func (c *Context) Running() bool { return c.running }

// CurrentSuite returns the suite being run, or nil outside a run.
func (c *Context) CurrentSuite() *Suite { return c.curSuite }

// CurrentTest returns the test being run, or nil when no test body is
// executing.
func (c *Context) CurrentTest() *Test { return c.curTest }

// LastError returns the status recorded by the most recent registration or
// run operation, or nil. Unlike the primary return values, this channel
// also carries secondary conditions: a duplicate-name registration
// succeeds while still reporting status.DuplicateSuite or
// status.DuplicateTest here.
func (c *Context) LastError() error { return c.lastErr }

func (c *Context) setLastError(err error) { c.lastErr = err }

// fail records code as the last error and returns it as the primary error.
func (c *Context) fail(code status.Code) error {
	c.lastErr = code
	return code
}

// FailOnInactive reports the fail-on-inactive policy.
func (c *Context) FailOnInactive() bool { return c.failOnInactive }

// SetFailOnInactive controls whether inactive suites and tests append
// failure records when encountered during a run. Enabled by default.
func (c *Context) SetFailOnInactive(fail bool) { c.failOnInactive = fail }

// ErrorAction reports the current error-action policy.
func (c *Context) ErrorAction() ErrorAction { return c.errorAction }

// SetErrorAction selects the error-action policy for multi-suite runs.
func (c *Context) SetErrorAction(a ErrorAction) { c.errorAction = a }

// CleanupAfterInitFailure reports whether a suite's cleanup hook runs even
// when its initialization hook failed.
func (c *Context) CleanupAfterInitFailure() bool { return c.cleanupAfterInitFailure }

// SetCleanupAfterInitFailure controls whether a failed suite
// initialization still runs the suite's cleanup hook. The tests are
// skipped either way. Disabled by default.
func (c *Context) SetCleanupAfterInitFailure(run bool) { c.cleanupAfterInitFailure = run }

// Limits reports the configured storage bounds.
func (c *Context) Limits() Limits { return c.limits }

// SetLimits bounds the engine's storage; zero fields mean unbounded.
func (c *Context) SetLimits(l Limits) { c.limits = l }

// SetClock replaces the elapsed-time source. A nil clock restores the
// system clock.
func (c *Context) SetClock(clk Clock) {
	if clk == nil {
		clk = systemClock{}
	}
	c.clock = clk
}

// SetMessageLookup replaces the message-lookup function used for the
// human-readable labels the engine emits. A nil lookup restores the
// built-in table.
func (c *Context) SetMessageLookup(lookup messages.LookupFunc) {
	if lookup == nil {
		lookup = messages.Default
	}
	c.lookup = lookup
}

func (c *Context) message(key messages.Key) string {
	if s := c.lookup(key); s != "" {
		return s
	}
	return messages.Default(key)
}

// ClearPreviousResults zeroes the run summary and empties the failure log.
// It is idempotent and is also performed implicitly at the start of every
// run. It must not be called during a run.
func (c *Context) ClearPreviousResults() {
	c.mustNotBeRunning("ClearPreviousResults")
	c.clearResults()
}

func (c *Context) clearResults() {
	c.summary = Summary{}
	c.failures = nil
}

// Elapsed returns the time consumed by the current run so far, or the
// total duration of the most recent run once it has finished.
func (c *Context) Elapsed() time.Duration {
	if c.running {
		return c.clock.Now().Sub(c.startTime)
	}
	return c.summary.Elapsed
}

// RunAll runs every suite in the active registry in registration order.
// Results from any previous run are discarded first. The returned error is
// the first non-success result seen across the whole run, regardless of
// the error-action policy.
func (c *Context) RunAll() error {
	c.mustNotBeRunning("RunAll")
	c.clearResults()
	if c.registry == nil {
		return c.fail(status.NoRegistry)
	}

	c.running = true
	c.startTime = c.clock.Now()

	var result error
	for _, suite := range c.registry.suites {
		err := c.runSingleSuite(suite)
		if result == nil {
			result = err
		}
		if result != nil && c.errorAction == StopOnError {
			break
		}
	}

	c.running = false
	c.summary.Elapsed = c.clock.Now().Sub(c.startTime)
	c.fireAllComplete()

	c.setLastError(result)
	return result
}

// RunSuite runs a single suite, which need not belong to the active
// registry. Results from any previous run are discarded first.
func (c *Context) RunSuite(suite *Suite) error {
	c.mustNotBeRunning("RunSuite")
	c.clearResults()
	if suite == nil {
		return c.fail(status.NoSuite)
	}

	c.running = true
	c.startTime = c.clock.Now()

	result := c.runSingleSuite(suite)

	c.running = false
	c.summary.Elapsed = c.clock.Now().Sub(c.startTime)
	c.fireAllComplete()

	c.setLastError(result)
	return result
}

// RunTest runs one test within its owning suite, wrapped in the suite's
// init and cleanup hooks. The test must be owned by suite. Results from
// any previous run are discarded first.
func (c *Context) RunTest(suite *Suite, test *Test) error {
	c.mustNotBeRunning("RunTest")
	c.clearResults()
	switch {
	case suite == nil:
		return c.fail(status.NoSuite)
	case test == nil:
		return c.fail(status.NoTest)
	}
	if !suite.active {
		c.summary.SuitesInactive++
		if c.failOnInactive {
			c.addFailure(FailureSuiteInactive, opt.None[int](),
				c.message(messages.SuiteInactive), c.message(messages.SystemSource), suite, nil)
		}
		return c.fail(status.SuiteInactive)
	}
	if !suite.owns(test) {
		return c.fail(status.TestNotInSuite)
	}

	c.running = true
	c.startTime = c.clock.Now()
	c.curSuite = suite
	c.curTest = nil
	suite.resetRunCounters()

	start := len(c.failures)
	c.fireSuiteStart(suite)

	var result error
	if err := c.runSuiteInit(suite); err != nil {
		result = err
		if c.cleanupAfterInitFailure {
			_ = c.runSuiteCleanup(suite) // recorded; init failure keeps precedence
		}
	} else {
		result = c.runSingleTest(test)
		if err := c.runSuiteCleanup(suite); err != nil && result == nil {
			result = err
		}
	}

	c.fireSuiteComplete(suite, c.failuresSince(start))
	c.curSuite = nil

	c.running = false
	c.summary.Elapsed = c.clock.Now().Sub(c.startTime)
	c.fireAllComplete()

	c.setLastError(result)
	return result
}

// failuresSince returns the records appended at or after index start, or
// nil if none were.
func (c *Context) failuresSince(start int) []*FailureRecord {
	if len(c.failures) <= start {
		return nil
	}
	return c.failures[start:]
}

// runSuiteInit invokes the suite's init hook, if any. A non-nil result is
// recorded as a suite-initialization failure.
func (c *Context) runSuiteInit(suite *Suite) error {
	if suite.init == nil {
		return nil
	}
	if err := suite.init(); err != nil {
		c.fireSuiteInitFailure(suite)
		c.summary.SuitesFailed++
		c.addFailure(FailureSuiteInit, opt.None[int](),
			c.message(messages.SuiteInitFailed), c.message(messages.SystemSource), suite, nil)
		return status.SuiteInitFailed
	}
	return nil
}

// runSuiteCleanup invokes the suite's cleanup hook, if any. A non-nil
// result is recorded as a suite-cleanup failure; results already collected
// are kept.
func (c *Context) runSuiteCleanup(suite *Suite) error {
	if suite.cleanup == nil {
		return nil
	}
	if err := suite.cleanup(); err != nil {
		c.fireSuiteCleanupFailure(suite)
		c.summary.SuitesFailed++
		c.addFailure(FailureSuiteCleanup, opt.None[int](),
			c.message(messages.SuiteCleanupFailed), c.message(messages.SystemSource), suite, nil)
		return status.SuiteCleanupFailed
	}
	return nil
}

// runSingleSuite drives one suite's lifecycle: start event, init, the test
// loop in registration order, cleanup, complete event. The returned error
// is the first non-success result produced within the suite.
func (c *Context) runSingleSuite(suite *Suite) error {
	start := len(c.failures)
	c.curTest = nil
	c.curSuite = suite

	c.fireSuiteStart(suite)

	var result error
	if suite.active {
		suite.resetRunCounters()
		if err := c.runSuiteInit(suite); err != nil {
			result = err
			if c.cleanupAfterInitFailure {
				_ = c.runSuiteCleanup(suite) // recorded; init failure keeps precedence
			}
		} else {
			for _, test := range suite.tests {
				var err error
				if test.active {
					err = c.runSingleTest(test)
				} else {
					c.summary.TestsInactive++
					if c.failOnInactive {
						c.addFailure(FailureTestInactive, opt.None[int](),
							c.message(messages.TestInactive), c.message(messages.SystemSource), suite, test)
						err = status.TestInactive
					}
				}
				if result == nil {
					result = err
				}
				if result != nil && c.errorAction == StopOnError {
					break
				}
			}
			c.summary.SuitesRun++
			if err := c.runSuiteCleanup(suite); err != nil && result == nil {
				result = err
			}
		}
	} else {
		c.summary.SuitesInactive++
		if c.failOnInactive {
			c.addFailure(FailureSuiteInactive, opt.None[int](),
				c.message(messages.SuiteInactive), c.message(messages.SystemSource), suite, nil)
		}
		result = status.SuiteInactive
	}

	c.fireSuiteComplete(suite, c.failuresSince(start))
	c.curSuite = nil
	return result
}

// runSingleTest drives one test's lifecycle: start event, setUp, the body
// under a fresh abort target, tearDown, complete event. tearDown runs even
// when the body aborts or panics. A test counts as failed iff it produced
// at least one failure record while it ran.
func (c *Context) runSingleTest(test *Test) error {
	suite := c.curSuite
	start := len(c.failures)
	c.curTest = test

	c.fireTestStart(test, suite)

	var result error
	if test.active {
		if suite.setUp != nil {
			suite.setUp()
		}
		c.invokeBody(test)
		if suite.tearDown != nil {
			suite.tearDown()
		}
		c.summary.TestsRun++
		suite.testsRun++
	} else {
		c.summary.TestsInactive++
		if c.failOnInactive {
			c.addFailure(FailureTestInactive, opt.None[int](),
				c.message(messages.TestInactive), c.message(messages.SystemSource), suite, test)
		}
		result = status.TestInactive
	}

	newRecords := c.failuresSince(start)
	if len(newRecords) > 0 {
		c.summary.TestsFailed++
		if test.active {
			suite.testsFailed++
		}
	} else if test.active {
		suite.testsSucceeded++
	}

	c.fireTestComplete(test, suite, newRecords)
	c.curTest = nil
	return result
}

// invokeBody runs the test body with a fresh one-shot abort target. A
// fatal assertion unwinds the body by panicking with the target, which is
// recovered here; any other panic escaping the body is recorded as a
// FailurePanic record and the run continues. Precondition panics raised by
// the engine itself are re-raised, never swallowed.
func (c *Context) invokeBody(test *Test) {
	signal := &abortSignal{test: test}
	test.abort = signal
	defer func() {
		test.abort = nil
		r := recover()
		if r == nil {
			return
		}
		if s, ok := r.(*abortSignal); ok && s == signal {
			return // the fatal assertion already recorded its failure
		}
		if _, ok := r.(*preconditionError); ok {
			panic(r)
		}
		c.addFailure(FailurePanic, opt.None[int](),
			fmt.Sprintf("%s: %v\n%s", c.message(messages.UnexpectedPanic), r, debug.Stack()),
			c.message(messages.SystemSource), c.curSuite, test)
	}()
	if test.fn != nil {
		test.fn()
	}
}
