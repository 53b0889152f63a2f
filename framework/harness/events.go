package harness

// Lifecycle event handlers. Each Context has one single-valued slot per
// event; setting a slot replaces the previous handler, and nil clears it.
// Handlers run synchronously at their transition and must not mutate the
// registry or start a nested run.

// SuiteStartHandler is invoked just before a suite begins running.
type SuiteStartHandler func(*Suite)

// TestStartHandler is invoked just before a test runs, including inactive
// tests that are then skipped.
type TestStartHandler func(*Test, *Suite)

// TestCompleteHandler is invoked after a test finishes. newRecords holds
// the failure records appended while the test ran, or nil if none were.
type TestCompleteHandler func(test *Test, suite *Suite, newRecords []*FailureRecord)

// SuiteCompleteHandler is invoked after a suite finishes. newRecords holds
// the failure records appended while the suite ran, or nil if none were.
type SuiteCompleteHandler func(suite *Suite, newRecords []*FailureRecord)

// AllCompleteHandler is invoked when a run finishes, with every failure
// record the run produced.
type AllCompleteHandler func(records []*FailureRecord)

// SuiteInitFailureHandler is invoked when a suite initialization hook
// returns an error.
type SuiteInitFailureHandler func(*Suite)

// SuiteCleanupFailureHandler is invoked when a suite cleanup hook returns
// an error.
type SuiteCleanupFailureHandler func(*Suite)

type handlerSlots struct {
	suiteStart          SuiteStartHandler
	testStart           TestStartHandler
	testComplete        TestCompleteHandler
	suiteComplete       SuiteCompleteHandler
	allComplete         AllCompleteHandler
	suiteInitFailure    SuiteInitFailureHandler
	suiteCleanupFailure SuiteCleanupFailureHandler
}

// SetSuiteStartHandler replaces the suite-start handler; nil clears it.
func (c *Context) SetSuiteStartHandler(h SuiteStartHandler) { c.handlers.suiteStart = h }

// SuiteStartHandler returns the registered suite-start handler, or nil.
func (c *Context) SuiteStartHandler() SuiteStartHandler { return c.handlers.suiteStart }

// SetTestStartHandler replaces the test-start handler; nil clears it.
func (c *Context) SetTestStartHandler(h TestStartHandler) { c.handlers.testStart = h }

// TestStartHandler returns the registered test-start handler, or nil.
func (c *Context) TestStartHandler() TestStartHandler { return c.handlers.testStart }

// SetTestCompleteHandler replaces the test-complete handler; nil clears it.
func (c *Context) SetTestCompleteHandler(h TestCompleteHandler) { c.handlers.testComplete = h }

// TestCompleteHandler returns the registered test-complete handler, or nil.
func (c *Context) TestCompleteHandler() TestCompleteHandler { return c.handlers.testComplete }

// SetSuiteCompleteHandler replaces the suite-complete handler; nil clears it.
func (c *Context) SetSuiteCompleteHandler(h SuiteCompleteHandler) { c.handlers.suiteComplete = h }

// SuiteCompleteHandler returns the registered suite-complete handler, or nil.
func (c *Context) SuiteCompleteHandler() SuiteCompleteHandler { return c.handlers.suiteComplete }

// SetAllCompleteHandler replaces the all-complete handler; nil clears it.
func (c *Context) SetAllCompleteHandler(h AllCompleteHandler) { c.handlers.allComplete = h }

// AllCompleteHandler returns the registered all-complete handler, or nil.
func (c *Context) AllCompleteHandler() AllCompleteHandler { return c.handlers.allComplete }

// SetSuiteInitFailureHandler replaces the init-failure handler; nil clears it.
func (c *Context) SetSuiteInitFailureHandler(h SuiteInitFailureHandler) {
	c.handlers.suiteInitFailure = h
}

// SuiteInitFailureHandler returns the registered init-failure handler, or nil.
func (c *Context) SuiteInitFailureHandler() SuiteInitFailureHandler {
	return c.handlers.suiteInitFailure
}

// SetSuiteCleanupFailureHandler replaces the cleanup-failure handler; nil
// clears it.
func (c *Context) SetSuiteCleanupFailureHandler(h SuiteCleanupFailureHandler) {
	c.handlers.suiteCleanupFailure = h
}

// SuiteCleanupFailureHandler returns the registered cleanup-failure
// handler, or nil.
func (c *Context) SuiteCleanupFailureHandler() SuiteCleanupFailureHandler {
	return c.handlers.suiteCleanupFailure
}

func (c *Context) fireSuiteStart(s *Suite) {
	if h := c.handlers.suiteStart; h != nil {
		h(s)
	}
}

func (c *Context) fireTestStart(t *Test, s *Suite) {
	if h := c.handlers.testStart; h != nil {
		h(t, s)
	}
}

func (c *Context) fireTestComplete(t *Test, s *Suite, newRecords []*FailureRecord) {
	if h := c.handlers.testComplete; h != nil {
		h(t, s, newRecords)
	}
}

func (c *Context) fireSuiteComplete(s *Suite, newRecords []*FailureRecord) {
	if h := c.handlers.suiteComplete; h != nil {
		h(s, newRecords)
	}
}

func (c *Context) fireAllComplete() {
	if h := c.handlers.allComplete; h != nil {
		h(c.failures)
	}
}

func (c *Context) fireSuiteInitFailure(s *Suite) {
	if h := c.handlers.suiteInitFailure; h != nil {
		h(s)
	}
}

func (c *Context) fireSuiteCleanupFailure(s *Suite) {
	if h := c.handlers.suiteCleanupFailure; h != nil {
		h(s)
	}
}
