package harness

import (
	"strings"

	"github.com/suitekit/suitekit/framework/status"
)

// TestFunc is the body of a test case. It takes no arguments and reports
// its outcome through the Context's assertion methods.
type TestFunc func()

// InitFunc runs once before any test in a suite. A non-nil error marks the
// suite's initialization as failed; by default the suite's tests and its
// cleanup are then skipped.
type InitFunc func() error

// CleanupFunc runs once after the last test in a suite. A non-nil error is
// recorded as a suite-cleanup failure without discarding the results
// already collected.
type CleanupFunc func() error

// SetUpFunc runs before each test in a suite.
type SetUpFunc func()

// TearDownFunc runs after each test in a suite, including tests aborted by
// a fatal assertion.
type TearDownFunc func()

// Test is a single named test case. It is owned by exactly one Suite and
// is never shared or individually removed.
type Test struct {
	name   string
	active bool
	fn     TestFunc

	// abort is established only while this test is executing; it is the
	// target of the fatal-assertion non-local exit.
	abort *abortSignal
}

// Name returns the test's name. Names are not required to be unique.
func (t *Test) Name() string { return t.name }

// Active reports whether the test will execute during a run.
func (t *Test) Active() bool { return t.active }

// SetActive enables or disables the test for subsequent runs.
func (t *Test) SetActive(active bool) { t.active = active }

// Suite is an ordered collection of tests with optional lifecycle hooks.
// Tests execute in registration order; the order is never changed.
type Suite struct {
	name     string
	active   bool
	tests    []*Test
	init     InitFunc
	cleanup  CleanupFunc
	setUp    SetUpFunc
	tearDown TearDownFunc

	// counters for the suite's most recent run
	testsRun       int
	testsFailed    int
	testsSucceeded int
}

// Name returns the suite's name. Names are not required to be unique.
func (s *Suite) Name() string { return s.name }

// Active reports whether the suite will execute during a run.
func (s *Suite) Active() bool { return s.active }

// SetActive enables or disables the suite for subsequent runs.
func (s *Suite) SetActive(active bool) { s.active = active }

// TestCount returns the number of tests owned by the suite.
func (s *Suite) TestCount() int { return len(s.tests) }

// Tests returns the suite's tests in registration order.
func (s *Suite) Tests() []*Test { return append([]*Test(nil), s.tests...) }

// TestsRun, TestsFailed and TestsSucceeded report the counters from the
// suite's most recent run. A test counts as failed iff it produced at
// least one failure record while it ran.
func (s *Suite) TestsRun() int       { return s.testsRun }
func (s *Suite) TestsFailed() int    { return s.testsFailed }
func (s *Suite) TestsSucceeded() int { return s.testsSucceeded }

// FindTest returns the first test, in registration order, whose name
// matches case-insensitively, or nil if there is none. Absence is not an
// error.
func (s *Suite) FindTest(name string) *Test {
	for _, t := range s.tests {
		if strings.EqualFold(t.name, name) {
			return t
		}
	}
	return nil
}

func (s *Suite) owns(t *Test) bool {
	for _, owned := range s.tests {
		if owned == t {
			return true
		}
	}
	return false
}

func (s *Suite) resetRunCounters() {
	s.testsRun = 0
	s.testsFailed = 0
	s.testsSucceeded = 0
}

// Registry is the top-level owner of suites for one logical test
// collection. Suites execute in registration order. The test count is the
// sum across all suites and is maintained incrementally on insertion.
type Registry struct {
	suites    []*Suite
	testCount int
}

// NewRegistry returns an empty registry that is independent of any
// Context. Install it with Context.SetRegistry.
func NewRegistry() *Registry { return &Registry{} }

// SuiteCount returns the number of registered suites, duplicates included.
func (r *Registry) SuiteCount() int { return len(r.suites) }

// TestCount returns the total number of tests across all suites,
// duplicates included.
func (r *Registry) TestCount() int { return r.testCount }

// Suites returns the registered suites in registration order.
func (r *Registry) Suites() []*Suite { return append([]*Suite(nil), r.suites...) }

// FindSuite returns the first suite, in registration order, whose name
// matches case-insensitively, or nil if there is none. Absence is not an
// error.
func (r *Registry) FindSuite(name string) *Suite {
	for _, s := range r.suites {
		if strings.EqualFold(s.name, name) {
			return s
		}
	}
	return nil
}

// Destroy releases all suites and tests owned by the registry. It is safe
// to call on an empty or already-destroyed registry. Any pointers to the
// registry's suites or tests held by the caller are invalidated.
func (r *Registry) Destroy() {
	for _, s := range r.suites {
		s.tests = nil
	}
	r.suites = nil
	r.testCount = 0
}

// SuiteConfig carries the optional lifecycle hooks for AddSuite. Any field
// may be nil.
type SuiteConfig struct {
	Init     InitFunc
	Cleanup  CleanupFunc
	SetUp    SetUpFunc
	TearDown TearDownFunc
}

// InitializeRegistry discards the active registry, if any, and installs a
// fresh empty one. Previous run results are cleared. It must not be called
// while a run is in progress.
func (c *Context) InitializeRegistry() error {
	c.mustNotBeRunning("InitializeRegistry")
	if c.registry != nil {
		c.CleanupRegistry()
	}
	c.registry = NewRegistry()
	c.setLastError(nil)
	return nil
}

// RegistryInitialized reports whether a registry is currently active.
func (c *Context) RegistryInitialized() bool { return c.registry != nil }

// CleanupRegistry destroys the active registry, leaving none active, and
// clears previous run results. It must not be called during a run.
func (c *Context) CleanupRegistry() {
	c.mustNotBeRunning("CleanupRegistry")
	if c.registry != nil {
		c.registry.Destroy()
		c.registry = nil
	}
	c.clearResults()
	c.setLastError(nil)
}

// Registry returns the active registry, or nil if none is active.
func (c *Context) Registry() *Registry { return c.registry }

// SetRegistry installs reg as the active registry and returns the previous
// one, which the caller then owns; it is not destroyed. It must not be
// called during a run.
func (c *Context) SetRegistry(reg *Registry) *Registry {
	c.mustNotBeRunning("SetRegistry")
	old := c.registry
	c.registry = reg
	c.setLastError(nil)
	return old
}

// AddSuite creates a suite with the given name and hooks and appends it to
// the active registry. The suite starts active. A name collision does not
// prevent creation: the new suite is linked and returned, the secondary
// condition status.DuplicateSuite is reported through LastError, and only
// the first-registered suite of that name is reachable by FindSuite.
func (c *Context) AddSuite(name string, cfg SuiteConfig) (*Suite, error) {
	c.mustNotBeRunning("AddSuite")
	if c.registry == nil {
		return nil, c.fail(status.NoRegistry)
	}
	if name == "" {
		return nil, c.fail(status.NoSuiteName)
	}
	if c.limits.MaxSuites > 0 && len(c.registry.suites) >= c.limits.MaxSuites {
		return nil, c.fail(status.OutOfMemory)
	}

	suite := &Suite{
		name:     name,
		active:   true,
		init:     cfg.Init,
		cleanup:  cfg.Cleanup,
		setUp:    cfg.SetUp,
		tearDown: cfg.TearDown,
	}
	if c.registry.FindSuite(name) != nil {
		c.setLastError(status.DuplicateSuite)
	} else {
		c.setLastError(nil)
	}
	c.registry.suites = append(c.registry.suites, suite)
	return suite, nil
}

// AddTest creates a test with the given name and body and appends it to
// suite. The test starts active. The registry's total test count is
// incremented on every successful creation, duplicate names included;
// duplicates are reported through LastError the same way AddSuite reports
// them.
func (c *Context) AddTest(suite *Suite, name string, fn TestFunc) (*Test, error) {
	c.mustNotBeRunning("AddTest")
	switch {
	case c.registry == nil:
		return nil, c.fail(status.NoRegistry)
	case suite == nil:
		return nil, c.fail(status.NoSuite)
	case name == "":
		return nil, c.fail(status.NoTestName)
	case fn == nil:
		return nil, c.fail(status.NoTestBody)
	}
	if c.limits.MaxTests > 0 && c.registry.testCount >= c.limits.MaxTests {
		return nil, c.fail(status.OutOfMemory)
	}

	test := &Test{name: name, active: true, fn: fn}
	c.registry.testCount++
	if suite.FindTest(name) != nil {
		c.setLastError(status.DuplicateTest)
	} else {
		c.setLastError(nil)
	}
	suite.tests = append(suite.tests, test)
	return test, nil
}

// TestDef describes one test for bulk registration.
type TestDef struct {
	Name string
	Fn   TestFunc
}

// SuiteDef describes one suite and its tests for bulk registration.
type SuiteDef struct {
	Name     string
	Init     InitFunc
	Cleanup  CleanupFunc
	SetUp    SetUpFunc
	TearDown TearDownFunc
	Tests    []TestDef
}

// Register adds every described suite and its tests to the active
// registry, in order, stopping at the first error.
func (c *Context) Register(defs ...SuiteDef) error {
	for _, def := range defs {
		suite, err := c.AddSuite(def.Name, SuiteConfig{
			Init:     def.Init,
			Cleanup:  def.Cleanup,
			SetUp:    def.SetUp,
			TearDown: def.TearDown,
		})
		if err != nil {
			return err
		}
		for _, td := range def.Tests {
			if _, err := c.AddTest(suite, td.Name, td.Fn); err != nil {
				return err
			}
		}
	}
	return nil
}
