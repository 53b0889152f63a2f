package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suitekit/suitekit/framework/status"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := New()
	require.NoError(t, c.InitializeRegistry())
	return c
}

func TestInitializeRegistry(t *testing.T) {
	c := New()
	assert.False(t, c.RegistryInitialized())
	assert.Nil(t, c.Registry())

	require.NoError(t, c.InitializeRegistry())
	assert.True(t, c.RegistryInitialized())
	require.NotNil(t, c.Registry())
	assert.Equal(t, 0, c.Registry().SuiteCount())
	assert.Equal(t, 0, c.Registry().TestCount())
}

func TestInitializeRegistryDiscardsPrevious(t *testing.T) {
	c := newTestContext(t)
	_, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)

	require.NoError(t, c.InitializeRegistry())
	assert.Equal(t, 0, c.Registry().SuiteCount())
}

func TestCleanupRegistry(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	_, err = c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)

	c.CleanupRegistry()
	assert.False(t, c.RegistryInitialized())

	// with no registry, registration fails cleanly
	_, err = c.AddSuite("Suite2", SuiteConfig{})
	assert.ErrorIs(t, err, status.NoRegistry)
}

func TestSetRegistrySwap(t *testing.T) {
	c := newTestContext(t)
	_, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)

	replacement := NewRegistry()
	old := c.SetRegistry(replacement)
	require.NotNil(t, old)
	assert.Equal(t, 1, old.SuiteCount()) // caller owns the old registry intact
	assert.Same(t, replacement, c.Registry())
	assert.Equal(t, 0, c.Registry().SuiteCount())

	// swapping back restores the original contents
	c.SetRegistry(old)
	assert.Equal(t, 1, c.Registry().SuiteCount())
	assert.NotNil(t, c.Registry().FindSuite("Suite1"))
}

func TestAddSuiteValidation(t *testing.T) {
	c := New()
	_, err := c.AddSuite("Suite1", SuiteConfig{})
	assert.ErrorIs(t, err, status.NoRegistry)
	assert.ErrorIs(t, c.LastError(), status.NoRegistry)

	require.NoError(t, c.InitializeRegistry())
	_, err = c.AddSuite("", SuiteConfig{})
	assert.ErrorIs(t, err, status.NoSuiteName)
}

func TestAddSuiteDuplicateNames(t *testing.T) {
	c := newTestContext(t)

	first, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	assert.NoError(t, c.LastError())

	second, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err) // the duplicate is still created and linked
	require.NotNil(t, second)
	assert.ErrorIs(t, c.LastError(), status.DuplicateSuite)

	assert.Equal(t, 2, c.Registry().SuiteCount())
	assert.Same(t, first, c.Registry().FindSuite("Suite1"))

	// a later non-duplicate registration clears the last error
	_, err = c.AddSuite("Suite2", SuiteConfig{})
	require.NoError(t, err)
	assert.NoError(t, c.LastError())
}

func TestAddTestValidation(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)

	_, err = c.AddTest(nil, "Test1", func() {})
	assert.ErrorIs(t, err, status.NoSuite)

	_, err = c.AddTest(suite, "", func() {})
	assert.ErrorIs(t, err, status.NoTestName)

	_, err = c.AddTest(suite, "Test1", nil)
	assert.ErrorIs(t, err, status.NoTestBody)

	assert.Equal(t, 0, suite.TestCount())
	assert.Equal(t, 0, c.Registry().TestCount())
}

func TestAddTestDuplicateNames(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)

	first, err := c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)

	second, err := c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.ErrorIs(t, c.LastError(), status.DuplicateTest)

	// the duplicate still counts toward the totals
	assert.Equal(t, 2, suite.TestCount())
	assert.Equal(t, 2, c.Registry().TestCount())
	assert.Same(t, first, suite.FindTest("Test1"))
}

func TestFindSuiteAndTestCaseInsensitive(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("MySuite", SuiteConfig{})
	require.NoError(t, err)
	test, err := c.AddTest(suite, "MyTest", func() {})
	require.NoError(t, err)

	assert.Same(t, suite, c.Registry().FindSuite("mysuite"))
	assert.Same(t, suite, c.Registry().FindSuite("MYSUITE"))
	assert.Nil(t, c.Registry().FindSuite("othersuite"))

	assert.Same(t, test, suite.FindTest("mytest"))
	assert.Nil(t, suite.FindTest("othertest"))
}

func TestRegistryLimits(t *testing.T) {
	c := newTestContext(t)
	c.SetLimits(Limits{MaxSuites: 1, MaxTests: 2})

	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	_, err = c.AddSuite("Suite2", SuiteConfig{})
	assert.ErrorIs(t, err, status.OutOfMemory)

	_, err = c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)
	_, err = c.AddTest(suite, "Test2", func() {})
	require.NoError(t, err)
	_, err = c.AddTest(suite, "Test3", func() {})
	assert.ErrorIs(t, err, status.OutOfMemory)
	assert.Equal(t, 2, c.Registry().TestCount())
}

func TestRegisterBulk(t *testing.T) {
	c := newTestContext(t)
	err := c.Register(
		SuiteDef{
			Name: "Suite1",
			Tests: []TestDef{
				{Name: "Test1", Fn: func() {}},
				{Name: "Test2", Fn: func() {}},
			},
		},
		SuiteDef{
			Name:  "Suite2",
			Tests: []TestDef{{Name: "Test1", Fn: func() {}}},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Registry().SuiteCount())
	assert.Equal(t, 3, c.Registry().TestCount())

	suite1 := c.Registry().FindSuite("Suite1")
	require.NotNil(t, suite1)
	assert.Equal(t, 2, suite1.TestCount())
	assert.NotNil(t, suite1.FindTest("Test2"))
}

func TestRegisterStopsAtFirstError(t *testing.T) {
	c := newTestContext(t)
	err := c.Register(
		SuiteDef{Name: "Suite1", Tests: []TestDef{{Name: "", Fn: func() {}}}},
		SuiteDef{Name: "Suite2"},
	)
	assert.ErrorIs(t, err, status.NoTestName)
	assert.Nil(t, c.Registry().FindSuite("Suite2"))
}

func TestRegistryDestroy(t *testing.T) {
	r := NewRegistry()
	r.Destroy() // safe on an empty registry

	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	_, err = c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)

	reg := c.SetRegistry(NewRegistry())
	reg.Destroy()
	assert.Equal(t, 0, reg.SuiteCount())
	assert.Equal(t, 0, reg.TestCount())
	reg.Destroy() // idempotent
}

func TestMutationDuringRunPanics(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	_, err = c.AddTest(suite, "Test1", func() {
		_, _ = c.AddSuite("Illegal", SuiteConfig{})
	})
	require.NoError(t, err)

	require.PanicsWithError(t, "harness: AddSuite is forbidden while a run is active", func() {
		_ = c.RunAll()
	})
}

func TestSuiteAndTestActivation(t *testing.T) {
	c := newTestContext(t)
	suite, err := c.AddSuite("Suite1", SuiteConfig{})
	require.NoError(t, err)
	test, err := c.AddTest(suite, "Test1", func() {})
	require.NoError(t, err)

	assert.True(t, suite.Active())
	assert.True(t, test.Active())

	suite.SetActive(false)
	test.SetActive(false)
	assert.False(t, suite.Active())
	assert.False(t, test.Active())
}
