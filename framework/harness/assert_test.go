package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suitekit/suitekit/framework/opt"
)

func TestAssertOutsideTestPanics(t *testing.T) {
	c := newTestContext(t)
	require.PanicsWithError(t, "harness: Assert called outside an executing test", func() {
		c.Assert(true, 1, "1 == 1", "somefile.go", false)
	})
	require.PanicsWithError(t, "harness: Assert called outside an executing test", func() {
		c.Check(true, "1 == 1")
	})
}

func TestCheckRecordsAndContinues(t *testing.T) {
	c := newTestContext(t)
	var results []bool
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		Tests: []TestDef{{Name: "Test1", Fn: func() {
			results = append(results, c.Check(true, "good"))
			results = append(results, c.Check(false, "bad"))
			results = append(results, c.Check(true, "still running"))
		}}},
	}))

	require.NoError(t, c.RunAll())
	assert.Equal(t, []bool{true, false, true}, results)

	s := c.Summary()
	assert.Equal(t, 3, s.Asserts)
	assert.Equal(t, 1, s.AssertsFailed)
	assert.Equal(t, 1, s.FailureRecords)

	records := collectFailures(c)
	require.Len(t, records, 1)
	assert.Equal(t, "bad", records[0].Condition)
	assert.Equal(t, "assert_test.go", records[0].File)
	assert.True(t, records[0].Line.IsDefined())
	assert.NotNil(t, records[0].Suite)
	assert.NotNil(t, records[0].Test)
}

func TestAssertExplicitLocation(t *testing.T) {
	c := newTestContext(t)
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		Tests: []TestDef{{Name: "Test1", Fn: func() {
			c.Assert(false, 42, "x > 0", "example.go", false)
			c.Assert(false, 0, "unknown origin", "", false)
		}}},
	}))

	require.NoError(t, c.RunAll())
	records := collectFailures(c)
	require.Len(t, records, 2)
	assert.Equal(t, opt.Some(42), records[0].Line)
	assert.Equal(t, "example.go", records[0].File)
	assert.False(t, records[1].Line.IsDefined()) // a non-positive line is not recorded
	assert.Equal(t, "", records[1].File)
}

func TestRequireReturnsTrueWithoutAborting(t *testing.T) {
	c := newTestContext(t)
	var after bool
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		Tests: []TestDef{{Name: "Test1", Fn: func() {
			c.Require(true, "fine")
			after = true
		}}},
	}))

	require.NoError(t, c.RunAll())
	assert.True(t, after)
	assert.Equal(t, 1, c.Summary().Asserts)
	assert.Equal(t, 0, c.Summary().AssertsFailed)
}

func TestFatalAssertInSetUpRecordsWithoutAborting(t *testing.T) {
	// setUp runs before the abort target is established, so a fatal
	// assertion there records the failure and keeps going.
	c := newTestContext(t)
	var bodyRan, setUpFinished bool
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		SetUp: func() {
			c.Require(false, "setup condition")
			setUpFinished = true
		},
		Tests: []TestDef{{Name: "Test1", Fn: func() { bodyRan = true }}},
	}))

	require.NoError(t, c.RunAll())
	assert.True(t, setUpFinished)
	assert.True(t, bodyRan)
	assert.Equal(t, 1, c.Summary().AssertsFailed)
}
