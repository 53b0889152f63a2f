package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextWithFailures(t *testing.T, conditions ...string) *Context {
	t.Helper()
	c := newTestContext(t)
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		Tests: []TestDef{{Name: "Test1", Fn: func() {
			for _, cond := range conditions {
				c.Check(false, cond)
			}
		}}},
	}))
	require.NoError(t, c.RunAll())
	return c
}

func TestFailuresTraversalOrderAndRestart(t *testing.T) {
	c := newContextWithFailures(t, "first", "second", "third")

	seq := c.Failures()
	var pass1, pass2 []string
	for r := range seq {
		pass1 = append(pass1, r.Condition)
	}
	for r := range seq {
		pass2 = append(pass2, r.Condition)
	}
	assert.Equal(t, []string{"first", "second", "third"}, pass1)
	assert.Equal(t, pass1, pass2) // ranging again yields the same elements
}

func TestFailuresEarlyBreak(t *testing.T) {
	c := newContextWithFailures(t, "first", "second", "third")

	var seen []string
	for r := range c.Failures() {
		seen = append(seen, r.Condition)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestFailuresEmptyLog(t *testing.T) {
	c := newTestContext(t)
	for range c.Failures() {
		t.Fatal("no records expected")
	}
	assert.Equal(t, 0, c.FailureCount())
}

func TestFailureRecordLimit(t *testing.T) {
	c := newTestContext(t)
	c.SetLimits(Limits{MaxFailureRecords: 2})
	require.NoError(t, c.Register(SuiteDef{
		Name: "Suite1",
		Tests: []TestDef{{Name: "Test1", Fn: func() {
			c.Check(false, "first")
			c.Check(false, "second")
			c.Check(false, "third") // dropped
		}}},
	}))

	require.NoError(t, c.RunAll())
	assert.Equal(t, 2, c.FailureCount())
	assert.Equal(t, 2, c.Summary().FailureRecords)
	assert.Equal(t, 3, c.Summary().AssertsFailed) // the assertion still counted

	records := collectFailures(c)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[1].Condition)
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "assertion failed", FailureAssert.String())
	assert.Equal(t, "suite initialization failed", FailureSuiteInit.String())
	assert.Equal(t, "test panicked", FailurePanic.String())
	assert.Equal(t, "unknown failure", FailureKind(99).String())
}
