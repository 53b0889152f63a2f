package harness

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/suitekit/suitekit/framework/messages"
)

// Summary aggregates the counters for one run. All counters are reset to
// zero at the start of every run invocation and are stable once the run
// has finished.
type Summary struct {
	SuitesRun      int
	SuitesFailed   int
	SuitesInactive int
	TestsRun       int
	TestsFailed    int
	TestsInactive  int
	Asserts        int
	AssertsFailed  int
	FailureRecords int
	Elapsed        time.Duration
}

// Summary returns a copy of the aggregate counters for the current (or
// most recent) run.
func (c *Context) Summary() Summary { return c.summary }

// SummaryString renders the run counters as a Total/Ran/Passed/Failed/
// Inactive grid for suites, tests and asserts, followed by the elapsed
// time. Every label comes from the message lookup.
func (c *Context) SummaryString() string {
	var suitesTotal, testsTotal int
	if c.registry != nil {
		suitesTotal = c.registry.SuiteCount()
		testsTotal = c.registry.TestCount()
	}
	s := c.summary
	na := c.message(messages.LabelNA)

	rows := [][]string{
		{
			c.message(messages.LabelType),
			c.message(messages.LabelTotal),
			c.message(messages.LabelRan),
			c.message(messages.LabelPassed),
			c.message(messages.LabelFailed),
			c.message(messages.LabelInactive),
		},
		{
			c.message(messages.LabelSuites),
			strconv.Itoa(suitesTotal),
			strconv.Itoa(s.SuitesRun),
			na,
			strconv.Itoa(s.SuitesFailed),
			strconv.Itoa(s.SuitesInactive),
		},
		{
			c.message(messages.LabelTests),
			strconv.Itoa(testsTotal),
			strconv.Itoa(s.TestsRun),
			strconv.Itoa(s.TestsRun - s.TestsFailed),
			strconv.Itoa(s.TestsFailed),
			strconv.Itoa(s.TestsInactive),
		},
		{
			c.message(messages.LabelAsserts),
			strconv.Itoa(s.Asserts),
			strconv.Itoa(s.Asserts),
			strconv.Itoa(s.Asserts - s.AssertsFailed),
			strconv.Itoa(s.AssertsFailed),
			na,
		},
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := len(cell) + 1; w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(c.message(messages.SummaryHeader))
	b.WriteByte('\n')
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(&b, "%*s", widths[i]+1, cell)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%s%.3f%s\n",
		c.message(messages.LabelElapsed), s.Elapsed.Seconds(), c.message(messages.LabelSeconds))
	return b.String()
}
