package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/suitekit/suitekit/framework/harness"
)

var consoleFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consolePassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals
var consoleErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals

// Console renders run progress and results to a writer as the run
// executes. Register it with Attach.
type Console struct {
	// Out receives the output; os.Stdout when nil.
	Out io.Writer
	// Verbose also prints a line for every passing test.
	Verbose bool
}

// NewConsole returns a Console writing to out, or to os.Stdout when out is
// nil.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{Out: out}
}

func (c *Console) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Console) SuiteStarted(s *harness.Suite) {
	fmt.Fprintf(c.out(), "[%s]\n", s.Name())
}

func (c *Console) TestStarted(*harness.Test, *harness.Suite) {}

func (c *Console) TestCompleted(t *harness.Test, _ *harness.Suite, newRecords []*harness.FailureRecord) {
	switch {
	case !t.Active():
		_, _ = consoleSkippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", t.Name())
	case len(newRecords) == 0:
		if c.Verbose {
			_, _ = consolePassedColor.Fprintf(c.out(), "  PASSED: %s\n", t.Name())
		}
	default:
		_, _ = consoleFailedColor.Fprintf(c.out(), "  FAILED: %s\n", t.Name())
		for _, rec := range newRecords {
			for _, line := range strings.Split(FormatRecord(rec), "\n") {
				_, _ = consoleErrorColor.Fprintf(c.out(), "    %s\n", line)
			}
		}
	}
}

func (c *Console) SuiteCompleted(s *harness.Suite, _ []*harness.FailureRecord) {
	if !s.Active() {
		_, _ = consoleSkippedColor.Fprintf(c.out(), "  SKIPPED: %s (suite inactive)\n", s.Name())
	}
}

func (c *Console) SuiteInitFailed(s *harness.Suite) {
	_, _ = consoleErrorColor.Fprintf(c.out(), "  suite %q: initialization failed, tests skipped\n", s.Name())
}

func (c *Console) SuiteCleanupFailed(s *harness.Suite) {
	_, _ = consoleErrorColor.Fprintf(c.out(), "  suite %q: cleanup failed\n", s.Name())
}

func (c *Console) RunCompleted(ctx *harness.Context, records []*harness.FailureRecord) {
	w := c.out()
	fmt.Fprintln(w)
	if len(records) == 0 {
		_, _ = consolePassedColor.Fprintln(w, "All tests passed")
	} else {
		_, _ = consoleFailedColor.Fprintf(w, "FAILURES (%d):\n", len(records))
		for _, rec := range records {
			name := "-"
			if rec.Test != nil {
				name = rec.Test.Name()
			}
			suiteName := "-"
			if rec.Suite != nil {
				suiteName = rec.Suite.Name()
			}
			_, _ = consoleFailedColor.Fprintf(w, "  * %s/%s: %s\n", suiteName, name, FormatRecord(rec))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, ctx.SummaryString())
}
