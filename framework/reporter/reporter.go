package reporter

import (
	"fmt"

	"github.com/suitekit/suitekit/framework/harness"
)

// Reporter receives the engine's lifecycle events. Implementations must
// not mutate the registry or start a nested run.
type Reporter interface {
	SuiteStarted(*harness.Suite)
	TestStarted(*harness.Test, *harness.Suite)
	TestCompleted(test *harness.Test, suite *harness.Suite, newRecords []*harness.FailureRecord)
	SuiteCompleted(suite *harness.Suite, newRecords []*harness.FailureRecord)
	SuiteInitFailed(*harness.Suite)
	SuiteCleanupFailed(*harness.Suite)
	RunCompleted(ctx *harness.Context, records []*harness.FailureRecord)
}

// Attach wires one or more reporters into ctx's event handler slots. The
// slots are single-valued, so Attach installs one fan-out closure per
// slot, replacing whatever handlers were registered before.
func Attach(ctx *harness.Context, reporters ...Reporter) {
	ctx.SetSuiteStartHandler(func(s *harness.Suite) {
		for _, r := range reporters {
			r.SuiteStarted(s)
		}
	})
	ctx.SetTestStartHandler(func(t *harness.Test, s *harness.Suite) {
		for _, r := range reporters {
			r.TestStarted(t, s)
		}
	})
	ctx.SetTestCompleteHandler(func(t *harness.Test, s *harness.Suite, recs []*harness.FailureRecord) {
		for _, r := range reporters {
			r.TestCompleted(t, s, recs)
		}
	})
	ctx.SetSuiteCompleteHandler(func(s *harness.Suite, recs []*harness.FailureRecord) {
		for _, r := range reporters {
			r.SuiteCompleted(s, recs)
		}
	})
	ctx.SetSuiteInitFailureHandler(func(s *harness.Suite) {
		for _, r := range reporters {
			r.SuiteInitFailed(s)
		}
	})
	ctx.SetSuiteCleanupFailureHandler(func(s *harness.Suite) {
		for _, r := range reporters {
			r.SuiteCleanupFailed(s)
		}
	})
	ctx.SetAllCompleteHandler(func(recs []*harness.FailureRecord) {
		for _, r := range reporters {
			r.RunCompleted(ctx, recs)
		}
	})
}

// FormatRecord renders one failure record as a single line.
func FormatRecord(rec *harness.FailureRecord) string {
	location := rec.File
	if rec.Line.IsDefined() {
		location = fmt.Sprintf("%s:%d", rec.File, rec.Line.Value())
	}
	if location == "" {
		return fmt.Sprintf("%s: %s", rec.Kind, rec.Condition)
	}
	return fmt.Sprintf("%s: %s (%s)", rec.Kind, rec.Condition, location)
}
