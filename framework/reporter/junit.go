package reporter

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/suitekit/suitekit/framework/harness"
	"github.com/suitekit/suitekit/framework/opt"
)

// JUnit accumulates per-test status through the lifecycle events and
// writes a JUnit XML document on demand. Register it with Attach, run, and
// then call Write.
type JUnit struct {
	filePath string
	now      func() time.Time

	suites  []*junitSuiteState
	current *junitSuiteState
}

type junitSuiteState struct {
	name  string
	tests []*junitTestState
}

type junitTestState struct {
	name      string
	startTime time.Time
	duration  time.Duration
	skipped   opt.Maybe[string]
	failures  []*harness.FailureRecord
}

// Struct definitions for the JUnit XML schema - see
// https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName   xml.Name           `xml:"testsuite"`
	Tests     int                `xml:"tests,attr"`
	Failures  int                `xml:"failures,attr"`
	Time      string             `xml:"time,attr"`
	Name      string             `xml:"name,attr"`
	TestCases []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// NewJUnit returns a JUnit reporter that will write to filePath.
func NewJUnit(filePath string) *JUnit {
	return &JUnit{filePath: filePath, now: time.Now}
}

func (j *JUnit) SuiteStarted(s *harness.Suite) {
	j.current = &junitSuiteState{name: s.Name()}
}

func (j *JUnit) TestStarted(t *harness.Test, _ *harness.Suite) {
	if j.current == nil {
		return
	}
	j.current.tests = append(j.current.tests, &junitTestState{
		name:      t.Name(),
		startTime: j.now(),
	})
}

func (j *JUnit) TestCompleted(t *harness.Test, _ *harness.Suite, newRecords []*harness.FailureRecord) {
	state := j.currentTest()
	if state == nil {
		return
	}
	state.duration = j.now().Sub(state.startTime)
	state.failures = newRecords
	if !t.Active() {
		state.skipped = opt.Some("test inactive")
		state.failures = nil
	}
}

func (j *JUnit) SuiteCompleted(s *harness.Suite, newRecords []*harness.FailureRecord) {
	if j.current == nil {
		// the suite never started a test (inactive, or init failed before
		// any test ran); still emit an entry so the document is complete
		j.current = &junitSuiteState{name: s.Name()}
	}
	_ = newRecords
	j.suites = append(j.suites, j.current)
	j.current = nil
}

func (j *JUnit) SuiteInitFailed(*harness.Suite)    {}
func (j *JUnit) SuiteCleanupFailed(*harness.Suite) {}

func (j *JUnit) RunCompleted(*harness.Context, []*harness.FailureRecord) {}

func (j *JUnit) currentTest() *junitTestState {
	if j.current == nil || len(j.current.tests) == 0 {
		return nil
	}
	return j.current.tests[len(j.current.tests)-1]
}

// Write marshals everything collected so far and writes it to the
// reporter's file path.
func (j *JUnit) Write() error {
	data, err := j.marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(j.filePath, data, 0644) //nolint:gosec
}

func (j *JUnit) marshal() ([]byte, error) {
	var doc jUnitXMLDocument
	for _, suite := range j.suites {
		out := jUnitXMLTestSuite{Name: suite.name}
		suiteTotal := time.Duration(0)
		for _, test := range suite.tests {
			out.Tests++
			suiteTotal += test.duration

			testCase := jUnitXMLTestCase{
				Classname: suite.name,
				Name:      test.name,
				Time:      jUnitDurationString(test.duration),
			}
			if test.skipped.IsDefined() {
				testCase.SkipMessage = &jUnitXMLSkipMessage{Message: test.skipped.Value()}
			}
			if len(test.failures) != 0 {
				out.Failures++
				messages := make([]string, 0, len(test.failures))
				for _, rec := range test.failures {
					messages = append(messages, FormatRecord(rec))
				}
				testCase.Failure = &jUnitXMLFailure{
					Message: strings.Join(messages, "\n"),
					Type:    test.failures[0].Kind.String(),
				}
			}
			out.TestCases = append(out.TestCases, testCase)
		}
		out.Time = jUnitDurationString(suiteTotal)
		doc.Suites = append(doc.Suites, out)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
