// Package harness contains the suitekit core: the registry of suites and
// tests, the run state machine that executes them under a controlled
// lifecycle, the assertion and abort mechanism, the failure log, the run
// summary, and the lifecycle event dispatch. All state lives in an
// explicit Context; applications can use the process-wide Default()
// instance or construct isolated ones with New().
package harness
