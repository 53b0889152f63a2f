// Package reporter contains presentation-layer collaborators for the
// suitekit engine. Reporters register themselves on a Context's lifecycle
// event slots and render the failure log and run summary for humans
// (console) or machines (JUnit XML). The engine core never depends on this
// package.
package reporter
