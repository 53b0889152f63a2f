// Package config loads run-policy configuration for a suitekit Context
// from YAML (or JSON, which is a YAML subset).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suitekit/suitekit/framework/harness"
)

// RunOptions is the serializable run-policy configuration for an engine
// Context. Pointer fields distinguish "not specified" from a configured
// false/zero value.
type RunOptions struct {
	// FailOnInactive controls whether inactive suites and tests append
	// failure records during a run.
	FailOnInactive *bool `yaml:"failOnInactive"`
	// ErrorAction is "continue" (default) or "stop".
	ErrorAction string `yaml:"errorAction"`
	// CleanupAfterInitFailure makes a suite's cleanup hook run even when
	// its init hook failed.
	CleanupAfterInitFailure *bool `yaml:"cleanupAfterInitFailure"`
	// Limits bounds the engine's storage; zero fields mean unbounded.
	Limits *LimitOptions `yaml:"limits"`
}

// LimitOptions mirrors harness.Limits for serialization.
type LimitOptions struct {
	MaxSuites         int `yaml:"maxSuites"`
	MaxTests          int `yaml:"maxTests"`
	MaxFailureRecords int `yaml:"maxFailureRecords"`
}

// Parse reads RunOptions from YAML or JSON bytes.
func Parse(data []byte) (RunOptions, error) {
	var opts RunOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return RunOptions{}, fmt.Errorf("parsing run options: %w", err)
	}
	return opts, nil
}

// Load reads RunOptions from the file at path.
func Load(path string) (RunOptions, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied config path
	if err != nil {
		return RunOptions{}, fmt.Errorf("reading run options: %w", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return RunOptions{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Apply sets every specified policy on ctx, leaving unspecified ones
// untouched.
func (o RunOptions) Apply(ctx *harness.Context) error {
	switch o.ErrorAction {
	case "":
		// not specified
	case "continue":
		ctx.SetErrorAction(harness.ContinueOnError)
	case "stop":
		ctx.SetErrorAction(harness.StopOnError)
	default:
		return fmt.Errorf("unknown errorAction %q (want \"stop\" or \"continue\")", o.ErrorAction)
	}
	if o.FailOnInactive != nil {
		ctx.SetFailOnInactive(*o.FailOnInactive)
	}
	if o.CleanupAfterInitFailure != nil {
		ctx.SetCleanupAfterInitFailure(*o.CleanupAfterInitFailure)
	}
	if o.Limits != nil {
		ctx.SetLimits(harness.Limits{
			MaxSuites:         o.Limits.MaxSuites,
			MaxTests:          o.Limits.MaxTests,
			MaxFailureRecords: o.Limits.MaxFailureRecords,
		})
	}
	return nil
}
