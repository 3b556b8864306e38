// Package config defines the processing options consumed by the pipeline
// core and the level-format configuration read from document metadata.
package config

import (
	"os"
	"strings"
)

// ValidationMode controls how pipeline order/capability findings are handled.
type ValidationMode string

const (
	// ValidationStrict turns any finding into a fatal error.
	ValidationStrict ValidationMode = "strict"

	// ValidationWarn reports findings but allows processing to continue.
	ValidationWarn ValidationMode = "warn"

	// ValidationSilent suppresses reporting entirely.
	ValidationSilent ValidationMode = "silent"
)

// IsValid returns true if the mode is recognized.
func (m ValidationMode) IsValid() bool {
	switch m {
	case ValidationStrict, ValidationWarn, ValidationSilent:
		return true
	default:
		return false
	}
}

// Options is the processing configuration for one document run.
type Options struct {
	// EnabledTransforms lists the transform names to run, by registry name.
	EnabledTransforms []string

	// ValidationMode is the explicit mode; empty means resolve from the
	// environment (see ResolveValidationMode).
	ValidationMode ValidationMode

	// NoReset leaves deeper level counters untouched when a higher-level
	// heading is visited, so siblings keep incrementing monotonically.
	NoReset bool

	// Debug enables verbose logging of content-level anomalies.
	Debug bool
}

// ResolveValidationMode returns the effective validation mode for opts.
//
// An explicit, recognized mode wins. Otherwise continuous-integration
// environments default to strict, a recognized production environment
// defaults to warn, and everything else (development) defaults to strict.
func ResolveValidationMode(opts Options) ValidationMode {
	if opts.ValidationMode.IsValid() {
		return opts.ValidationMode
	}
	if os.Getenv("CI") != "" {
		return ValidationStrict
	}
	switch strings.ToLower(os.Getenv("LEXDRAFT_ENV")) {
	case "production", "prod":
		return ValidationWarn
	}
	return ValidationStrict
}

// NormalizeValidationMode maps a raw string to a ValidationMode, returning
// the zero value for unrecognized input so ResolveValidationMode can fall
// back to environment defaults.
func NormalizeValidationMode(raw string) ValidationMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "strict":
		return ValidationStrict
	case "warn", "warning":
		return ValidationWarn
	case "silent", "none":
		return ValidationSilent
	default:
		return ""
	}
}
