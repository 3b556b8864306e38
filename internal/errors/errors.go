// Package errors provides a lightweight structured error type (LexdraftError)
// for category-based classification across pipeline construction and
// document processing.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a lexdraft error for classification
type ErrorCategory string

const (
	// Pipeline configuration errors (unregistered transform, missing phase,
	// ordering cycle). Always fatal, raised before any document is touched.
	CategoryConfig ErrorCategory = "config"

	// Order/capability violations detected after sorting. Fatal only in
	// strict validation mode.
	CategoryValidation ErrorCategory = "validation"

	// Per-document content anomalies (malformed format tokens, duplicate
	// cross-reference keys, unresolved references). Never fatal.
	CategoryContent ErrorCategory = "content"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// LexdraftError is a structured error with category, severity, and context
type LexdraftError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for LexdraftError
type ContextFields map[string]any

// Error implements the error interface
func (e *LexdraftError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *LexdraftError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *LexdraftError) WithContext(key string, value any) *LexdraftError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new LexdraftError
func New(category ErrorCategory, severity ErrorSeverity, message string) *LexdraftError {
	return &LexdraftError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Newf creates a new LexdraftError with a formatted message
func Newf(category ErrorCategory, severity ErrorSeverity, format string, args ...any) *LexdraftError {
	return &LexdraftError{
		Category: category,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new LexdraftError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *LexdraftError {
	return &LexdraftError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// ConfigError creates a fatal pipeline configuration error.
func ConfigError(message string) *LexdraftError {
	return &LexdraftError{
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// ConfigErrorf creates a fatal pipeline configuration error with formatting.
func ConfigErrorf(format string, args ...any) *LexdraftError {
	return ConfigError(fmt.Sprintf(format, args...))
}

// ValidationError creates an order/capability violation error.
func ValidationError(message string) *LexdraftError {
	return &LexdraftError{
		Category: CategoryValidation,
		Severity: SeverityError,
		Message:  message,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if le, ok := err.(*LexdraftError); ok {
		return le.Category == category
	}
	return false
}

// IsFatal checks if an error carries fatal severity.
func IsFatal(err error) bool {
	if le, ok := err.(*LexdraftError); ok {
		return le.Severity == SeverityFatal
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a LexdraftError
func GetCategory(err error) ErrorCategory {
	if le, ok := err.(*LexdraftError); ok {
		return le.Category
	}
	return CategoryInternal
}
