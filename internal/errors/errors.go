// Package errors provides a lightweight structured error type (HRError)
// for category-based classification in HTTP adapters and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an HRError for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotAllowed ErrorCategory = "not_allowed"

	// Domain errors
	CategoryNotFound ErrorCategory = "not_found"
	CategoryConflict ErrorCategory = "conflict"

	// External system integration errors
	CategoryStorage   ErrorCategory = "storage"
	CategoryMessaging ErrorCategory = "messaging"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryDaemon   ErrorCategory = "daemon"
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

// HRError is a structured error with category, retryability, and context
type HRError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// Build returns the error itself, keeping call sites fluent.
func (e *HRError) Build() *HRError {
	return e
}

// ContextFields carries structured context for HRError
type ContextFields map[string]any

// Error implements the error interface
func (e *HRError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *HRError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *HRError) WithContext(key string, value any) *HRError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithSeverity overrides the error severity
func (e *HRError) WithSeverity(severity ErrorSeverity) *HRError {
	e.Severity = severity
	return e
}

// New creates a new HRError
func New(category ErrorCategory, severity ErrorSeverity, message string) *HRError {
	return &HRError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new HRError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *HRError {
	return &HRError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// WrapRetryable creates a new retryable HRError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *HRError {
	return &HRError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if hre, ok := err.(*HRError); ok {
		return hre.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if hre, ok := err.(*HRError); ok {
		return hre.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an HRError
func GetCategory(err error) ErrorCategory {
	if hre, ok := err.(*HRError); ok {
		return hre.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request)
func ValidationError(message string) *HRError {
	return &HRError{
		Category:  CategoryValidation,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// MethodNotAllowedError creates a new method-not-allowed error (405)
func MethodNotAllowedError(message string) *HRError {
	return &HRError{
		Category:  CategoryNotAllowed,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// NotFoundError creates a new not-found error (404)
func NotFoundError(message string) *HRError {
	return &HRError{
		Category:  CategoryNotFound,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// ConflictError creates a new conflict error (409)
func ConflictError(message string) *HRError {
	return &HRError{
		Category:  CategoryConflict,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// StorageError creates a new storage error
func StorageError(message string) *HRError {
	return &HRError{
		Category:  CategoryStorage,
		Severity:  SeverityError,
		Message:   message,
		Retryable: false,
	}
}

// DaemonError creates a new daemon error (service unavailable)
func DaemonError(message string) *HRError {
	return &HRError{
		Category:  CategoryDaemon,
		Severity:  SeverityError,
		Message:   message,
		Retryable: false,
	}
}

// WrapError wraps an existing error with a new HRError
func WrapError(err error, category ErrorCategory, message string) *HRError {
	return &HRError{
		Category:  category,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}
