package errors

import (
	"fmt"
)

// AmanError is the structured error type for amangrep.
// It carries enough context for logging, JSON output and CLI presentation.
type AmanError struct {
	// Code is the unique error code (e.g., "ERR_407_INVALID_PATTERN").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *AmanError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *AmanError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with AmanError.
func (e *AmanError) Is(target error) bool {
	if t, ok := target.(*AmanError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *AmanError) WithDetail(key, value string) *AmanError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *AmanError) WithSuggestion(suggestion string) *AmanError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AmanError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *AmanError {
	return &AmanError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an AmanError from an existing error.
// The error's message becomes the AmanError message.
func Wrap(code string, err error) *AmanError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is comparisons. Only the code is compared.
var (
	ErrInvalidPattern = &AmanError{Code: ErrCodeInvalidPattern}
	ErrTraversal      = &AmanError{Code: ErrCodeTraversalFailed}
)

// InvalidPattern reports a regular expression that failed to compile.
func InvalidPattern(pattern string, cause error) *AmanError {
	return New(ErrCodeInvalidPattern, fmt.Sprintf("invalid regular expression %q", pattern), cause).
		WithDetail("pattern", pattern).
		WithSuggestion("Check the expression syntax, or drop --regex for a literal search")
}

// TraversalError reports a root or directory that could not be listed.
func TraversalError(path string, cause error) *AmanError {
	msg := fmt.Sprintf("cannot read directory %s", path)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return New(ErrCodeTraversalFailed, msg, cause).WithDetail("path", path)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *AmanError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *AmanError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *AmanError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the search with no partial report.
func IsFatal(err error) bool {
	ae := asAmanError(err)
	return ae != nil && ae.Severity == SeverityFatal
}

// GetCode extracts the error code from an AmanError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	if ae := asAmanError(err); ae != nil {
		return ae.Code
	}
	return ""
}

// asAmanError walks the Unwrap chain looking for an AmanError.
func asAmanError(err error) *AmanError {
	for err != nil {
		if ae, ok := err.(*AmanError); ok {
			return ae
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}
