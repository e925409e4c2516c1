package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmanError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("permission denied")

	// When: wrapping with AmanError
	amanErr := New(ErrCodeTraversalFailed, "cannot read directory /tmp/x", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, amanErr)
	assert.Equal(t, originalErr, errors.Unwrap(amanErr))
	assert.True(t, errors.Is(amanErr, originalErr))
}

func TestAmanError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigInvalid,
			message:  "workers must be positive",
			expected: "[ERR_102_CONFIG_INVALID] workers must be positive",
		},
		{
			name:     "traversal error",
			code:     ErrCodeTraversalFailed,
			message:  "cannot read directory src",
			expected: "[ERR_207_TRAVERSAL_FAILED] cannot read directory src",
		},
		{
			name:     "pattern error",
			code:     ErrCodeInvalidPattern,
			message:  "bad regex",
			expected: "[ERR_407_INVALID_PATTERN] bad regex",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAmanError_Is_MatchesByCode(t *testing.T) {
	// Given: two errors with same code
	err1 := InvalidPattern("(", nil)
	err2 := InvalidPattern("[", nil)

	// Then: they match by code, and against the sentinel
	assert.True(t, errors.Is(err1, err2))
	assert.True(t, errors.Is(err1, ErrInvalidPattern))
	assert.False(t, errors.Is(err1, ErrTraversal))
}

func TestAmanError_Is_ThroughFmtWrapping(t *testing.T) {
	// Given: a traversal error wrapped by fmt.Errorf
	err := fmt.Errorf("search failed: %w", TraversalError("/missing", errors.New("no such file")))

	// Then: the sentinel still matches and code lookup walks the chain
	assert.True(t, errors.Is(err, ErrTraversal))
	assert.Equal(t, ErrCodeTraversalFailed, GetCode(err))
	assert.True(t, IsFatal(err))
}

func TestAmanError_WithDetails_AddsContext(t *testing.T) {
	// Given: a base error
	err := New(ErrCodeFileNotFound, "file not found", nil)

	// When: adding details
	err = err.WithDetail("path", "/foo/bar.go")
	err = err.WithDetail("size", "1024")

	// Then: details are available
	assert.Equal(t, "/foo/bar.go", err.Details["path"])
	assert.Equal(t, "1024", err.Details["size"])
}

func TestAmanError_CategoryFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantCategory Category
	}{
		{ErrCodeConfigNotFound, CategoryConfig},
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeFileNotFound, CategoryIO},
		{ErrCodeTraversalFailed, CategoryIO},
		{ErrCodeReportWrite, CategoryIO},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeInvalidPattern, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{ErrCodeSearchFailed, CategoryInternal},
		{"BAD", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantCategory, err.Category)
		})
	}
}

func TestAmanError_SeverityFromCode(t *testing.T) {
	tests := []struct {
		code         string
		wantSeverity Severity
	}{
		{ErrCodeInvalidPattern, SeverityFatal},
		{ErrCodeTraversalFailed, SeverityFatal},
		{ErrCodeReportWrite, SeverityWarning},
		{ErrCodeFileNotFound, SeverityError},
		{ErrCodeConfigInvalid, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test message", nil)
			assert.Equal(t, tt.wantSeverity, err.Severity)
		})
	}
}

func TestWrap_CreatesAmanErrorFromError(t *testing.T) {
	// Given: a standard error
	originalErr := errors.New("something went wrong")

	// When: wrapping with a code
	amanErr := Wrap(ErrCodeInternal, originalErr)

	// Then: creates proper AmanError
	require.NotNil(t, amanErr)
	assert.Equal(t, ErrCodeInternal, amanErr.Code)
	assert.Equal(t, "something went wrong", amanErr.Message)
	assert.Equal(t, originalErr, amanErr.Cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestInvalidPattern_CarriesPatternAndSuggestion(t *testing.T) {
	cause := errors.New("missing closing )")
	err := InvalidPattern("(abc", cause)

	assert.Equal(t, ErrCodeInvalidPattern, err.Code)
	assert.Equal(t, "(abc", err.Details["pattern"])
	assert.NotEmpty(t, err.Suggestion)
	assert.Equal(t, cause, err.Cause)
}

func TestTraversalError_IncludesPathAndCause(t *testing.T) {
	err := TraversalError("/data/locked", errors.New("permission denied"))

	assert.Equal(t, "/data/locked", err.Details["path"])
	assert.Contains(t, err.Message, "/data/locked")
	assert.Contains(t, err.Message, "permission denied")
}

func TestConfigError_CreatesConfigCategoryError(t *testing.T) {
	err := ConfigError("invalid yaml syntax", nil)

	assert.Equal(t, CategoryConfig, err.Category)
	assert.Contains(t, err.Code, "CONFIG")
}

func TestValidationError_CreatesValidationCategoryError(t *testing.T) {
	err := ValidationError("pattern cannot be empty", nil)

	assert.Equal(t, CategoryValidation, err.Category)
}

func TestIsFatal_ChecksFatalSeverity(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "invalid pattern",
			err:      InvalidPattern("(", nil),
			expected: true,
		},
		{
			name:     "traversal failure",
			err:      TraversalError("/nope", nil),
			expected: true,
		},
		{
			name:     "non-fatal error",
			err:      New(ErrCodeFileNotFound, "not found", nil),
			expected: false,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFatal(tt.err))
		})
	}
}
