// Package errors defines the normalized error shape that crosses the
// dispatch boundary. Callers of the tool facade never see raw upstream
// status codes or transport failures, only a BridgeError.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Validation errors
	CodeInvalidPlatform   ErrorCode = "INVALID_PLATFORM"
	CodeInvalidRecipient  ErrorCode = "INVALID_RECIPIENT"
	CodeInvalidMetric     ErrorCode = "INVALID_METRIC"
	CodeInvalidPeriod     ErrorCode = "INVALID_PERIOD"
	CodeMissingContent    ErrorCode = "MISSING_CONTENT"
	CodeMissingIdentifier ErrorCode = "MISSING_IDENTIFIER"
	CodeValidationFailed  ErrorCode = "VALIDATION_ERROR"

	// Capability errors
	CodeUnsupportedOperation ErrorCode = "PLATFORM_NOT_SUPPORTED"

	// Authentication errors
	CodeAuthFailed       ErrorCode = "AUTH_FAILED"
	CodePermissionDenied ErrorCode = "INSUFFICIENT_PERMISSIONS"

	// Configuration errors
	CodeMissingAdapter ErrorCode = "MISSING_ADAPTER"
	CodeMissingConfig  ErrorCode = "MISSING_CONFIG"

	// Upstream errors
	CodeRateLimited  ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeNetworkError ErrorCode = "NETWORK_ERROR"
	CodeAPIError     ErrorCode = "API_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
)

// retryable reports whether a code marks a transient condition. Network
// failures, 5xx responses (API_ERROR), and 429s are worth another attempt;
// every other code is final.
func retryable(code ErrorCode) bool {
	switch code {
	case CodeNetworkError, CodeAPIError, CodeRateLimited:
		return true
	default:
		return false
	}
}

// Category groups error codes into the dispatch taxonomy. Exactly one
// category is retry-eligible (Upstream); the retry policy consults the
// Retryable flag, not the category, so a 4xx upstream failure stays final.
type Category string

const (
	CategoryValidation Category = "VALIDATION"
	CategoryCapability Category = "CAPABILITY"
	CategoryAuth       Category = "AUTH"
	CategoryConfig     Category = "CONFIG"
	CategoryUpstream   Category = "UPSTREAM"
)

// BridgeError is the only error shape that crosses the dispatch router
// boundary
type BridgeError struct {
	Code     ErrorCode `json:"code"`
	Category Category  `json:"category"`
	Message  string    `json:"message"`
	Platform string    `json:"platform,omitempty"`

	// Retryable marks transient upstream failures. Auth, validation,
	// capability, and configuration failures are never retryable.
	Retryable bool `json:"retryable"`

	// HTTPStatus is the raw upstream status, zero when no HTTP exchange
	// happened
	HTTPStatus int `json:"http_status,omitempty"`

	// RetryAfter carries the upstream Retry-After hint on 429 responses
	RetryAfter time.Duration `json:"-"`

	Cause error `json:"-"`
}

// Error implements the error interface
func (e *BridgeError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("[%s:%s] %s (platform: %s)", e.Category, e.Code, e.Message, e.Platform)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// Is matches on code and category so sentinel comparisons work through
// errors.Is
func (e *BridgeError) Is(target error) bool {
	if t, ok := target.(*BridgeError); ok {
		return e.Code == t.Code && e.Category == t.Category
	}
	return false
}

// WithPlatform returns a copy tagged with the source platform
func (e *BridgeError) WithPlatform(p string) *BridgeError {
	clone := *e
	clone.Platform = p
	return &clone
}

// New creates a BridgeError
func New(code ErrorCode, category Category, message string) *BridgeError {
	return &BridgeError{
		Code:      code,
		Category:  category,
		Message:   message,
		Retryable: retryable(code),
	}
}

// Newf creates a BridgeError with a formatted message
func Newf(code ErrorCode, category Category, format string, args ...interface{}) *BridgeError {
	return New(code, category, fmt.Sprintf(format, args...))
}

// IsRetryable reports whether err is a transient failure worth another
// attempt. Non-BridgeError values are treated as non-retryable; adapters
// normalize before returning, so anything else is a programming error and
// retrying it cannot help.
func IsRetryable(err error) bool {
	if be, ok := err.(*BridgeError); ok {
		return be.Retryable
	}
	return false
}

// RetryAfterHint returns the upstream Retry-After hint, zero when absent
func RetryAfterHint(err error) time.Duration {
	if be, ok := err.(*BridgeError); ok {
		return be.RetryAfter
	}
	return 0
}

// CodeOf returns the error code, CodeAPIError for anything that is not a
// BridgeError, and empty for nil
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if be, ok := err.(*BridgeError); ok {
		return be.Code
	}
	return CodeAPIError
}
