package errors

import "fmt"

// Standard sentinel errors. Compare with errors.Is; Is matches on code and
// category, so platform-tagged copies still match their sentinel.
var (
	ErrInvalidPlatform   = New(CodeInvalidPlatform, CategoryValidation, "invalid or unknown platform")
	ErrMissingIdentifier = New(CodeMissingIdentifier, CategoryValidation, "either conversation_id or recipient_id must be provided")
	ErrMissingContent    = New(CodeMissingContent, CategoryValidation, "at least one of content or media_urls must be provided")

	ErrAuthFailed       = New(CodeAuthFailed, CategoryAuth, "authentication failed")
	ErrPermissionDenied = New(CodePermissionDenied, CategoryAuth, "insufficient permissions")

	ErrMissingAdapter = New(CodeMissingAdapter, CategoryConfig, "no adapter configured for platform")

	ErrRateLimited  = New(CodeRateLimited, CategoryUpstream, "rate limit exceeded")
	ErrNetworkError = New(CodeNetworkError, CategoryUpstream, "network communication failed")
)

// NewValidation creates a caller-fault error, never retried
func NewValidation(format string, args ...interface{}) *BridgeError {
	return Newf(CodeValidationFailed, CategoryValidation, format, args...)
}

// NewUnsupported creates a capability error naming platform and operation
func NewUnsupported(platform string, operation string) *BridgeError {
	e := Newf(CodeUnsupportedOperation, CategoryCapability,
		"operation %q is not supported on platform %q", operation, platform)
	e.Platform = platform
	return e
}

// NewConfiguration creates a dispatch-time configuration error
func NewConfiguration(platform string, format string, args ...interface{}) *BridgeError {
	e := Newf(CodeMissingConfig, CategoryConfig, format, args...)
	e.Platform = platform
	return e
}

// NewNetwork wraps a transport-level failure (dial, TLS, timeout) as a
// retryable upstream error
func NewNetwork(platform string, cause error) *BridgeError {
	e := New(CodeNetworkError, CategoryUpstream, fmt.Sprintf("request failed: %v", cause))
	e.Platform = platform
	e.Cause = cause
	return e
}
