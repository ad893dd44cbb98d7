package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// graphError is the error envelope the Graph API wraps every failure in
type graphError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		Subcode   int    `json:"error_subcode"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// FromResponse normalizes a non-2xx Graph API response into a BridgeError.
// The mapping follows the documented failure modes:
//
//	401/403            -> AUTH, final (403 is commonly a user token where a
//	                      page token is required; the operator must rotate)
//	429                -> UPSTREAM rate limited, retryable, Retry-After honored
//	400 OAuthException -> AUTH, final
//	400 permission     -> AUTH, final
//	400 otherwise      -> VALIDATION, final
//	404                -> UPSTREAM not found, final
//	5xx                -> UPSTREAM, retryable
func FromResponse(platform string, resp *http.Response, body []byte) *BridgeError {
	var ge graphError
	_ = json.Unmarshal(body, &ge)

	detail := ge.Error.Message
	if detail == "" {
		detail = strings.TrimSpace(string(body))
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	var e *BridgeError
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		e = New(CodeAuthFailed, CategoryAuth, fmt.Sprintf("authentication failed: %s", detail))
	case resp.StatusCode == http.StatusForbidden:
		e = New(CodeAuthFailed, CategoryAuth, fmt.Sprintf(
			"access forbidden: %s (a Page access token is required; user tokens are rejected)", detail))
	case resp.StatusCode == http.StatusTooManyRequests:
		e = New(CodeRateLimited, CategoryUpstream, fmt.Sprintf("rate limit exceeded: %s", detail))
		e.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusBadRequest:
		switch {
		case strings.Contains(ge.Error.Type, "OAuthException"):
			e = New(CodeAuthFailed, CategoryAuth, fmt.Sprintf("authentication failed: %s", detail))
		case strings.Contains(strings.ToLower(ge.Error.Message), "permission"):
			e = New(CodePermissionDenied, CategoryAuth, fmt.Sprintf("insufficient permissions: %s", detail))
		default:
			e = New(CodeValidationFailed, CategoryValidation, fmt.Sprintf("upstream rejected request: %s", detail))
		}
	case resp.StatusCode == http.StatusNotFound:
		e = New(CodeNotFound, CategoryUpstream, fmt.Sprintf("not found: %s", detail))
	case resp.StatusCode >= 500:
		e = New(CodeAPIError, CategoryUpstream, fmt.Sprintf("upstream error: %s", detail))
	default:
		// Remaining 4xx-class statuses are final
		e = New(CodeValidationFailed, CategoryValidation, fmt.Sprintf(
			"unexpected upstream status %d: %s", resp.StatusCode, detail))
	}

	e.Platform = platform
	e.HTTPStatus = resp.StatusCode
	return e
}

// parseRetryAfter understands the delay-seconds form of Retry-After.
// The HTTP-date form is rare on the Graph API and is ignored.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
