package server

import (
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kart-io/metahub/core/errors"
)

// Response is the success envelope every tool returns
type Response struct {
	Success   bool        `json:"success"`
	Platform  string      `json:"platform,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the failure envelope. The code and retryable flag let
// a caller decide whether trying again can help.
type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	Platform     string `json:"platform,omitempty"`
	Retryable    bool   `json:"retryable"`
	Timestamp    string `json:"timestamp"`
}

func successResult(platform string, data interface{}, message string) *mcp.CallToolResult {
	resp := Response{
		Success:   true,
		Platform:  platform,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	out, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError("failed to encode response: " + err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

// errorResult renders err as the failure envelope. Anything that is not a
// BridgeError is reported as an API error; adapters normalize upstream
// failures before they reach this point.
func errorResult(err error) *mcp.CallToolResult {
	resp := ErrorResponse{
		ErrorCode:    string(errors.CodeOf(err)),
		ErrorMessage: err.Error(),
		Retryable:    errors.IsRetryable(err),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	var be *errors.BridgeError
	if stderrors.As(err, &be) {
		resp.Platform = be.Platform
		resp.ErrorMessage = be.Message
	}
	out, merr := json.Marshal(resp)
	if merr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(out))
}
