package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kart-io/metahub/core"
)

func (s *MCPServer) handleSendMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, result := requirePlatform(request)
	if result != nil {
		return result, nil
	}
	recipientID, err := request.RequireString("recipient_id")
	if err != nil {
		return mcp.NewToolResultError("recipient_id argument is required"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required"), nil
	}

	args := request.GetArguments()
	req := &core.SendRequest{
		Platform:    platform,
		RecipientID: recipientID,
		Content:     content,
		MediaURL:    stringArg(args, "media_url"),
	}

	res, err := s.hub.SendMessage(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(platform.String(), res,
		fmt.Sprintf("message delivered to %s", recipientID)), nil
}

func (s *MCPServer) handleGetMessages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, result := requirePlatform(request)
	if result != nil {
		return result, nil
	}

	args := request.GetArguments()
	req := &core.GetMessagesRequest{
		Platform:       platform,
		ConversationID: stringArg(args, "conversation_id"),
		RecipientID:    stringArg(args, "recipient_id"),
		Limit:          intArg(args, "limit"),
		After:          stringArg(args, "after"),
	}

	res, err := s.hub.GetMessages(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(platform.String(), res,
		fmt.Sprintf("fetched %d messages", len(res.Messages))), nil
}

func (s *MCPServer) handlePostContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, result := requirePlatform(request)
	if result != nil {
		return result, nil
	}

	args := request.GetArguments()
	req := &core.PostRequest{
		Platform:  platform,
		Content:   stringArg(args, "content"),
		MediaURLs: stringSliceArg(args, "media_urls"),
		TargetID:  stringArg(args, "target_id"),
	}

	res, err := s.hub.PostContent(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(platform.String(), res, "content published"), nil
}

func (s *MCPServer) handleGetAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	platform, result := requirePlatform(request)
	if result != nil {
		return result, nil
	}

	args := request.GetArguments()
	metrics := make([]core.Metric, 0, len(core.Metrics()))
	for _, m := range stringSliceArg(args, "metrics") {
		metrics = append(metrics, core.Metric(m))
	}

	req := &core.AnalyticsRequest{
		Platform: platform,
		Metrics:  metrics,
		Period:   core.Period(stringArg(args, "period")),
	}

	res, err := s.hub.GetAnalytics(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(platform.String(), res,
		fmt.Sprintf("fetched %d metrics for period %s", len(res.Metrics), res.Period)), nil
}

// requirePlatform parses the platform argument, returning an error result
// when it is missing or unknown
func requirePlatform(request mcp.CallToolRequest) (core.Platform, *mcp.CallToolResult) {
	raw, err := request.RequireString("platform")
	if err != nil {
		return "", mcp.NewToolResultError("platform argument is required")
	}
	platform, err := core.ParsePlatform(raw)
	if err != nil {
		return "", mcp.NewToolResultError(
			fmt.Sprintf("unknown platform %q, expected one of facebook, instagram, whatsapp", raw))
	}
	return platform, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg reads a numeric argument. JSON numbers decode as float64.
func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// stringSliceArg reads an array-of-strings argument, tolerating a bare
// string for single-element lists
func stringSliceArg(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
