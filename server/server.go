// Package server exposes the hub as an MCP stdio server. Four tools cover
// the unified operations; every response, success or failure, is a JSON
// envelope in the tool result text. Domain failures are reported through
// the result's error flag, never as protocol errors, so callers always get
// the structured error code.
package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kart-io/metahub"
	"github.com/kart-io/metahub/logger"
)

// ServerName identifies this MCP server to clients
const ServerName = "metahub"

// MCPServer bridges MCP tool calls onto the hub's dispatch router
type MCPServer struct {
	hub       *metahub.Hub
	logger    logger.Interface
	mcpServer *server.MCPServer
}

// NewMCPServer creates the MCP server and registers the four tools
func NewMCPServer(hub *metahub.Hub, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
	)

	s := &MCPServer{
		hub:       hub,
		logger:    hub.Logger(),
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdio and blocks until the client closes the
// connection. Stdout belongs to the protocol; all logging goes to stderr.
func (s *MCPServer) Start(ctx context.Context) error {
	s.logger.Info(ctx, "mcp server listening on stdio", "platforms", s.hub.Platforms())
	return server.ServeStdio(s.mcpServer)
}

func (s *MCPServer) registerTools() {
	sendTool := mcp.NewTool("meta_send_message",
		mcp.WithDescription("Send a direct message to a recipient on Facebook (Messenger), Instagram, or WhatsApp"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Target platform: facebook, instagram, or whatsapp"),
		),
		mcp.WithString("recipient_id",
			mcp.Required(),
			mcp.Description("Recipient identifier: a PSID for Facebook, an IGSID for Instagram, or an E.164 phone number for WhatsApp"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Message text, at most 2000 characters"),
		),
		mcp.WithString("media_url",
			mcp.Description("Optional http(s) URL of an image to attach"),
		),
	)
	s.mcpServer.AddTool(sendTool, s.handleSendMessage)

	getTool := mcp.NewTool("meta_get_messages",
		mcp.WithDescription("Fetch recent messages from a conversation on Facebook or Instagram, most recent first"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Source platform: facebook or instagram"),
		),
		mcp.WithString("conversation_id",
			mcp.Description("Conversation thread id; either this or recipient_id is required"),
		),
		mcp.WithString("recipient_id",
			mcp.Description("Counterpart user id; either this or conversation_id is required"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum messages to return, 1-100, default 10"),
		),
		mcp.WithString("after",
			mcp.Description("Pagination cursor from a previous call's next_cursor"),
		),
	)
	s.mcpServer.AddTool(getTool, s.handleGetMessages)

	postTool := mcp.NewTool("meta_post_content",
		mcp.WithDescription("Publish a post to a Facebook Page feed or an Instagram professional account"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Target platform: facebook or instagram"),
		),
		mcp.WithString("content",
			mcp.Description("Post text or caption, at most 2200 characters"),
		),
		mcp.WithArray("media_urls",
			mcp.Description("http(s) URLs of media to publish; required for Instagram"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("target_id",
			mcp.Description("Optional page or account id to publish as; defaults to the token's own account"),
		),
	)
	s.mcpServer.AddTool(postTool, s.handlePostContent)

	analyticsTool := mcp.NewTool("meta_get_analytics",
		mcp.WithDescription("Fetch account analytics from Facebook or Instagram insights"),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Source platform: facebook or instagram"),
		),
		mcp.WithArray("metrics",
			mcp.Required(),
			mcp.Description("Metrics to fetch: impressions, reach, engagement, followers, profile_views"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("period",
			mcp.Description("Aggregation window: day, week, or month; default day"),
		),
	)
	s.mcpServer.AddTool(analyticsTool, s.handleGetAnalytics)
}
