// Package whatsapp implements the platform adapter for the WhatsApp
// Business Cloud API. The Cloud API is webhook-driven: it offers sends
// only, so every other unified operation is a capability mismatch.
package whatsapp

import (
	"context"
	"fmt"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/internal/graph"
	"github.com/kart-io/metahub/logger"
	"github.com/kart-io/metahub/platforms"
)

// Adapter services the whatsapp platform against the Cloud API
type Adapter struct {
	client        *graph.Client
	phoneNumberID string
	logger        logger.Interface
}

// New creates a WhatsApp adapter. phoneNumberID is the business phone
// number the Cloud API addresses sends through; it becomes a path segment
// on every call.
func New(accessToken, phoneNumberID, apiVersion string, log logger.Interface, opts ...graph.Option) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{
		client:        graph.NewClient(core.PlatformWhatsApp, accessToken, apiVersion, opts...),
		phoneNumberID: phoneNumberID,
		logger:        log,
	}
}

// Name returns the platform this adapter services
func (a *Adapter) Name() core.Platform {
	return core.PlatformWhatsApp
}

// SendMessage delivers a message to an E.164 phone number
func (a *Adapter) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                req.RecipientID,
		"type":              "text",
		"text":              map[string]string{"body": req.Content},
	}
	if req.MediaURL != "" {
		payload["type"] = "image"
		payload["image"] = map[string]string{"link": req.MediaURL}
		delete(payload, "text")
	}

	var resp struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := a.client.Post(ctx, fmt.Sprintf("%s/messages", a.phoneNumberID), payload, &resp); err != nil {
		return nil, err
	}

	messageID := "unknown"
	if len(resp.Messages) > 0 {
		messageID = resp.Messages[0].ID
	}

	a.logger.Info(ctx, "sent whatsapp message", "recipient_id", req.RecipientID)
	return &core.SendResult{Platform: core.PlatformWhatsApp, MessageID: messageID}, nil
}

// GetMessages is not supported: the Cloud API has no history read endpoint
func (a *Adapter) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	return nil, platforms.ErrUnsupported(core.PlatformWhatsApp, core.OpGetMessages)
}

// PostContent is not supported: WhatsApp has no feed
func (a *Adapter) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	return nil, platforms.ErrUnsupported(core.PlatformWhatsApp, core.OpPostContent)
}

// GetAnalytics is not supported on the Cloud API
func (a *Adapter) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	return nil, platforms.ErrUnsupported(core.PlatformWhatsApp, core.OpGetAnalytics)
}
