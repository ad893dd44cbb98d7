// Package instagram implements the platform adapter for Instagram
// professional accounts: direct message sends, conversation history, media
// publishing, and account insights.
package instagram

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/internal/graph"
	"github.com/kart-io/metahub/logger"
)

// Adapter services the instagram platform against the Graph API
type Adapter struct {
	client *graph.Client
	logger logger.Interface
}

// New creates an Instagram adapter
func New(accessToken, apiVersion string, log logger.Interface, opts ...graph.Option) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{
		client: graph.NewClient(core.PlatformInstagram, accessToken, apiVersion, opts...),
		logger: log,
	}
}

// Name returns the platform this adapter services
func (a *Adapter) Name() core.Platform {
	return core.PlatformInstagram
}

// SendMessage delivers an Instagram Direct message
func (a *Adapter) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	message := map[string]interface{}{"text": req.Content}
	if req.MediaURL != "" {
		message = map[string]interface{}{
			"attachment": map[string]interface{}{
				"type":    "image",
				"payload": map[string]interface{}{"url": req.MediaURL},
			},
		}
	}

	payload := map[string]interface{}{
		"recipient": map[string]string{"id": req.RecipientID},
		"message":   message,
	}

	var resp struct {
		RecipientID string `json:"recipient_id"`
		MessageID   string `json:"message_id"`
	}
	if err := a.client.Post(ctx, "me/messages", payload, &resp); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "sent instagram message", "recipient_id", req.RecipientID)
	return &core.SendResult{Platform: core.PlatformInstagram, MessageID: resp.MessageID}, nil
}

// GetMessages pages through a Direct conversation's history
func (a *Adapter) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	if req.ConversationID == "" {
		return nil, errors.Newf(errors.CodeMissingIdentifier, errors.CategoryValidation,
			"conversation_id is required for instagram messages")
	}

	limit := req.Limit
	if limit == 0 {
		limit = core.DefaultMessageLimit
	}

	query := url.Values{}
	query.Set("fields", "id,created_time,from,to,message")
	query.Set("limit", strconv.Itoa(limit))
	if req.After != "" {
		query.Set("after", req.After)
	}

	var page graph.MessagePage
	if err := a.client.Get(ctx, fmt.Sprintf("%s/messages", req.ConversationID), query, &page); err != nil {
		return nil, err
	}

	return &core.MessagesResult{
		Platform:   core.PlatformInstagram,
		Messages:   page.ToMessages(req.ConversationID),
		NextCursor: page.NextCursor(),
	}, nil
}

// PostContent publishes media to the feed using the two-step container
// flow: create a media container, then publish it.
func (a *Adapter) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	userID := req.TargetID
	if userID == "" {
		userID = "me"
	}

	container := map[string]interface{}{
		"image_url": req.MediaURLs[0],
		"caption":   req.Content,
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := a.client.Post(ctx, fmt.Sprintf("%s/media", userID), container, &created); err != nil {
		return nil, err
	}

	publish := map[string]interface{}{"creation_id": created.ID}
	var resp struct {
		ID string `json:"id"`
	}
	if err := a.client.Post(ctx, fmt.Sprintf("%s/media_publish", userID), publish, &resp); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "posted to instagram feed", "user_id", userID)
	return &core.PostResult{Platform: core.PlatformInstagram, PostID: resp.ID}, nil
}

// GetAnalytics queries account insights. The insights endpoint accepts a
// comma-separated metric list, so one round trip covers the whole request.
func (a *Adapter) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	period := req.Period
	if period == "" {
		period = core.PeriodDay
	}

	names := make([]string, 0, len(req.Metrics))
	for _, m := range req.Metrics {
		names = append(names, string(m))
	}

	query := url.Values{}
	query.Set("metric", strings.Join(names, ","))
	query.Set("period", string(period))

	var resp graph.InsightsResponse
	if err := a.client.Get(ctx, "me/insights", query, &resp); err != nil {
		return nil, err
	}

	result := &core.AnalyticsResult{
		Platform: core.PlatformInstagram,
		Period:   period,
		Metrics:  make(map[core.Metric][]core.MetricValue, len(resp.Data)),
	}
	for _, ins := range resp.Data {
		result.Metrics[core.Metric(ins.Name)] = ins.ToMetricValues()
	}
	return result, nil
}
