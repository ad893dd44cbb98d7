// Package facebook implements the platform adapter for Facebook Pages:
// Messenger sends, conversation history, feed posts, and Page insights.
package facebook

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/internal/graph"
	"github.com/kart-io/metahub/logger"
)

// Adapter services the facebook platform against the Graph API
type Adapter struct {
	client *graph.Client
	logger logger.Interface
}

// New creates a Facebook adapter. The access token must be a Page access
// token; user tokens are rejected upstream with a 403.
func New(accessToken, apiVersion string, log logger.Interface, opts ...graph.Option) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{
		client: graph.NewClient(core.PlatformFacebook, accessToken, apiVersion, opts...),
		logger: log,
	}
}

// Name returns the platform this adapter services
func (a *Adapter) Name() core.Platform {
	return core.PlatformFacebook
}

// SendMessage delivers a Messenger message to one PSID
func (a *Adapter) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	message := map[string]interface{}{"text": req.Content}
	if req.MediaURL != "" {
		message = map[string]interface{}{
			"attachment": map[string]interface{}{
				"type":    "image",
				"payload": map[string]interface{}{"url": req.MediaURL, "is_reusable": true},
			},
		}
		if req.Content != "" {
			message["text"] = req.Content
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

	a.logger.Info(ctx, "sent facebook message", "recipient_id", req.RecipientID)
	return &core.SendResult{Platform: core.PlatformFacebook, MessageID: resp.MessageID}, nil
}

// GetMessages pages through a conversation's history. A conversation id is
// required; resolving one from a recipient id needs the conversations
// listing endpoint, which Page tokens often lack permission for.
func (a *Adapter) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	if req.ConversationID == "" {
		return nil, errors.Newf(errors.CodeMissingIdentifier, errors.CategoryValidation,
			"conversation_id is required for facebook messages")
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
		Platform:   core.PlatformFacebook,
		Messages:   page.ToMessages(req.ConversationID),
		NextCursor: page.NextCursor(),
	}, nil
}

// PostContent publishes to the Page feed
func (a *Adapter) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	pageID := req.TargetID
	if pageID == "" {
		pageID = "me"
	}

	payload := map[string]interface{}{}
	if req.Content != "" {
		payload["message"] = req.Content
	}
	if len(req.MediaURLs) > 0 {
		payload["link"] = req.MediaURLs[0]
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := a.client.Post(ctx, fmt.Sprintf("%s/feed", pageID), payload, &resp); err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "posted to facebook feed", "page_id", pageID)
	return &core.PostResult{Platform: core.PlatformFacebook, PostID: resp.ID}, nil
}

// GetAnalytics queries Page insights. Each metric is its own endpoint path,
// so requests fan out concurrently and merge into one result.
func (a *Adapter) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	period := req.Period
	if period == "" {
		period = core.PeriodDay
	}

	result := &core.AnalyticsResult{
		Platform: core.PlatformFacebook,
		Period:   period,
		Metrics:  make(map[core.Metric][]core.MetricValue, len(req.Metrics)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, metric := range req.Metrics {
		g.Go(func() error {
			query := url.Values{}
			query.Set("period", string(period))

			var resp graph.InsightsResponse
			if err := a.client.Get(gctx, fmt.Sprintf("me/insights/%s", metric), query, &resp); err != nil {
				return err
			}

			var values []core.MetricValue
			for _, ins := range resp.Data {
				values = append(values, ins.ToMetricValues()...)
			}

			mu.Lock()
			result.Metrics[metric] = values
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
