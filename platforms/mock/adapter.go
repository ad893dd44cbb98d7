// Package mock implements the demo-mode adapter. It fabricates results in
// memory for all four operations, never touches the network, and accepts
// the same request shapes as the real adapters, so the dispatch path is
// identical in demo mode apart from adapter selection at startup.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/logger"
)

// Adapter fabricates results for one platform tag. Identifiers combine a
// monotonically increasing counter with the platform name, so output is
// recognizably synthetic yet stable in shape.
type Adapter struct {
	platform core.Platform
	counter  atomic.Int64
	baseTime time.Time
	logger   logger.Interface
}

// New creates a mock adapter standing in for platform
func New(platform core.Platform, log logger.Interface) *Adapter {
	if log == nil {
		log = logger.Discard
	}
	return &Adapter{
		platform: platform,
		baseTime: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		logger:   log,
	}
}

// Name returns the platform this adapter stands in for
func (a *Adapter) Name() core.Platform {
	return a.platform
}

// SendMessage fabricates a message id
func (a *Adapter) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	id := fmt.Sprintf("mock_msg_%s_%d", a.platform, a.counter.Add(1))
	a.logger.Info(ctx, "[demo] sent message", "platform", a.platform, "recipient_id", req.RecipientID)
	return &core.SendResult{Platform: a.platform, MessageID: id}, nil
}

// GetMessages returns a fixed-shape fake history. The same cursor always
// yields the same page: the empty cursor is page one, "mock_cursor_2" is
// the final page, anything else is empty.
func (a *Adapter) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = "mock_conv_" + req.RecipientID
	}

	var page []core.Message
	nextCursor := ""
	switch req.After {
	case "":
		page = a.fakePage(conversationID, 0)
		nextCursor = "mock_cursor_2"
	case "mock_cursor_2":
		page = a.fakePage(conversationID, 3)
	}

	limit := req.Limit
	if limit == 0 {
		limit = core.DefaultMessageLimit
	}
	if len(page) > limit {
		page = page[:limit]
	}

	a.logger.Info(ctx, "[demo] retrieved messages", "platform", a.platform, "count", len(page))
	return &core.MessagesResult{
		Platform:   a.platform,
		Messages:   page,
		NextCursor: nextCursor,
	}, nil
}

// fakePage fabricates three messages starting at offset, most recent first
func (a *Adapter) fakePage(conversationID string, offset int) []core.Message {
	msgs := make([]core.Message, 0, 3)
	for i := 0; i < 3; i++ {
		n := offset + i
		msgs = append(msgs, core.Message{
			ID:             fmt.Sprintf("mock_msg_%s_hist_%d", a.platform, n),
			ConversationID: conversationID,
			SenderID:       fmt.Sprintf("mock_user_%d", n),
			RecipientID:    "mock_page",
			Content:        fmt.Sprintf("This is mock message #%d", n+1),
			CreatedAt:      a.baseTime.Add(-time.Duration(n) * time.Minute),
		})
	}
	return msgs
}

// PostContent fabricates a post id
func (a *Adapter) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	id := fmt.Sprintf("mock_post_%s_%d", a.platform, a.counter.Add(1))
	a.logger.Info(ctx, "[demo] posted content", "platform", a.platform,
		"has_content", req.Content != "", "media", len(req.MediaURLs))
	return &core.PostResult{Platform: a.platform, PostID: id}, nil
}

// GetAnalytics returns canned values derived deterministically from the
// metric name and period, so repeated queries agree.
func (a *Adapter) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	period := req.Period
	if period == "" {
		period = core.PeriodDay
	}

	result := &core.AnalyticsResult{
		Platform: a.platform,
		Period:   period,
		Metrics:  make(map[core.Metric][]core.MetricValue, len(req.Metrics)),
	}
	for _, metric := range req.Metrics {
		result.Metrics[metric] = []core.MetricValue{{
			Value:   cannedValue(metric, period),
			EndTime: a.baseTime,
		}}
	}

	a.logger.Info(ctx, "[demo] retrieved analytics", "platform", a.platform, "metrics", len(req.Metrics))
	return result, nil
}

// cannedValue hashes metric+period into a plausible-looking number
func cannedValue(metric core.Metric, period core.Period) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(string(metric) + string(period)))
	return int64(h.Sum32() % 10000)
}
