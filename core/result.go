package core

import "time"

// Result shapes produced by adapters and tagged with the source platform by
// the router before they cross the tool facade boundary.

// SendResult reports a delivered message
type SendResult struct {
	Platform  Platform `json:"platform"`
	MessageID string   `json:"message_id"`
}

// Message is the unified shape of one conversation message
type Message struct {
	ID             string                 `json:"id"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	SenderID       string                 `json:"sender_id,omitempty"`
	RecipientID    string                 `json:"recipient_id,omitempty"`
	Content        string                 `json:"content,omitempty"`
	MediaURL       string                 `json:"media_url,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Raw            map[string]interface{} `json:"raw,omitempty"`
}

// MessagesResult is one page of conversation history, most recent first.
// NextCursor is the upstream pagination cursor, passed through unmodified;
// empty means the last page.
type MessagesResult struct {
	Platform   Platform  `json:"platform"`
	Messages   []Message `json:"messages"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// PostResult reports a published feed post
type PostResult struct {
	Platform Platform `json:"platform"`
	PostID   string   `json:"post_id"`
}

// MetricValue is one sampled value of a metric
type MetricValue struct {
	Value   int64     `json:"value"`
	EndTime time.Time `json:"end_time,omitempty"`
}

// AnalyticsResult maps each requested metric to its sampled values
type AnalyticsResult struct {
	Platform Platform                 `json:"platform"`
	Period   Period                   `json:"period"`
	Metrics  map[Metric][]MetricValue `json:"metrics"`
}
