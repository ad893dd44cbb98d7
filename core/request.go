package core

// Request shapes consumed read-only by the router and the adapters. The
// tool facade constructs one per call; nothing outlives the dispatch.

// SendRequest delivers a direct message to one recipient
type SendRequest struct {
	Platform    Platform `json:"platform"`
	RecipientID string   `json:"recipient_id"`
	Content     string   `json:"content"`
	MediaURL    string   `json:"media_url,omitempty"`
}

// GetMessagesRequest pages through a conversation's history.
// At least one of ConversationID or RecipientID must be set; After carries
// the upstream pagination cursor unmodified.
type GetMessagesRequest struct {
	Platform       Platform `json:"platform"`
	ConversationID string   `json:"conversation_id,omitempty"`
	RecipientID    string   `json:"recipient_id,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	After          string   `json:"after,omitempty"`
}

// DefaultMessageLimit applies when a GetMessagesRequest leaves Limit unset
const DefaultMessageLimit = 10

// MaxMessageLimit bounds a single GetMessages page
const MaxMessageLimit = 100

// PostRequest publishes content to a platform feed. TargetID overrides the
// page/account the token defaults to.
type PostRequest struct {
	Platform  Platform `json:"platform"`
	Content   string   `json:"content,omitempty"`
	MediaURLs []string `json:"media_urls,omitempty"`
	TargetID  string   `json:"target_id,omitempty"`
}

// AnalyticsRequest queries one or more metrics over a period
type AnalyticsRequest struct {
	Platform Platform `json:"platform"`
	Metrics  []Metric `json:"metrics"`
	Period   Period   `json:"period,omitempty"`
}
