package graph

import (
	"time"

	"github.com/kart-io/metahub/core"
)

// Wire shapes shared by the Facebook and Instagram adapters.

// Party is a conversation participant reference
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// WireMessage is one message as the conversations endpoint returns it
type WireMessage struct {
	ID          string `json:"id"`
	CreatedTime string `json:"created_time"`
	From        Party  `json:"from"`
	To          struct {
		Data []Party `json:"data"`
	} `json:"to"`
	Message string `json:"message"`
}

// MessagePage is one page of conversation history
type MessagePage struct {
	Data   []WireMessage `json:"data"`
	Paging struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next"`
	} `json:"paging"`
}

// ToMessages converts a page into the unified message shape, preserving the
// upstream most-recent-first ordering.
func (p *MessagePage) ToMessages(conversationID string) []core.Message {
	msgs := make([]core.Message, 0, len(p.Data))
	for _, wm := range p.Data {
		m := core.Message{
			ID:             wm.ID,
			ConversationID: conversationID,
			SenderID:       wm.From.ID,
			Content:        wm.Message,
			CreatedAt:      ParseTime(wm.CreatedTime),
		}
		if len(wm.To.Data) > 0 {
			m.RecipientID = wm.To.Data[0].ID
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// NextCursor returns the pagination cursor for the following page, empty on
// the last page. The cursor is opaque and passed through unmodified.
func (p *MessagePage) NextCursor() string {
	if p.Paging.Next == "" {
		return ""
	}
	return p.Paging.Cursors.After
}

// InsightValue is one sampled metric value
type InsightValue struct {
	Value   int64  `json:"value"`
	EndTime string `json:"end_time,omitempty"`
}

// Insight is one metric series as the insights endpoint returns it
type Insight struct {
	Name   string         `json:"name"`
	Period string         `json:"period"`
	Values []InsightValue `json:"values"`
}

// InsightsResponse is the insights endpoint envelope
type InsightsResponse struct {
	Data []Insight `json:"data"`
}

// ToMetricValues converts an insight series into the unified shape
func (i *Insight) ToMetricValues() []core.MetricValue {
	vals := make([]core.MetricValue, 0, len(i.Values))
	for _, v := range i.Values {
		vals = append(vals, core.MetricValue{Value: v.Value, EndTime: ParseTime(v.EndTime)})
	}
	return vals
}

// graphTimeLayout is the ISO 8601 variant the Graph API emits, with a
// zone offset lacking a colon
const graphTimeLayout = "2006-01-02T15:04:05-0700"

// ParseTime parses a Graph API timestamp, falling back to RFC 3339. A zero
// time marks an unparseable or absent value.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(graphTimeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
