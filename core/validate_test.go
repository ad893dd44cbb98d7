package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kart-io/metahub/core/errors"
)

func TestValidE164(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"+15550001111", true},
		{"+380991234567", true},
		{"15550001111", false},
		{"+0123456", false},
		{"+1555000111122334455", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidE164(tt.phone))
		})
	}
}

func TestSendRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SendRequest
		wantErr string
	}{
		{
			name: "valid facebook send",
			req:  SendRequest{Platform: PlatformFacebook, RecipientID: "123456", Content: "hi"},
		},
		{
			name: "valid whatsapp send",
			req:  SendRequest{Platform: PlatformWhatsApp, RecipientID: "+15550001111", Content: "hi"},
		},
		{
			name:    "missing recipient",
			req:     SendRequest{Platform: PlatformFacebook, Content: "hi"},
			wantErr: "recipient_id is required",
		},
		{
			name:    "missing content",
			req:     SendRequest{Platform: PlatformFacebook, RecipientID: "123"},
			wantErr: "content is required",
		},
		{
			name:    "whatsapp recipient must be e164",
			req:     SendRequest{Platform: PlatformWhatsApp, RecipientID: "15550001111", Content: "hi"},
			wantErr: "E.164",
		},
		{
			name:    "oversized content",
			req:     SendRequest{Platform: PlatformFacebook, RecipientID: "123", Content: strings.Repeat("x", MaxContentLength+1)},
			wantErr: "exceeds",
		},
		{
			name:    "bad media url",
			req:     SendRequest{Platform: PlatformFacebook, RecipientID: "123", Content: "hi", MediaURL: "ftp://example.com/a.png"},
			wantErr: "http or https",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, errors.IsRetryable(err))
		})
	}
}

func TestGetMessagesRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GetMessagesRequest{Platform: PlatformFacebook, ConversationID: "t_1"}).Validate())
	assert.NoError(t, (&GetMessagesRequest{Platform: PlatformFacebook, RecipientID: "123"}).Validate())

	err := (&GetMessagesRequest{Platform: PlatformFacebook}).Validate()
	assert.ErrorIs(t, err, errors.ErrMissingIdentifier)

	err = (&GetMessagesRequest{Platform: PlatformFacebook, ConversationID: "t_1", Limit: MaxMessageLimit + 1}).Validate()
	assert.Error(t, err)
}

func TestPostRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PostRequest{Platform: PlatformFacebook, Content: "hello"}).Validate())
	assert.NoError(t, (&PostRequest{
		Platform:  PlatformInstagram,
		Content:   "caption",
		MediaURLs: []string{"https://example.com/a.jpg"},
	}).Validate())

	err := (&PostRequest{Platform: PlatformFacebook}).Validate()
	assert.ErrorIs(t, err, errors.ErrMissingContent)

	err = (&PostRequest{Platform: PlatformInstagram, Content: "text only"}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "media_urls")

	err = (&PostRequest{Platform: PlatformFacebook, MediaURLs: []string{"not a url"}}).Validate()
	assert.Error(t, err)
}

func TestAnalyticsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AnalyticsRequest{
		Platform: PlatformFacebook,
		Metrics:  []Metric{MetricImpressions, MetricReach},
		Period:   PeriodWeek,
	}).Validate())

	err := (&AnalyticsRequest{Platform: PlatformFacebook}).Validate()
	assert.Error(t, err)

	err = (&AnalyticsRequest{Platform: PlatformFacebook, Metrics: []Metric{"clicks"}}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metric")

	err = (&AnalyticsRequest{Platform: PlatformFacebook, Metrics: []Metric{MetricReach}, Period: "year"}).Validate()
	assert.Error(t, err)
}
