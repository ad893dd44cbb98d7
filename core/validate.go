package core

import (
	"net/url"
	"regexp"

	"github.com/kart-io/metahub/core/errors"
)

// MaxContentLength bounds direct message bodies, MaxCaptionLength bounds
// feed post captions. Both follow the upstream platform limits.
const (
	MaxContentLength = 2000
	MaxCaptionLength = 2200
)

// e164Pattern matches phone numbers in E.164 format, e.g. +15550001111
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// ValidE164 reports whether phone is a valid E.164 number
func ValidE164(phone string) bool {
	return e164Pattern.MatchString(phone)
}

// ValidateURL rejects anything that is not an absolute http(s) URL
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return errors.NewValidation("invalid URL: %s", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewValidation("URL must use http or https: %s", raw)
	}
	return nil
}

// Validate checks a send request before any adapter is touched
func (r *SendRequest) Validate() error {
	if r.RecipientID == "" {
		return errors.Newf(errors.CodeInvalidRecipient, errors.CategoryValidation, "recipient_id is required")
	}
	if r.Content == "" {
		return errors.Newf(errors.CodeMissingContent, errors.CategoryValidation, "content is required")
	}
	if len(r.Content) > MaxContentLength {
		return errors.NewValidation("content exceeds %d characters", MaxContentLength)
	}
	if r.Platform == PlatformWhatsApp && !ValidE164(r.RecipientID) {
		return errors.Newf(errors.CodeInvalidRecipient, errors.CategoryValidation,
			"whatsapp recipient_id must be in E.164 format (e.g. +15550001111), got %q", r.RecipientID)
	}
	if r.MediaURL != "" {
		if err := ValidateURL(r.MediaURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a message-history request. Either a conversation id or a
// recipient id must identify the conversation.
func (r *GetMessagesRequest) Validate() error {
	if r.ConversationID == "" && r.RecipientID == "" {
		return errors.ErrMissingIdentifier
	}
	if r.Limit < 0 || r.Limit > MaxMessageLimit {
		return errors.NewValidation("limit must be between 1 and %d", MaxMessageLimit)
	}
	return nil
}

// Validate checks a feed post request. Instagram never accepts text-only
// posts; every media URL must be well formed.
func (r *PostRequest) Validate() error {
	if r.Content == "" && len(r.MediaURLs) == 0 {
		return errors.ErrMissingContent
	}
	if len(r.Content) > MaxCaptionLength {
		return errors.NewValidation("content exceeds %d characters", MaxCaptionLength)
	}
	if r.Platform == PlatformInstagram && len(r.MediaURLs) == 0 {
		return errors.NewValidation("instagram posts require media_urls (text-only posts are not supported)")
	}
	for _, u := range r.MediaURLs {
		if err := ValidateURL(u); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks an analytics request against the closed metric set
func (r *AnalyticsRequest) Validate() error {
	if len(r.Metrics) == 0 {
		return errors.NewValidation("at least one metric is required")
	}
	for _, m := range r.Metrics {
		if _, err := ParseMetric(string(m)); err != nil {
			return errors.Newf(errors.CodeInvalidMetric, errors.CategoryValidation,
				"unsupported metric %q", m)
		}
	}
	if _, err := ParsePeriod(string(r.Period)); err != nil {
		return errors.Newf(errors.CodeInvalidPeriod, errors.CategoryValidation,
			"unsupported period %q", r.Period)
	}
	return nil
}
