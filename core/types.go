// Package core defines the platform-agnostic data model shared by the
// dispatch router, the platform adapters, and the tool facade.
package core

import "fmt"

// Platform identifies an upstream messaging platform
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformWhatsApp  Platform = "whatsapp"
)

// Platforms lists every supported platform in a stable order
func Platforms() []Platform {
	return []Platform{PlatformFacebook, PlatformInstagram, PlatformWhatsApp}
}

// ParsePlatform converts a tool argument into a Platform
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformFacebook, PlatformInstagram, PlatformWhatsApp:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}

// String returns the platform name
func (p Platform) String() string {
	return string(p)
}

// Operation identifies one of the four unified operations
type Operation string

const (
	OpSendMessage  Operation = "send_message"
	OpGetMessages  Operation = "get_messages"
	OpPostContent  Operation = "post_content"
	OpGetAnalytics Operation = "get_analytics"
)

// String returns the operation name
func (o Operation) String() string {
	return string(o)
}

// Metric identifies an analytics metric
type Metric string

const (
	MetricImpressions  Metric = "impressions"
	MetricReach        Metric = "reach"
	MetricEngagement   Metric = "engagement"
	MetricFollowers    Metric = "followers"
	MetricProfileViews Metric = "profile_views"
)

// Metrics lists every supported metric in a stable order
func Metrics() []Metric {
	return []Metric{MetricImpressions, MetricReach, MetricEngagement, MetricFollowers, MetricProfileViews}
}

// ParseMetric converts a tool argument into a Metric
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricImpressions, MetricReach, MetricEngagement, MetricFollowers, MetricProfileViews:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q", s)
	}
}

// Period is the aggregation window for analytics queries
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod converts a tool argument into a Period. Empty input yields
// the default day window.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}
