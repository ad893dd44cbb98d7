// Package platforms defines the adapter contract every platform
// implementation satisfies, the static capability matrix, and the registry
// the dispatch router selects adapters from.
package platforms

import (
	"context"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
)

// Adapter is the unified operation contract. One long-lived instance exists
// per platform, created at startup; it owns that platform's credentials and
// API version and must be safe for concurrent use. A platform that does not
// support an operation returns the capability error, though the router
// statically rejects such calls before any adapter is reached.
type Adapter interface {
	// Name returns the platform this adapter services
	Name() core.Platform

	// SendMessage delivers a direct message to one recipient
	SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error)

	// GetMessages pages through conversation history, most recent first,
	// passing the upstream pagination cursor through unmodified
	GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error)

	// PostContent publishes to the platform's feed
	PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error)

	// GetAnalytics queries the requested metrics
	GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error)
}

// ErrUnsupported builds the capability error for a (platform, operation)
// pair. Adapters return it from operations their platform cannot service.
func ErrUnsupported(platform core.Platform, operation core.Operation) error {
	return errors.NewUnsupported(platform.String(), operation.String())
}
