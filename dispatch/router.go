// Package dispatch routes unified operations to platform adapters. The
// router owns the cross-cutting pipeline: request validation, the
// capability check, adapter lookup, the retry policy, and per-dispatch
// tracing. Adapters stay free of all of it.
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/logger"
	"github.com/kart-io/metahub/middleware"
	"github.com/kart-io/metahub/observability"
	"github.com/kart-io/metahub/platforms"
)

// Router dispatches validated requests to the registered adapters
type Router struct {
	registry  *platforms.Registry
	retry     *middleware.RetryPolicy
	logger    logger.Interface
	telemetry *observability.TelemetryProvider
}

// NewRouter creates a router over registry. A nil retry policy gets the
// default bounds; a nil telemetry provider gets a no-op one.
func NewRouter(registry *platforms.Registry, retry *middleware.RetryPolicy, log logger.Interface, telemetry *observability.TelemetryProvider) *Router {
	if log == nil {
		log = logger.Discard
	}
	if retry == nil {
		retry = middleware.NewRetryPolicy(middleware.DefaultMaxAttempts, middleware.DefaultBaseDelay, log)
	}
	if telemetry == nil {
		telemetry, _ = observability.NewTelemetryProvider(nil)
	}
	r := &Router{
		registry:  registry,
		retry:     retry,
		logger:    log,
		telemetry: telemetry,
	}
	retry.SetOnRetry(func(operation, platform string, attempt int) {
		telemetry.RecordRetry(context.Background(), operation, platform)
	})
	return r
}

// SendMessage delivers a direct message through the platform's adapter
func (r *Router) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adapter, err := r.resolve(req.Platform, core.OpSendMessage)
	if err != nil {
		return nil, err
	}

	var result *core.SendResult
	err = r.dispatch(ctx, core.OpSendMessage, req.Platform, func(ctx context.Context) error {
		res, callErr := adapter.SendMessage(ctx, req)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Platform = req.Platform
	return result, nil
}

// GetMessages fetches one page of conversation history
func (r *Router) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adapter, err := r.resolve(req.Platform, core.OpGetMessages)
	if err != nil {
		return nil, err
	}

	var result *core.MessagesResult
	err = r.dispatch(ctx, core.OpGetMessages, req.Platform, func(ctx context.Context) error {
		res, callErr := adapter.GetMessages(ctx, req)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Platform = req.Platform
	return result, nil
}

// PostContent publishes a feed post
func (r *Router) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	adapter, err := r.resolve(req.Platform, core.OpPostContent)
	if err != nil {
		return nil, err
	}

	var result *core.PostResult
	err = r.dispatch(ctx, core.OpPostContent, req.Platform, func(ctx context.Context) error {
		res, callErr := adapter.PostContent(ctx, req)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Platform = req.Platform
	return result, nil
}

// GetAnalytics fetches metric values for the requested window
func (r *Router) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Period == "" {
		req.Period = core.PeriodDay
	}
	adapter, err := r.resolve(req.Platform, core.OpGetAnalytics)
	if err != nil {
		return nil, err
	}

	var result *core.AnalyticsResult
	err = r.dispatch(ctx, core.OpGetAnalytics, req.Platform, func(ctx context.Context) error {
		res, callErr := adapter.GetAnalytics(ctx, req)
		if callErr != nil {
			return callErr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Platform = req.Platform
	result.Period = req.Period
	return result, nil
}

// resolve rejects unsupported platform/operation pairs before touching
// the registry, so a capability failure never reaches an adapter.
func (r *Router) resolve(platform core.Platform, op core.Operation) (platforms.Adapter, error) {
	if !platforms.Supports(platform, op) {
		return nil, platforms.ErrUnsupported(platform, op)
	}
	adapter, ok := r.registry.Get(platform)
	if !ok {
		e := errors.Newf(errors.CodeMissingAdapter, errors.CategoryConfig,
			"no adapter configured for platform %q, check credentials", platform)
		return nil, e.WithPlatform(platform.String())
	}
	return adapter, nil
}

// dispatch runs fn under the retry policy with a span and timing around
// the whole attempt sequence
func (r *Router) dispatch(ctx context.Context, op core.Operation, platform core.Platform, fn func(ctx context.Context) error) error {
	requestID := uuid.New().String()
	ctx, span := r.telemetry.TraceDispatch(ctx, op.String(), platform.String(), requestID)
	defer span.End()

	begin := time.Now()
	r.logger.Debug(ctx, "dispatching", "request_id", requestID, "operation", op, "platform", platform)

	err := r.retry.Do(ctx, op.String(), platform.String(), fn)

	r.logger.Trace(ctx, begin, func() (string, string) {
		return op.String(), platform.String()
	}, err)

	code := ""
	if err != nil {
		code = string(errors.CodeOf(err))
		r.telemetry.SetSpanError(span, err)
	} else {
		r.telemetry.SetSpanSuccess(span)
	}
	r.telemetry.RecordDispatch(ctx, op.String(), platform.String(), time.Since(begin), code)

	return err
}
