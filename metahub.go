// Package metahub exposes a unified tool surface over the Meta messaging
// platforms: Facebook Pages, Instagram professional accounts, and the
// WhatsApp Business Cloud API. One hub owns the adapter registry, the
// retry policy, and the dispatch router.
//
// Basic usage:
//
//	hub, err := metahub.New(nil) // load config from env
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer hub.Shutdown(context.Background())
//
//	result, err := hub.SendMessage(ctx, &metahub.SendRequest{
//		Platform:    metahub.PlatformFacebook,
//		RecipientID: "1234567890",
//		Content:     "hello",
//	})
package metahub

import (
	"context"

	"github.com/kart-io/metahub/config"
	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/dispatch"
	"github.com/kart-io/metahub/logger"
	"github.com/kart-io/metahub/middleware"
	"github.com/kart-io/metahub/observability"
	"github.com/kart-io/metahub/platforms"
	"github.com/kart-io/metahub/platforms/facebook"
	"github.com/kart-io/metahub/platforms/instagram"
	"github.com/kart-io/metahub/platforms/mock"
	"github.com/kart-io/metahub/platforms/whatsapp"
)

// Re-exported core types so embedders only import one package
type (
	Platform           = core.Platform
	Operation          = core.Operation
	SendRequest        = core.SendRequest
	SendResult         = core.SendResult
	GetMessagesRequest = core.GetMessagesRequest
	MessagesResult     = core.MessagesResult
	PostRequest        = core.PostRequest
	PostResult         = core.PostResult
	AnalyticsRequest   = core.AnalyticsRequest
	AnalyticsResult    = core.AnalyticsResult
	Config             = config.Config
	Option             = config.Option
)

// Platform and operation constants
const (
	PlatformFacebook  = core.PlatformFacebook
	PlatformInstagram = core.PlatformInstagram
	PlatformWhatsApp  = core.PlatformWhatsApp
)

// Hub is the assembled dispatch pipeline
type Hub struct {
	config    *config.Config
	registry  *platforms.Registry
	router    *dispatch.Router
	logger    logger.Interface
	telemetry *observability.TelemetryProvider
}

// New builds a hub from cfg. A nil cfg loads from the environment. The
// configuration is validated before anything is constructed; a hub with no
// usable platform never starts.
func New(cfg *config.Config) (*Hub, error) {
	if cfg == nil {
		cfg = config.New(config.WithFromEnv())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger()

	telemetry, err := observability.NewTelemetryProvider(cfg.Telemetry)
	if err != nil {
		return nil, err
	}

	registry, err := buildRegistry(cfg, log)
	if err != nil {
		return nil, err
	}

	retry := middleware.NewRetryPolicy(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, log)
	router := dispatch.NewRouter(registry, retry, log, telemetry)

	log.Info(context.Background(), "hub ready",
		"platforms", len(registry.Platforms()), "demo_mode", cfg.DemoMode)

	return &Hub{
		config:    cfg,
		registry:  registry,
		router:    router,
		logger:    log,
		telemetry: telemetry,
	}, nil
}

// buildRegistry registers one adapter per configured platform. Demo mode
// registers the deterministic mock adapter for every platform instead.
func buildRegistry(cfg *config.Config, log logger.Interface) (*platforms.Registry, error) {
	registry := platforms.NewRegistry()

	if cfg.DemoMode {
		for _, p := range core.Platforms() {
			if err := registry.Register(mock.New(p, log)); err != nil {
				return nil, err
			}
		}
		return registry, nil
	}

	if cfg.Facebook != nil {
		if err := registry.Register(facebook.New(cfg.Facebook.PageAccessToken, cfg.APIVersion, log)); err != nil {
			return nil, err
		}
	}
	if cfg.Instagram != nil {
		if err := registry.Register(instagram.New(cfg.Instagram.AccessToken, cfg.APIVersion, log)); err != nil {
			return nil, err
		}
	}
	if cfg.WhatsApp != nil {
		if err := registry.Register(whatsapp.New(cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID, cfg.APIVersion, log)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// SendMessage delivers a direct message
func (h *Hub) SendMessage(ctx context.Context, req *core.SendRequest) (*core.SendResult, error) {
	return h.router.SendMessage(ctx, req)
}

// GetMessages fetches one page of conversation history
func (h *Hub) GetMessages(ctx context.Context, req *core.GetMessagesRequest) (*core.MessagesResult, error) {
	return h.router.GetMessages(ctx, req)
}

// PostContent publishes a feed post
func (h *Hub) PostContent(ctx context.Context, req *core.PostRequest) (*core.PostResult, error) {
	return h.router.PostContent(ctx, req)
}

// GetAnalytics fetches metric values
func (h *Hub) GetAnalytics(ctx context.Context, req *core.AnalyticsRequest) (*core.AnalyticsResult, error) {
	return h.router.GetAnalytics(ctx, req)
}

// Platforms lists the platforms with a registered adapter
func (h *Hub) Platforms() []core.Platform {
	return h.registry.Platforms()
}

// Supports reports whether platform can service operation
func (h *Hub) Supports(platform core.Platform, operation core.Operation) bool {
	return platforms.Supports(platform, operation)
}

// Config returns the hub's configuration
func (h *Hub) Config() *config.Config {
	return h.config
}

// Logger returns the hub's logger
func (h *Hub) Logger() logger.Interface {
	return h.logger
}

// Shutdown flushes telemetry
func (h *Hub) Shutdown(ctx context.Context) error {
	return h.telemetry.Shutdown(ctx)
}
