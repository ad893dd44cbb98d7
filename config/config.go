// Package config assembles hub configuration from options, environment
// variables, and an optional YAML file. Credentials are validated once at
// startup; a hub never starts half-configured.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kart-io/metahub/core/errors"
	"github.com/kart-io/metahub/logger"
	"github.com/kart-io/metahub/observability"
)

// DefaultAPIVersion is the Graph API version used when none is configured
const DefaultAPIVersion = "v21.0"

// Default request and retry bounds
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
)

// FacebookConfig holds Facebook Page credentials
type FacebookConfig struct {
	PageAccessToken string `yaml:"page_access_token"`
	PageID          string `yaml:"page_id"`
}

// InstagramConfig holds Instagram professional account credentials
type InstagramConfig struct {
	AccessToken string `yaml:"access_token"`
	UserID      string `yaml:"user_id"`
}

// WhatsAppConfig holds WhatsApp Business Cloud API credentials. The phone
// number id names the sending number, not the recipient.
type WhatsAppConfig struct {
	AccessToken   string `yaml:"access_token"`
	PhoneNumberID string `yaml:"phone_number_id"`
}

// RetryConfig bounds the dispatch retry policy
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
}

// Config holds the full hub configuration
type Config struct {
	Facebook  *FacebookConfig
	Instagram *InstagramConfig
	WhatsApp  *WhatsAppConfig

	// DemoMode swaps every platform for a deterministic in-memory adapter;
	// no credentials are required and no network calls happen
	DemoMode bool

	APIVersion string
	Timeout    time.Duration
	Retry      RetryConfig

	LogLevel  string
	Telemetry *observability.Config

	logger logger.Interface
}

// fileConfig is the YAML-facing shape. Durations are strings so values
// like "500ms" parse.
type fileConfig struct {
	Facebook  *FacebookConfig  `yaml:"facebook"`
	Instagram *InstagramConfig `yaml:"instagram"`
	WhatsApp  *WhatsAppConfig  `yaml:"whatsapp"`

	DemoMode   *bool  `yaml:"demo_mode"`
	APIVersion string `yaml:"api_version"`
	Timeout    string `yaml:"timeout"`
	LogLevel   string `yaml:"log_level"`

	Retry struct {
		MaxAttempts int    `yaml:"max_attempts"`
		BaseDelay   string `yaml:"base_delay"`
	} `yaml:"retry"`

	Telemetry *observability.Config `yaml:"telemetry"`
}

// Option defines a configuration option
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) {
	f(c)
}

// New builds a Config from opts over the defaults. Call Validate before
// constructing a hub.
func New(opts ...Option) *Config {
	c := &Config{
		APIVersion: DefaultAPIVersion,
		Timeout:    DefaultTimeout,
		Retry: RetryConfig{
			MaxAttempts: DefaultMaxAttempts,
			BaseDelay:   DefaultBaseDelay,
		},
		LogLevel: "info",
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

// WithFacebook configures the Facebook adapter
func WithFacebook(pageAccessToken, pageID string) Option {
	return optionFunc(func(c *Config) {
		c.Facebook = &FacebookConfig{PageAccessToken: pageAccessToken, PageID: pageID}
	})
}

// WithInstagram configures the Instagram adapter
func WithInstagram(accessToken, userID string) Option {
	return optionFunc(func(c *Config) {
		c.Instagram = &InstagramConfig{AccessToken: accessToken, UserID: userID}
	})
}

// WithWhatsApp configures the WhatsApp adapter
func WithWhatsApp(accessToken, phoneNumberID string) Option {
	return optionFunc(func(c *Config) {
		c.WhatsApp = &WhatsAppConfig{AccessToken: accessToken, PhoneNumberID: phoneNumberID}
	})
}

// WithDemoMode toggles demo mode
func WithDemoMode(enabled bool) Option {
	return optionFunc(func(c *Config) {
		c.DemoMode = enabled
	})
}

// WithAPIVersion overrides the Graph API version
func WithAPIVersion(version string) Option {
	return optionFunc(func(c *Config) {
		if version != "" {
			c.APIVersion = version
		}
	})
}

// WithTimeout overrides the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	})
}

// WithRetry overrides the retry bounds
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return optionFunc(func(c *Config) {
		c.Retry = RetryConfig{MaxAttempts: maxAttempts, BaseDelay: baseDelay}
	})
}

// WithLogger installs a custom logger
func WithLogger(log logger.Interface) Option {
	return optionFunc(func(c *Config) {
		c.logger = log
	})
}

// WithLogLevel sets the level for the default logger
func WithLogLevel(level string) Option {
	return optionFunc(func(c *Config) {
		c.LogLevel = level
	})
}

// WithTelemetry enables OpenTelemetry export
func WithTelemetry(cfg *observability.Config) Option {
	return optionFunc(func(c *Config) {
		c.Telemetry = cfg
	})
}

// WithFromEnv loads credentials and settings from the environment. Both
// METAHUB_-prefixed and bare variable names are honored; the prefixed form
// wins when both are set.
func WithFromEnv() Option {
	return optionFunc(func(c *Config) {
		if token := lookupEnv("FACEBOOK_PAGE_ACCESS_TOKEN"); token != "" {
			c.Facebook = &FacebookConfig{
				PageAccessToken: token,
				PageID:          lookupEnv("FACEBOOK_PAGE_ID"),
			}
		}
		if token := lookupEnv("INSTAGRAM_ACCESS_TOKEN"); token != "" {
			c.Instagram = &InstagramConfig{
				AccessToken: token,
				UserID:      lookupEnv("INSTAGRAM_USER_ID"),
			}
		}
		if token := lookupEnv("WHATSAPP_ACCESS_TOKEN"); token != "" {
			c.WhatsApp = &WhatsAppConfig{
				AccessToken:   token,
				PhoneNumberID: lookupEnv("WHATSAPP_PHONE_NUMBER_ID"),
			}
		}
		if v := lookupEnv("META_API_VERSION"); v != "" {
			c.APIVersion = v
		}
		if v := lookupEnv("LOG_LEVEL"); v != "" {
			c.LogLevel = v
		}
		if v := lookupEnv("DEMO_MODE"); v == "true" || v == "1" {
			c.DemoMode = true
		}
	})
}

// WithFile merges settings from a YAML file. A missing or unreadable file
// is skipped; values set by later options still override it.
func WithFile(path string) Option {
	return optionFunc(func(c *Config) {
		data, err := os.ReadFile(path)
		if err != nil {
			return
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return
		}
		if fc.Facebook != nil {
			c.Facebook = fc.Facebook
		}
		if fc.Instagram != nil {
			c.Instagram = fc.Instagram
		}
		if fc.WhatsApp != nil {
			c.WhatsApp = fc.WhatsApp
		}
		if fc.DemoMode != nil {
			c.DemoMode = *fc.DemoMode
		}
		if fc.APIVersion != "" {
			c.APIVersion = fc.APIVersion
		}
		if fc.LogLevel != "" {
			c.LogLevel = fc.LogLevel
		}
		if fc.Timeout != "" {
			if d, err := time.ParseDuration(fc.Timeout); err == nil {
				c.Timeout = d
			}
		}
		if fc.Retry.MaxAttempts > 0 {
			c.Retry.MaxAttempts = fc.Retry.MaxAttempts
		}
		if fc.Retry.BaseDelay != "" {
			if d, err := time.ParseDuration(fc.Retry.BaseDelay); err == nil {
				c.Retry.BaseDelay = d
			}
		}
		if fc.Telemetry != nil {
			c.Telemetry = fc.Telemetry
		}
	})
}

// Logger returns the configured logger, building the default one from
// LogLevel when none was installed
func (c *Config) Logger() logger.Interface {
	if c.logger != nil {
		return c.logger
	}
	return logger.NewStdLogger(logger.ParseLevel(c.LogLevel))
}

// Validate fails fast on unusable configuration: no demo mode and no
// platform credentials means the hub could never dispatch anything.
func (c *Config) Validate() error {
	if c.DemoMode {
		return nil
	}
	if c.Facebook == nil && c.Instagram == nil && c.WhatsApp == nil {
		return errors.NewConfiguration("",
			"no platform credentials configured and demo mode is off; set at least one access token or enable demo mode")
	}
	if c.Facebook != nil && c.Facebook.PageAccessToken == "" {
		return errors.NewConfiguration("facebook", "facebook page access token is empty")
	}
	if c.Instagram != nil && c.Instagram.AccessToken == "" {
		return errors.NewConfiguration("instagram", "instagram access token is empty")
	}
	if c.WhatsApp != nil {
		if c.WhatsApp.AccessToken == "" {
			return errors.NewConfiguration("whatsapp", "whatsapp access token is empty")
		}
		if c.WhatsApp.PhoneNumberID == "" {
			return errors.NewConfiguration("whatsapp", "whatsapp phone number id is required")
		}
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.NewConfiguration("", "retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// lookupEnv reads key, preferring the METAHUB_ prefixed form
func lookupEnv(key string) string {
	if v := os.Getenv("METAHUB_" + key); v != "" {
		return v
	}
	return os.Getenv(key)
}
