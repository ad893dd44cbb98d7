package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/metahub/core/errors"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultMaxAttempts, cfg.Retry.MaxAttempts)
	assert.Equal(t, DefaultBaseDelay, cfg.Retry.BaseDelay)
	assert.False(t, cfg.DemoMode)
	assert.Nil(t, cfg.Facebook)
}

func TestValidate_NoCredentialsNoDemo(t *testing.T) {
	cfg := New()

	err := cfg.Validate()
	require.Error(t, err)
	var be *errors.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, errors.CodeMissingConfig, be.Code)
	assert.Contains(t, be.Message, "demo mode")
}

func TestValidate_DemoModeNeedsNothing(t *testing.T) {
	cfg := New(WithDemoMode(true))
	assert.NoError(t, cfg.Validate())
}

func TestValidate_SinglePlatformSuffices(t *testing.T) {
	cfg := New(WithFacebook("EAAB-token", "1234"))
	assert.NoError(t, cfg.Validate())
}

func TestValidate_WhatsAppRequiresPhoneNumberID(t *testing.T) {
	cfg := New(WithWhatsApp("wa-token", ""))

	err := cfg.Validate()
	require.Error(t, err)
	var be *errors.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "whatsapp", be.Platform)
	assert.Contains(t, be.Message, "phone number id")
}

func TestValidate_RejectsEmptyTokens(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"facebook", WithFacebook("", "1234")},
		{"instagram", WithInstagram("", "5678")},
		{"whatsapp", WithWhatsApp("", "90210")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(tt.opt)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWithFromEnv_ReadsCredentials(t *testing.T) {
	t.Setenv("FACEBOOK_PAGE_ACCESS_TOKEN", "fb-token")
	t.Setenv("FACEBOOK_PAGE_ID", "111")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "wa-token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "222")
	t.Setenv("META_API_VERSION", "v20.0")
	t.Setenv("DEMO_MODE", "")

	cfg := New(WithFromEnv())

	require.NotNil(t, cfg.Facebook)
	assert.Equal(t, "fb-token", cfg.Facebook.PageAccessToken)
	assert.Equal(t, "111", cfg.Facebook.PageID)
	require.NotNil(t, cfg.WhatsApp)
	assert.Equal(t, "222", cfg.WhatsApp.PhoneNumberID)
	assert.Nil(t, cfg.Instagram)
	assert.Equal(t, "v20.0", cfg.APIVersion)
	assert.NoError(t, cfg.Validate())
}

func TestWithFromEnv_PrefixedFormWins(t *testing.T) {
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "bare")
	t.Setenv("METAHUB_INSTAGRAM_ACCESS_TOKEN", "prefixed")

	cfg := New(WithFromEnv())

	require.NotNil(t, cfg.Instagram)
	assert.Equal(t, "prefixed", cfg.Instagram.AccessToken)
}

func TestWithFromEnv_DemoMode(t *testing.T) {
	t.Setenv("METAHUB_DEMO_MODE", "true")

	cfg := New(WithFromEnv())
	assert.True(t, cfg.DemoMode)
	assert.NoError(t, cfg.Validate())
}

func TestWithFile_MergesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metahub.yaml")
	data := []byte(`
api_version: v19.0
demo_mode: false
facebook:
  page_access_token: file-token
  page_id: "333"
retry:
  max_attempts: 5
  base_delay: 1s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := New(WithFile(path), WithTimeout(10*time.Second))

	require.NotNil(t, cfg.Facebook)
	assert.Equal(t, "file-token", cfg.Facebook.PageAccessToken)
	assert.Equal(t, "v19.0", cfg.APIVersion)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestWithFile_MissingFileIsIgnored(t *testing.T) {
	cfg := New(WithFile("/does/not/exist.yaml"), WithDemoMode(true))
	assert.NoError(t, cfg.Validate())
}

func TestLogger_DefaultFromLevel(t *testing.T) {
	cfg := New(WithLogLevel("debug"))
	assert.NotNil(t, cfg.Logger())
}
