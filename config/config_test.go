package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://localhost:8001", cfg.API.BaseURL)
	assert.Equal(t, "ws://localhost:8000", cfg.API.WebSocketURL)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, "user_data.json", cfg.Storage.SessionFile)
	assert.Equal(t, "offline_data.json", cfg.Storage.CacheFile)
	assert.Equal(t, EmailProviderMock, cfg.Email.Provider)
	assert.Equal(t, 600, cfg.Verification.CodeTTLSeconds)
	assert.Equal(t, 6, cfg.Verification.CodeLength)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("API_BASE_URL", "https://api.travelmate.app")
	t.Setenv("API_WEBSOCKET_URL", "wss://api.travelmate.app")
	t.Setenv("API_TIMEOUT_SECONDS", "30")
	t.Setenv("STORAGE_CACHE_FILE", "/tmp/cache.json")
	t.Setenv("EMAIL_PROVIDER", "resend")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("EMAIL_FROM_ADDRESS", "hello@travelmate.app")
	t.Setenv("VERIFICATION_CODE_TTL_SECONDS", "120")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.travelmate.app", cfg.API.BaseURL)
	assert.Equal(t, "wss://api.travelmate.app", cfg.API.WebSocketURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "/tmp/cache.json", cfg.Storage.CacheFile)
	assert.Equal(t, EmailProviderResend, cfg.Email.Provider)
	assert.Equal(t, "re_test_key", cfg.Email.ResendAPIKey)
	assert.Equal(t, 120, cfg.Verification.CodeTTLSeconds)
}

func TestLoadConfigRejectsBadWebSocketURL(t *testing.T) {
	t.Setenv("API_WEBSOCKET_URL", "http://localhost:8000")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ws:// or wss://")
}

func TestLoadConfigRejectsBadSMTPPort(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("EMAIL_SMTP_PORT", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP port")
}

func TestLoadConfigRejectsResendWithoutKey(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "resend")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resend API key")
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "carrier-pigeon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown email provider")
}
