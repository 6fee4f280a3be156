// Package config handles loading and validation of client configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"github.com/travelmate-app/travelmate-client/logger"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// EmailProvider selects how verification emails are delivered.
type EmailProvider string

const (
	EmailProviderMock   EmailProvider = "mock"
	EmailProviderSMTP   EmailProvider = "smtp"
	EmailProviderResend EmailProvider = "resend"
)

// APIConfig holds the backend endpoints the client talks to.
type APIConfig struct {
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	WebSocketURL   string `mapstructure:"WEBSOCKET_URL" yaml:"websocket_url"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// StorageConfig holds paths for locally persisted state: one JSON file for
// the session (token + cached user) and one for the offline cache.
type StorageConfig struct {
	SessionFile string `mapstructure:"SESSION_FILE" yaml:"session_file"`
	CacheFile   string `mapstructure:"CACHE_FILE" yaml:"cache_file"`
}

// EmailConfig holds configuration for sending verification emails.
type EmailConfig struct {
	Provider     EmailProvider `mapstructure:"PROVIDER" yaml:"provider"`
	FromAddress  string        `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName     string        `mapstructure:"FROM_NAME" yaml:"from_name"`
	SMTPHost     string        `mapstructure:"SMTP_HOST" yaml:"smtp_host"`
	SMTPPort     int           `mapstructure:"SMTP_PORT" yaml:"smtp_port"`
	SMTPPassword string        `mapstructure:"SMTP_PASSWORD" yaml:"smtp_password"`
	ResendAPIKey string        `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// VerificationConfig holds parameters for the email verification codes.
type VerificationConfig struct {
	CodeTTLSeconds int `mapstructure:"CODE_TTL_SECONDS" yaml:"code_ttl_seconds"`
	CodeLength     int `mapstructure:"CODE_LENGTH" yaml:"code_length"`
}

// Config aggregates all client configuration sections.
type Config struct {
	Environment  Environment        `mapstructure:"ENVIRONMENT" yaml:"environment"`
	API          APIConfig          `mapstructure:"API" yaml:"api"`
	Storage      StorageConfig      `mapstructure:"STORAGE" yaml:"storage"`
	Email        EmailConfig        `mapstructure:"EMAIL" yaml:"email"`
	Verification VerificationConfig `mapstructure:"VERIFICATION" yaml:"verification"`
}

// IsDevelopment returns true if the client is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction returns true if the client is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("API.BASE_URL", "http://localhost:8001")
	v.SetDefault("API.WEBSOCKET_URL", "ws://localhost:8000")
	v.SetDefault("API.TIMEOUT_SECONDS", 10)
	v.SetDefault("STORAGE.SESSION_FILE", "user_data.json")
	v.SetDefault("STORAGE.CACHE_FILE", "offline_data.json")
	v.SetDefault("EMAIL.PROVIDER", EmailProviderMock)
	v.SetDefault("EMAIL.FROM_ADDRESS", "no-reply@travelmate.app")
	v.SetDefault("EMAIL.FROM_NAME", "TravelMate")
	v.SetDefault("EMAIL.SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL.SMTP_PORT", 587)
	v.SetDefault("VERIFICATION.CODE_TTL_SECONDS", 600)
	v.SetDefault("VERIFICATION.CODE_LENGTH", 6)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"ENVIRONMENT", "ENVIRONMENT"},
		// API config
		{"API.BASE_URL", "API_BASE_URL"},
		{"API.WEBSOCKET_URL", "API_WEBSOCKET_URL"},
		{"API.TIMEOUT_SECONDS", "API_TIMEOUT_SECONDS"},
		// Storage config
		{"STORAGE.SESSION_FILE", "STORAGE_SESSION_FILE"},
		{"STORAGE.CACHE_FILE", "STORAGE_CACHE_FILE"},
		// Email config
		{"EMAIL.PROVIDER", "EMAIL_PROVIDER"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.SMTP_HOST", "EMAIL_SMTP_HOST"},
		{"EMAIL.SMTP_PORT", "EMAIL_SMTP_PORT"},
		{"EMAIL.SMTP_PASSWORD", "EMAIL_SMTP_PASSWORD"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		// Verification config
		{"VERIFICATION.CODE_TTL_SECONDS", "VERIFICATION_CODE_TTL_SECONDS"},
		{"VERIFICATION.CODE_LENGTH", "VERIFICATION_CODE_LENGTH"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("ENVIRONMENT"),
		"api_base_url", v.GetString("API.BASE_URL"),
		"websocket_url", v.GetString("API.WEBSOCKET_URL"),
		"email_provider", v.GetString("EMAIL.PROVIDER"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	if cfg.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API base URL '%s': %w", cfg.API.BaseURL, err)
	}
	if cfg.API.WebSocketURL == "" {
		return fmt.Errorf("websocket URL is required")
	}
	if !strings.HasPrefix(cfg.API.WebSocketURL, "ws://") && !strings.HasPrefix(cfg.API.WebSocketURL, "wss://") {
		return fmt.Errorf("websocket URL must use ws:// or wss:// scheme")
	}
	if cfg.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	if cfg.Storage.SessionFile == "" {
		return fmt.Errorf("session file path is required")
	}
	if cfg.Storage.CacheFile == "" {
		return fmt.Errorf("cache file path is required")
	}

	switch cfg.Email.Provider {
	case EmailProviderMock:
		if cfg.IsProduction() {
			log.Warn("Mock email provider selected in production. Verification codes will not be delivered.")
		}
	case EmailProviderSMTP:
		if cfg.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP host is required for the smtp email provider")
		}
		if cfg.Email.SMTPPort <= 0 {
			return fmt.Errorf("SMTP port must be positive")
		}
		if cfg.Email.FromAddress == "" {
			return fmt.Errorf("email from address is required")
		}
		if cfg.Email.SMTPPassword == "" {
			log.Warn("SMTP password is not set. Ensure your server allows unauthenticated sending.")
		}
	case EmailProviderResend:
		if cfg.Email.ResendAPIKey == "" {
			return fmt.Errorf("resend API key is required for the resend email provider")
		}
		if cfg.Email.FromAddress == "" {
			return fmt.Errorf("email from address is required")
		}
	default:
		return fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}

	if cfg.Verification.CodeTTLSeconds <= 0 {
		return fmt.Errorf("verification code TTL must be positive")
	}
	if cfg.Verification.CodeLength <= 0 {
		return fmt.Errorf("verification code length must be positive")
	}

	return nil
}
