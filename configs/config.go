package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderSES      = "ses"
	ProviderSendGrid = "sendgrid"
)

type Config struct {
	Server ServerConfig
	Email  EmailConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
}

type EmailConfig struct {
	// Provider selects the outbound mail implementation: "ses" or "sendgrid".
	Provider string
	// VerifiedIdentity is the sender domain (or address) pre-authorized with
	// the provider; the From address is built as "no-reply@" + identity.
	VerifiedIdentity string
	// APIKey is the shared secret callers must present in the request body.
	APIKey string
	// Subject is the fixed subject line applied to every outbound email.
	Subject string
	// SendGridAPIKey is only required when Provider is "sendgrid".
	SendGridAPIKey string
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		},
		Email: EmailConfig{
			Provider:         getEnv("EMAIL_PROVIDER", ProviderSES),
			VerifiedIdentity: getEnvRequired("VERIFIED_IDENTITY"),
			APIKey:           getEnvRequired("API_KEY"),
			Subject:          getEnv("EMAIL_SUBJECT", "You have a new notification"),
			SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	switch cfg.Email.Provider {
	case ProviderSES:
	case ProviderSendGrid:
		if cfg.Email.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER is %q", ProviderSendGrid)
		}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.Email.Provider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
