// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	apperrors "github.com/allisson/textcodec/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// CodecSecret is the shared secret, or its base64 KMS ciphertext when
	// CodecSecretKMSKeyURI is set.
	CodecSecret string
	// CodecSecretKMSKeyURI is the KMS key wrapping CodecSecret (e.g., "base64key://...").
	CodecSecretKMSKeyURI string
	// CodecMode is the cipher mode (e.g., "aes-256-ecb", "aes-256-gcm").
	CodecMode string
	// CodecMaxPlaintextBytes caps the decoded plaintext accepted by the HTTP API.
	CodecMaxPlaintextBytes int

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Codec
		CodecSecret:            env.GetString("CODEC_SECRET", ""),
		CodecSecretKMSKeyURI:   env.GetString("CODEC_SECRET_KMS_KEY_URI", ""),
		CodecMode:              env.GetString("CODEC_MODE", string(codecDomain.DefaultMode)),
		CodecMaxPlaintextBytes: env.GetInt("CODEC_MAX_PLAINTEXT_BYTES", 65536),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "textcodec"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration values the server cannot start without.
// The secret itself is checked when the codec is built.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.When(c.MetricsEnabled,
			validation.Required, validation.Min(1), validation.Max(65535),
		)),
		validation.Field(&c.CodecMode, validation.Required, validation.By(validateMode)),
		validation.Field(&c.CodecMaxPlaintextBytes, validation.Required, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.RateLimitRequestsPerSec, validation.When(c.RateLimitEnabled,
			validation.Required, validation.Min(0.0),
		)),
		validation.Field(&c.RateLimitBurst, validation.When(c.RateLimitEnabled,
			validation.Required, validation.Min(1),
		)),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMisconfigured, err.Error())
	}
	return nil
}

// Mode returns the parsed codec mode.
func (c *Config) Mode() (codecDomain.Mode, error) {
	return codecDomain.ParseMode(c.CodecMode)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

func validateMode(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_codec_mode_type", "must be a string")
	}
	if _, err := codecDomain.ParseMode(s); err != nil {
		return validation.NewError("validation_codec_mode", "must be a supported cipher mode")
	}
	return nil
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
