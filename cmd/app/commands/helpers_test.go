package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/textcodec/internal/app"
	"github.com/allisson/textcodec/internal/config"
	apperrors "github.com/allisson/textcodec/internal/errors"
	"github.com/allisson/textcodec/internal/metrics"
)

func cliConfig() *config.Config {
	return &config.Config{
		ServerPort:             8080,
		LogLevel:               "error",
		CodecSecret:            "test-secret-001",
		CodecMode:              "aes-256-ecb",
		CodecMaxPlaintextBytes: 1024,
		MetricsEnabled:         true,
		MetricsNamespace:       "textcodec",
		MetricsPort:            8081,
	}
}

func TestPrepareCLIConfig(t *testing.T) {
	t.Run("disables metrics", func(t *testing.T) {
		cfg := cliConfig()

		require.NoError(t, PrepareCLIConfig(cfg))
		assert.False(t, cfg.MetricsEnabled)

		container := app.NewContainer(cfg)
		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Nil(t, provider)

		businessMetrics, err := container.BusinessMetrics()
		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)
	})

	t.Run("metrics port is not required", func(t *testing.T) {
		cfg := cliConfig()
		cfg.MetricsPort = 0

		assert.NoError(t, PrepareCLIConfig(cfg))
	})

	t.Run("unsupported mode", func(t *testing.T) {
		cfg := cliConfig()
		cfg.CodecMode = "des-ecb"

		err := PrepareCLIConfig(cfg)

		assert.ErrorIs(t, err, apperrors.ErrMisconfigured)
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := cliConfig()
		cfg.LogLevel = "verbose"

		assert.ErrorIs(t, PrepareCLIConfig(cfg), apperrors.ErrMisconfigured)
	})
}
