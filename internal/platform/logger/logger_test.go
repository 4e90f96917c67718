package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/fiszki-app/fiszki-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ReturnsLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case", logLevel: "INFO"},
		{name: "invalid falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Same(t, logger, slog.Default())
		})
	}
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.Same(t, slog.Default(), log)
}

func TestFromContext_WithLogger(t *testing.T) {
	attached := slog.Default().With("component", "test")
	ctx := WithLogger(context.Background(), attached)

	assert.Same(t, attached, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	fallback := slog.Default().With("component", "fallback")

	// Empty context returns the fallback.
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))

	// Context logger wins over the fallback.
	attached := slog.Default().With("component", "attached")
	ctx := WithLogger(context.Background(), attached)
	assert.Same(t, attached, FromContextOrDefault(ctx, fallback))

	// Nil fallback degrades to the global default.
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
