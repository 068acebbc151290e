package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, development := range []bool{true, false} {
		logger, err := New(development)
		require.NoError(t, err)
		require.NotNil(t, logger)
		logger.Info("logger ready", zap.Bool("development", development))
		_ = logger.Sync() //nolint:errcheck // best-effort flush
	}
}

func TestComponent(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	Component(zap.New(core), "fetcher").Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "fetcher", entries[0].LoggerName)

	assert.NotNil(t, Component(nil, "api"))
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	fallback := zap.NewNop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))
	assert.NotNil(t, FromContext(context.Background(), nil))

	scoped := zap.NewExample()
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
