package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_ReturnsAttachedLogger(t *testing.T) {
	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)

	assert.Same(t, log, FromContext(ctx))
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info("noop") })
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, log := WithRequestID(context.Background(), zap.New(core), "req-9")
	log.Info("allocating number")

	assert.Equal(t, "req-9", GetRequestID(ctx))
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, log := WithUserID(context.Background(), zap.New(core), "user-3")
	log.Info("invoice finalized")

	assert.Equal(t, "user-3", GetUserID(ctx))
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "user-3", entries[0].ContextMap()["user_id"])
}

func TestIdentifiers_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetUserID(context.Background()))
}

func TestL_EnrichesWithIdentifiers(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx := WithContext(context.Background(), zap.New(core))
	ctx = context.WithValue(ctx, requestIDKey, "req-1")
	ctx = context.WithValue(ctx, userIDKey, "user-1")

	L(ctx).Info("message")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestL_WithoutContextLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		L(context.Background()).Info("goes nowhere")
	})
}
