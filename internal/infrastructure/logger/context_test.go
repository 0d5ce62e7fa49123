package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestFromContext(t *testing.T) {
	t.Run("falls back to global logger", func(t *testing.T) {
		log := FromContext(context.Background())
		assert.NotNil(t, log)
	})

	t.Run("enriches with request and profile IDs", func(t *testing.T) {
		base, logs := observedLogger()

		ctx := WithContext(context.Background(), base)
		ctx = WithRequestID(ctx, "req-123")
		ctx = WithProfileID(ctx, "profile-456")

		FromContext(ctx).Info("hello")

		entries := logs.All()
		assert.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, "profile-456", fields["profile_id"])
	})
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))

	ctx = WithRequestID(ctx, "abc")
	assert.Equal(t, "abc", GetRequestID(ctx))
}

func TestProfileID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetProfileID(ctx))

	ctx = WithProfileID(ctx, "xyz")
	assert.Equal(t, "xyz", GetProfileID(ctx))
}
