package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey stores a request-scoped logger in the context.
	LoggerKey contextKey = "logger"
	// RequestIDKey stores the request ID assigned by the HTTP middleware.
	RequestIDKey contextKey = "request_id"
	// ProfileIDKey stores the authenticated profile ID.
	ProfileIDKey contextKey = "profile_id"
)

// WithContext returns a context carrying the given logger.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, log)
}

// FromContext extracts the logger from the context, enriched with the
// request ID and profile ID when present. Falls back to the global logger.
func FromContext(ctx context.Context) *zap.Logger {
	log, ok := ctx.Value(LoggerKey).(*zap.Logger)
	if !ok {
		log = zap.L()
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	if profileID := GetProfileID(ctx); profileID != "" {
		log = log.With(zap.String("profile_id", profileID))
	}
	return log
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID returns the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithProfileID stores the authenticated profile ID in the context.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, ProfileIDKey, profileID)
}

// GetProfileID returns the authenticated profile ID from the context, or "".
func GetProfileID(ctx context.Context) string {
	if id, ok := ctx.Value(ProfileIDKey).(string); ok {
		return id
	}
	return ""
}
