package logger

import (
	"context"
)

type contextKey string

// RequestIDKey is the context key under which the request id travels with a
// context.Context, so non-HTTP code (the gorm logger) can correlate its
// output with the request log.
const RequestIDKey contextKey = "request_id"

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request id from the context, empty if absent
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
