package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

// Business context keys, prefixed like OpenTelemetry attributes.
const (
	OperationKey ContextKey = "orinu.operation"
	RequestIDKey ContextKey = "orinu.request.id"
)

var contextKeys = []ContextKey{OperationKey, RequestIDKey}

// WithOperation tags every log record written under ctx with the operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

// WithRequestID tags every log record written under ctx with the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func contextAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var attrs []slog.Attr
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}
