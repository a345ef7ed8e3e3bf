package logs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyOperationID is the key for storing the operation correlation id.
	KeyOperationID ContextKey = "operation_id"

	// KeyLogger is the key for storing the operation-scoped logger.
	KeyLogger ContextKey = "logger"
)

// StartOperation tags ctx with a fresh operation id and a logger carrying it
// together with the operation name. An id already present in ctx is reused.
func StartOperation(ctx context.Context, base *slog.Logger, operation string) (context.Context, *slog.Logger) {
	id := GetOperationID(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = context.WithValue(ctx, KeyOperationID, id)
	}

	logger := GetLoggerOrDefault(ctx, base).With(
		slog.String("operation", operation),
		slog.String("operationID", id),
	)

	return WithLogger(ctx, logger), logger
}

// GetOperationID extracts the operation id from ctx, or "" when absent.
func GetOperationID(ctx context.Context) string {
	if id, ok := ctx.Value(KeyOperationID).(string); ok {
		return id
	}

	return ""
}

// GetLogger extracts the operation-scoped logger from ctx.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the operation-scoped logger from ctx.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}
