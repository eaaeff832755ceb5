package http

import (
	"context"
	"log/slog"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// handlerLogger prefers the request-scoped logger installed by
// RequestLogger and tags it with the handler and operation names.
func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = defaultLogger(fallback)
	}

	tags := make([]any, 0, 4+len(attrs))
	tags = append(tags, "handler", handlerName)
	if operation != "" {
		tags = append(tags, "operation", operation)
	}
	tags = append(tags, attrs...)
	return logger.With(tags...)
}
