package http

import (
	"context"
	"log/slog"

	"github.com/example/household-roster/internal/application"
	"github.com/example/household-roster/internal/logging"
)

type contextKey string

const (
	principalContextKey     contextKey = "principal"
	clientIDContextKey      contextKey = "client_id"
	housekeeperIDContextKey contextKey = "housekeeper_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithClientID injects the client identifier resolved from the request path.
func ContextWithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDContextKey, clientID)
}

// ClientIDFromContext extracts a client identifier previously associated with the context.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDContextKey).(string)
	return id, ok
}

// ContextWithHousekeeperID injects the housekeeper identifier resolved from the request path.
func ContextWithHousekeeperID(ctx context.Context, housekeeperID string) context.Context {
	return context.WithValue(ctx, housekeeperIDContextKey, housekeeperID)
}

// HousekeeperIDFromContext extracts a housekeeper identifier previously associated with the context.
func HousekeeperIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(housekeeperIDContextKey).(string)
	return id, ok
}

// ContextWithLogger stores a request scoped logger on the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext retrieves the request scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
