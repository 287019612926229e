package auth

import (
	"context"
	"log/slog"
)

type principalContextKey struct{}

// WithPrincipal stores the authenticated principal in the context for
// middleware chain access.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the
// context. Returns nil, false for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

// LoggerExtractor returns a ContextExtractor that enriches log records
// with the authenticated principal's class and user ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		principal, ok := PrincipalFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.Group("principal",
			slog.String("class", string(principal.Class)),
			slog.String("user_id", principal.UserID.String()),
		), true
	}
}
