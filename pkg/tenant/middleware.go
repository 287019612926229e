package tenant

import (
	"errors"
	"log/slog"
	"net/http"
)

// Middleware creates the context propagation filter: it resolves the
// tenant for every inbound request and populates the tenant context before
// any other logic runs. It must be mounted ahead of authentication and
// authorization and is deliberately unconditional, static assets and
// public routes included, so that no downstream stage can observe a stale
// tenant from a previous request.
//
// Resolution is fail-open: an unknown or malformed subdomain degrades the
// request to the global realm with a warning and a metric instead of
// rejecting it. Downstream authentication rejects anything that actually
// requires a tenant.
func Middleware(resolver Resolver, directory Directory, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	store := NewStore(cfg.registry)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subdomain, err := resolver(r)
			if err != nil {
				cfg.logger.WarnContext(ctx, "tenant resolution degraded to global realm",
					slog.String("host", r.Host),
					slog.Any("error", err),
				)
				ResolutionDegradedTotal.WithLabelValues(ReasonInvalidSubdomain).Inc()
				next.ServeHTTP(w, r.WithContext(store.Clear(ctx)))
				return
			}

			if subdomain == "" {
				// Global realm.
				next.ServeHTTP(w, r.WithContext(store.Clear(ctx)))
				return
			}

			if cached, ok := cfg.cache.Get(ctx, subdomain); ok {
				ctx = store.Set(ctx, cached)
				defer store.Release(ctx)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			found, err := directory.FindBySubdomain(ctx, subdomain)
			if err != nil {
				reason := ReasonDirectoryError
				if errors.Is(err, ErrTenantNotFound) {
					reason = ReasonNotFound
					cfg.logger.WarnContext(ctx, "tenant not found for subdomain",
						slog.String("subdomain", subdomain),
					)
				} else {
					cfg.logger.ErrorContext(ctx, "tenant directory lookup failed",
						slog.String("subdomain", subdomain),
						slog.Any("error", err),
					)
				}
				ResolutionDegradedTotal.WithLabelValues(reason).Inc()
				next.ServeHTTP(w, r.WithContext(store.Clear(ctx)))
				return
			}

			cfg.cache.Set(ctx, subdomain, found, cfg.cacheTTL)
			ctx = store.Set(ctx, found)
			defer store.Release(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that rejects requests running in the
// global realm. Mount it on routes that only make sense inside a tenant.
func RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				http.Error(w, "Tenant not found", http.StatusNotFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
