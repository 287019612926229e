package tenant

import (
	"io"
	"log/slog"
	"time"
)

// config holds middleware configuration.
type config struct {
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	registry *Registry
}

// Option configures the middleware.
type Option func(*config)

// WithCache sets a custom cache implementation.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long resolved tenants stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRegistry sets the fallback registry updated alongside the request
// context. Without it only the context value is populated.
func WithRegistry(registry *Registry) Option {
	return func(c *config) {
		c.registry = registry
	}
}

func defaultConfig() *config {
	return &config{
		cache:    NewInMemoryCache(),
		cacheTTL: 5 * time.Minute,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
