package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novatech/tenantkit/modules/web"
	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/config"
	"github.com/novatech/tenantkit/pkg/httpserver"
	"github.com/novatech/tenantkit/pkg/logger"
	"github.com/novatech/tenantkit/pkg/pg"
	"github.com/novatech/tenantkit/pkg/redis"
	"github.com/novatech/tenantkit/pkg/requestid"
	"github.com/novatech/tenantkit/pkg/tenant"
	"github.com/novatech/tenantkit/svc/tenants"
	"github.com/novatech/tenantkit/svc/users"
)

type appConfig struct {
	// Addr is the HTTP listen address.
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	// BaseDomain anchors subdomain extraction. Empty keeps the first-label
	// heuristic for any multi-label host.
	BaseDomain string `env:"BASE_DOMAIN"`

	// TenantCacheTTL bounds how long resolved tenants stay cached.
	TenantCacheTTL time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(
		logger.WithLevel(logCfg.Level),
		logger.WithFormat(logCfg.Format),
		logger.WithService("tenantkit"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			auth.LoggerExtractor(),
		),
	)

	var cfg appConfig
	config.MustLoad(&cfg)

	var pgCfg pg.Config
	config.MustLoad(&pgCfg)
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var redisCfg redis.Config
	config.MustLoad(&redisCfg)
	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer rdb.Close()

	var authCfg auth.Config
	config.MustLoad(&authCfg)
	hasher := auth.NewBcryptHasher(authCfg.BcryptCost)

	registry := tenant.NewRegistry()
	store := tenant.NewStore(registry)

	tenantSvc := tenants.NewService(tenants.NewPgRepository(pool), hasher, tenants.WithLogger(log))
	userSvc := users.NewService(users.NewPgRepository(pool), hasher,
		users.WithLogger(log),
		users.WithTenantStore(store),
	)
	resolver := auth.NewResolver(authCfg, userSvc, hasher,
		auth.WithResolverLogger(log),
		auth.WithTenantStore(store),
	)

	var webCfg web.Config
	config.MustLoad(&webCfg)
	webMod := web.New(webCfg, resolver, tenantSvc, userSvc, web.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(tenant.Middleware(
		tenant.NewSubdomainResolver(cfg.BaseDomain),
		tenantSvc,
		tenant.WithLogger(log),
		tenant.WithRegistry(registry),
		tenant.WithCache(tenant.NewRedisCache(rdb, "tenant:")),
		tenant.WithCacheTTL(cfg.TenantCacheTTL),
	))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	webMod.Routes(r)

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server terminated", slog.Any("error", err))
		os.Exit(1)
	}
}
