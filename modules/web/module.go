package web

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/svc/tenants"
	"github.com/novatech/tenantkit/svc/users"
)

// Module exposes the HTTP surface: login/logout/signup, the superadmin
// tenant administration and the per-tenant user administration.
type Module struct {
	cfg      Config
	resolver *auth.Resolver
	tenants  *tenants.Service
	users    *users.Service
	logger   *slog.Logger
}

// Option configures the module.
type Option func(*Module)

// WithLogger sets a custom logger for the module.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Module) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates the web module.
func New(cfg Config, resolver *auth.Resolver, tenantSvc *tenants.Service, userSvc *users.Service, opts ...Option) *Module {
	m := &Module{
		cfg:      cfg,
		resolver: resolver,
		tenants:  tenantSvc,
		users:    userSvc,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Routes mounts the module onto a chi router. The session middleware runs
// on every route so handlers can always consult the principal; the role
// guards sit on the protected subtrees.
func (m *Module) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(m.Session)

		r.Post("/login", m.handleLogin)
		r.Post("/logout", m.handleLogout)
		r.Post("/signup", m.handleSignup)

		r.Route("/home", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleUser))
			r.Get("/", m.handleHome)
		})

		r.Route("/superadmin", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleSuperadmin))
			r.Get("/dashboard", m.handleSuperadminDashboard)
			r.Post("/tenants", m.handleCreateTenant)
			r.Get("/tenants", m.handleListTenants)
			r.Get("/tenants/{id}", m.handleGetTenant)
			r.Put("/tenants/{id}", m.handleUpdateTenant)
			r.Delete("/tenants/{id}", m.handleDeleteTenant)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))
			r.Get("/dashboard", m.handleAdminDashboard)
			r.Post("/users", m.handleCreateUser)
			r.Get("/users", m.handleListUsers)
			r.Put("/users/{id}", m.handleUpdateUser)
			r.Delete("/users/{id}", m.handleDeleteUser)
		})
	})
}

// Handler returns a standalone handler with the module's routes mounted
// at the root.
func (m *Module) Handler() http.Handler {
	r := chi.NewRouter()
	m.Routes(r)
	return r
}
