// Package tenant implements subdomain-based tenant resolution and ambient
// tenant-context propagation for multi-tenant HTTP applications.
//
// The package is built around three pieces:
//
//  1. Resolver - extracts a subdomain candidate from the request host
//  2. Directory - loads the tenant owning a subdomain from a data source
//  3. Middleware - runs first in the pipeline and populates the tenant
//     context (or clears it for the global realm) before anything else
//
// # Usage
//
//	resolver := tenant.NewSubdomainResolver("example.com")
//	registry := tenant.NewRegistry()
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Use(tenant.Middleware(resolver, directory,
//		tenant.WithLogger(log),
//		tenant.WithRegistry(registry),
//		tenant.WithCacheTTL(10*time.Minute),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// global/superadmin realm
//		}
//		_ = t
//	}
//
// # Fail-open resolution
//
// A subdomain that matches no tenant does not fail the request. The
// middleware logs a warning, increments ResolutionDegradedTotal and clears
// the tenant context, leaving the request in the global realm. Downstream
// authentication is what rejects operations that require a tenant. This is
// a policy choice, not an accident; the counter exists precisely because
// the fallback is otherwise invisible to users.
//
// # Context propagation
//
// The middleware stores the resolved tenant as a request context value,
// which covers every code path that threads the context. The optional
// Registry is a request-ID-keyed fallback for continuations running with a
// detached context; Store consults it only when the context carries no
// tenant slot at all, so an explicitly cleared request can never leak a
// stale tenant through the fallback.
//
// # Apex-domain ambiguity
//
// Without a configured base domain, "example.com" resolves to subdomain
// "example" exactly like "acme.example.com" resolves to "acme". Pass the
// base domain to NewSubdomainResolver to make the apex resolve to the
// global realm instead.
package tenant
