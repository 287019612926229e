package tenant

import (
	"context"
	"sync"

	"github.com/novatech/tenantkit/pkg/requestid"
)

// Registry is a request-identity-scoped fallback store for tenant context.
//
// The context value set by the middleware is the primary store and covers
// every code path that threads the request context. The registry exists for
// continuations that execute with a detached context (background goroutines
// spawned from a handler, deferred work): while the request is in flight
// they can still recover the tenant through the request ID. Bindings live
// only for the request; the middleware releases them when the handler
// returns, so the registry never accumulates entries from completed
// requests. A nil *Registry is valid and behaves as a no-op, degrading
// lookups to the global realm.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Tenant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Tenant)}
}

// Bind associates a tenant with a request identity key.
func (r *Registry) Bind(key string, tenant *Tenant) {
	if r == nil || key == "" {
		return
	}
	r.mu.Lock()
	r.entries[key] = tenant
	r.mu.Unlock()
}

// Lookup returns the tenant bound to the request identity key.
func (r *Registry) Lookup(key string) (*Tenant, bool) {
	if r == nil || key == "" {
		return nil, false
	}
	r.mu.RLock()
	tenant, ok := r.entries[key]
	r.mu.RUnlock()
	if !ok || tenant == nil {
		return nil, false
	}
	return tenant, true
}

// Clear removes any binding for the request identity key. Clearing must not
// be skipped when a request resolves to the global realm: a stale binding
// from a previous request could otherwise be observed through the fallback
// path.
func (r *Registry) Clear(key string) {
	if r == nil || key == "" {
		return
	}
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
}

// Store combines the primary context value with the registry fallback into
// the set/get/clear contract consumed by the middleware and by downstream
// logic.
type Store struct {
	registry *Registry
}

// NewStore creates a store. The registry may be nil, in which case only the
// context value is consulted.
func NewStore(registry *Registry) *Store {
	return &Store{registry: registry}
}

// Set records the tenant in both the context and the registry, returning
// the derived context. The registry key is the request ID, so requests
// without request-ID middleware simply skip the fallback.
func (s *Store) Set(ctx context.Context, tenant *Tenant) context.Context {
	s.registry.Bind(requestid.FromContext(ctx), tenant)
	return WithTenant(ctx, tenant)
}

// Get reads the tenant, preferring the context value and falling back to
// the registry when the context carries no tenant slot at all.
func (s *Store) Get(ctx context.Context) (*Tenant, bool) {
	if tenant, ok := FromContext(ctx); ok {
		return tenant, true
	}
	// An explicitly cleared context wins over the registry.
	if _, cleared := ctx.Value(contextKey{}).(*Tenant); cleared {
		return nil, false
	}
	return s.registry.Lookup(requestid.FromContext(ctx))
}

// Clear resets both stores for the current request.
func (s *Store) Clear(ctx context.Context) context.Context {
	s.registry.Clear(requestid.FromContext(ctx))
	return ClearTenant(ctx)
}

// Release drops the registry binding for the request. It must run when the
// request's lifetime ends: the context value dies with the request on its
// own, but the registry is process-global and every request ID is unique,
// so an unreleased binding would be retained forever.
func (s *Store) Release(ctx context.Context) {
	s.registry.Clear(requestid.FromContext(ctx))
}
