package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/novatech/tenantkit/pkg/tenant"
)

// Resolver turns a submitted email plus the ambient tenant context into a
// concrete principal. It never mutates storage; its only side effect is
// logging.
type Resolver struct {
	cfg    Config
	users  UserStore
	hasher Hasher
	store  *tenant.Store
	logger *slog.Logger
}

// ResolverOption configures the resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets a custom logger for the resolver.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTenantStore sets the tenant context store consulted for the ambient
// tenant. The default store reads only the request context; pass a store
// backed by a registry when continuations may run with a detached context.
func WithTenantStore(store *tenant.Store) ResolverOption {
	return func(r *Resolver) {
		if store != nil {
			r.store = store
		}
	}
}

// NewResolver creates an authentication resolver.
func NewResolver(cfg Config, users UserStore, hasher Hasher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cfg:    cfg,
		users:  users,
		hasher: hasher,
		store:  tenant.NewStore(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the principal for an email under the ambient tenant
// context. The branches, in order:
//
//  1. Global realm and the email matches the configured superadmin: the
//     superadmin singleton, its credential hashed from configuration right
//     now rather than read from storage.
//  2. Tenant realm: look the user up by (email, tenant).
//  3. Global realm with any other email: there is no tenant-less user
//     table, so the attempt fails outright.
//
// Every failing branch returns the same opaque ErrPrincipalNotFound.
func (r *Resolver) Resolve(ctx context.Context, email string) (*Principal, error) {
	email = NormalizeEmail(email)

	current, inTenantRealm := r.store.Get(ctx)

	if !inTenantRealm {
		if email != NormalizeEmail(r.cfg.SuperadminEmail) {
			r.logger.WarnContext(ctx, "authentication failed in global realm",
				slog.String("email", email),
			)
			return nil, ErrPrincipalNotFound
		}

		credential, err := r.hasher.Hash(r.cfg.SuperadminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to derive superadmin credential: %w", err)
		}
		r.logger.InfoContext(ctx, "superadmin principal resolved",
			slog.String("email", email),
		)
		return NewSuperadminPrincipal(email, credential), nil
	}

	user, err := r.users.FindByEmailAndTenant(ctx, email, current.ID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			r.logger.ErrorContext(ctx, "user store lookup failed",
				slog.String("email", email),
				slog.Any("error", err),
			)
		} else {
			r.logger.WarnContext(ctx, "authentication failed in tenant realm",
				slog.String("email", email),
			)
		}
		return nil, ErrPrincipalNotFound
	}

	principal := NewTenantPrincipal(user, current.ID)
	r.logger.InfoContext(ctx, "principal resolved",
		slog.String("email", email),
		slog.String("class", string(principal.Class)),
	)
	return principal, nil
}

// Authenticate resolves the principal and verifies the submitted password
// against its credential. Verification failure reports the same opaque
// error as resolution failure.
func (r *Resolver) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	principal, err := r.Resolve(ctx, email)
	if err != nil {
		AuthenticationsTotal.WithLabelValues(OutcomeFailure).Inc()
		return nil, err
	}

	if err := r.hasher.Verify(password, principal.Credential); err != nil {
		AuthenticationsTotal.WithLabelValues(OutcomeFailure).Inc()
		r.logger.WarnContext(ctx, "credential verification failed",
			slog.String("email", principal.Email),
		)
		return nil, ErrPrincipalNotFound
	}

	AuthenticationsTotal.WithLabelValues(OutcomeSuccess).Inc()
	return principal, nil
}
