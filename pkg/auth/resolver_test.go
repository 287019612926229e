package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
)

// fakeHasher is deterministic so tests can assert credentials without
// paying for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) {
	return "hashed:" + secret, nil
}

func (fakeHasher) Verify(secret, hash string) error {
	if "hashed:"+secret != hash {
		return errors.New("credential mismatch")
	}
	return nil
}

type fakeUserStore struct {
	users map[string]*auth.User // keyed by email|tenantID
	err   error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*auth.User)}
}

func (s *fakeUserStore) add(u *auth.User) {
	s.users[fmt.Sprintf("%s|%s", u.Email, u.TenantID)] = u
}

func (s *fakeUserStore) FindByEmailAndTenant(_ context.Context, email string, tenantID uuid.UUID) (*auth.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[fmt.Sprintf("%s|%s", email, &tenantID)]; ok {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func testConfig() auth.Config {
	return auth.Config{
		SuperadminEmail:    "superadmin@novatech.com",
		SuperadminPassword: "super-secret",
		BcryptCost:         4,
	}
}

func tenantContext(id uuid.UUID) context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: id, Subdomain: "acme"})
}

func TestResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("superadmin email in global realm", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		p, err := resolver.Resolve(context.Background(), "superadmin@novatech.com")
		require.NoError(t, err)

		assert.Equal(t, auth.ClassSuperadmin, p.Class)
		assert.Equal(t, uuid.Nil, p.UserID)
		assert.Nil(t, p.TenantID)
		// The credential is derived from configuration, not storage.
		assert.Equal(t, "hashed:super-secret", p.Credential)
	})

	t.Run("superadmin email is case-insensitive", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		p, err := resolver.Resolve(context.Background(), "  SuperAdmin@NovaTech.com ")
		require.NoError(t, err)
		assert.Equal(t, auth.ClassSuperadmin, p.Class)
	})

	t.Run("other email in global realm fails", func(t *testing.T) {
		t.Parallel()

		store := newFakeUserStore()
		tenantID := uuid.New()
		store.add(&auth.User{ID: uuid.New(), Email: "user@acme.com", TenantID: &tenantID})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		_, err := resolver.Resolve(context.Background(), "user@acme.com")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})

	t.Run("stored admin resolves to tenant admin", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := newFakeUserStore()
		store.add(&auth.User{
			ID:           uuid.New(),
			Email:        "owner@acme.com",
			PasswordHash: "hashed:owner-pass",
			FullName:     "Acme Owner",
			Role:         auth.RoleAdmin,
			TenantID:     &tenantID,
		})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		p, err := resolver.Resolve(tenantContext(tenantID), "owner@acme.com")
		require.NoError(t, err)

		assert.Equal(t, auth.ClassTenantAdmin, p.Class)
		require.NotNil(t, p.TenantID)
		assert.Equal(t, tenantID, *p.TenantID)
	})

	t.Run("stored user resolves to end user", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := newFakeUserStore()
		store.add(&auth.User{
			ID:       uuid.New(),
			Email:    "member@acme.com",
			Role:     auth.RoleUser,
			TenantID: &tenantID,
		})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		p, err := resolver.Resolve(tenantContext(tenantID), "member@acme.com")
		require.NoError(t, err)
		assert.Equal(t, auth.ClassEndUser, p.Class)
	})

	t.Run("unknown user in tenant realm fails", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		_, err := resolver.Resolve(tenantContext(uuid.New()), "ghost@acme.com")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})

	t.Run("superadmin email in tenant realm is not special", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		_, err := resolver.Resolve(tenantContext(uuid.New()), "superadmin@novatech.com")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})

	t.Run("store failure reports the same opaque error", func(t *testing.T) {
		t.Parallel()

		store := newFakeUserStore()
		store.err = errors.New("connection refused")

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		_, err := resolver.Resolve(tenantContext(uuid.New()), "owner@acme.com")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})

	t.Run("wrong tenant fails even for an existing user", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := newFakeUserStore()
		store.add(&auth.User{
			ID:       uuid.New(),
			Email:    "owner@acme.com",
			Role:     auth.RoleAdmin,
			TenantID: &tenantID,
		})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		_, err := resolver.Resolve(tenantContext(uuid.New()), "owner@acme.com")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})
}

func TestResolverAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("superadmin with correct password", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		p, err := resolver.Authenticate(context.Background(), "superadmin@novatech.com", "super-secret")
		require.NoError(t, err)
		assert.Equal(t, auth.ClassSuperadmin, p.Class)
	})

	t.Run("superadmin with wrong password", func(t *testing.T) {
		t.Parallel()

		resolver := auth.NewResolver(testConfig(), newFakeUserStore(), fakeHasher{})
		_, err := resolver.Authenticate(context.Background(), "superadmin@novatech.com", "wrong")
		require.ErrorIs(t, err, auth.ErrPrincipalNotFound)
	})

	t.Run("tenant user with correct password", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := newFakeUserStore()
		store.add(&auth.User{
			ID:           uuid.New(),
			Email:        "member@acme.com",
			PasswordHash: "hashed:member-pass",
			Role:         auth.RoleUser,
			TenantID:     &tenantID,
		})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		p, err := resolver.Authenticate(tenantContext(tenantID), "member@acme.com", "member-pass")
		require.NoError(t, err)
		assert.Equal(t, auth.ClassEndUser, p.Class)
	})

	t.Run("verification failure is indistinguishable from missing user", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		store := newFakeUserStore()
		store.add(&auth.User{
			ID:           uuid.New(),
			Email:        "member@acme.com",
			PasswordHash: "hashed:member-pass",
			Role:         auth.RoleUser,
			TenantID:     &tenantID,
		})

		resolver := auth.NewResolver(testConfig(), store, fakeHasher{})
		_, wrongPass := resolver.Authenticate(tenantContext(tenantID), "member@acme.com", "wrong")
		_, noUser := resolver.Authenticate(tenantContext(tenantID), "ghost@acme.com", "wrong")

		assert.Equal(t, wrongPass, noUser)
	})
}
