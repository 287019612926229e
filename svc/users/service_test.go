package users_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
	"github.com/novatech/tenantkit/svc/users"
)

type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (fakeHasher) Verify(secret, hash string) error {
	if "hashed:"+secret != hash {
		return errors.New("credential mismatch")
	}
	return nil
}

type fakeRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*auth.User)}
}

func (r *fakeRepo) seed(u *auth.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
}

func (r *fakeRepo) Create(_ context.Context, u *auth.User) error {
	r.seed(u)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeRepo) GetByEmailAndTenant(_ context.Context, email string, tenantID uuid.UUID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.TenantID != nil && *u.TenantID == tenantID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeRepo) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []auth.User
	for _, u := range r.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []auth.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, u *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return auth.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) ExistsByEmailAndTenant(_ context.Context, email string, tenantID uuid.UUID) (bool, error) {
	_, err := r.GetByEmailAndTenant(context.Background(), email, tenantID)
	if errors.Is(err, auth.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeRepo) CountByTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	list, _ := r.ListByTenant(context.Background(), tenantID)
	return int64(len(list)), nil
}

func (r *fakeRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func tenantContext(id uuid.UUID) context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: id, Subdomain: "acme"})
}

func TestServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates an end user in the ambient tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})

		u, err := svc.Register(tenantContext(tenantID), " Jane Doe ", "Jane@Acme.com", "jane-pass")
		require.NoError(t, err)

		assert.Equal(t, auth.RoleUser, u.Role)
		assert.Equal(t, "jane@acme.com", u.Email)
		assert.Equal(t, "Jane Doe", u.FullName)
		assert.Equal(t, "hashed:jane-pass", u.PasswordHash)
		require.NotNil(t, u.TenantID)
		assert.Equal(t, tenantID, *u.TenantID)
	})

	t.Run("fails in the global realm", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(context.Background(), "Jane Doe", "jane@acme.com", "jane-pass")
		require.ErrorIs(t, err, tenant.ErrNoTenantInContext)
	})

	t.Run("rejects duplicate email within the tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass")
		require.NoError(t, err)

		_, err = svc.Register(tenantContext(tenantID), "Other Jane", "jane@acme.com", "other-pass")
		require.ErrorIs(t, err, users.ErrEmailExists)
	})

	t.Run("same email in another tenant is allowed", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass")
		require.NoError(t, err)

		_, err = svc.Register(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass")
		require.NoError(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(tenantContext(uuid.New()), "Jane", "jane@acme.com", "short")
		require.ErrorIs(t, err, users.ErrWeakPassword)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(tenantContext(uuid.New()), "Jane", "not-an-email", "jane-pass")
		require.ErrorIs(t, err, users.ErrInvalidEmail)
	})
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a user with explicit role", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", auth.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, u.Role)
	})

	t.Run("empty role defaults to user", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", "")
		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, u.Role)
	})

	t.Run("superadmin role is never assignable", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", auth.RoleSuperadmin)
		require.ErrorIs(t, err, users.ErrSuperadminRole)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", "MODERATOR")
		require.ErrorIs(t, err, users.ErrInvalidRole)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates within the ambient tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		updated, err := svc.Update(tenantContext(tenantID), u.ID, users.UpdateRequest{
			FullName: "Jane Smith",
			Role:     auth.RoleAdmin,
			Password: "new-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", updated.FullName)
		assert.Equal(t, auth.RoleAdmin, updated.Role)
		assert.Equal(t, "hashed:new-password", updated.PasswordHash)
	})

	t.Run("empty password keeps the stored hash", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		updated, err := svc.Update(tenantContext(tenantID), u.ID, users.UpdateRequest{FullName: "Jane"})
		require.NoError(t, err)
		assert.Equal(t, "hashed:jane-pass", updated.PasswordHash)
	})

	t.Run("cross-tenant update is rejected", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		_, err = svc.Update(tenantContext(uuid.New()), u.ID, users.UpdateRequest{FullName: "Hijacked"})
		require.ErrorIs(t, err, users.ErrCrossTenant)
	})

	t.Run("superadmin role cannot be granted", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		_, err = svc.Update(tenantContext(tenantID), u.ID, users.UpdateRequest{
			FullName: "Jane",
			Role:     auth.RoleSuperadmin,
		})
		require.ErrorIs(t, err, users.ErrSuperadminRole)
	})

	t.Run("stored superadmin is untouchable", func(t *testing.T) {
		t.Parallel()

		repo := newFakeRepo()
		stray := &auth.User{ID: uuid.New(), Email: "root@novatech.com", Role: auth.RoleSuperadmin}
		repo.seed(stray)

		svc := users.NewService(repo, fakeHasher{})
		_, err := svc.Update(context.Background(), stray.ID, users.UpdateRequest{FullName: "Renamed"})
		require.ErrorIs(t, err, users.ErrSuperadminRole)
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes within the ambient tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(tenantContext(tenantID), u.ID))
		_, err = svc.Update(tenantContext(tenantID), u.ID, users.UpdateRequest{})
		require.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("cross-tenant delete is rejected", func(t *testing.T) {
		t.Parallel()

		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(uuid.New()), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Delete(tenantContext(uuid.New()), u.ID), users.ErrCrossTenant)
	})

	t.Run("global realm may delete any tenant user", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		svc := users.NewService(newFakeRepo(), fakeHasher{})
		u, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), u.ID))
	})
}

func TestServiceListAndCount(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := users.NewService(repo, fakeHasher{})

	acmeID, otherID := uuid.New(), uuid.New()
	_, err := svc.Create(tenantContext(acmeID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
	require.NoError(t, err)
	_, err = svc.Create(tenantContext(acmeID), "John", "john@acme.com", "john-pass", auth.RoleUser)
	require.NoError(t, err)
	_, err = svc.Create(tenantContext(otherID), "Jim", "jim@other.com", "jim-pass", auth.RoleUser)
	require.NoError(t, err)

	t.Run("tenant realm sees only its users", func(t *testing.T) {
		t.Parallel()

		list, err := svc.List(tenantContext(acmeID))
		require.NoError(t, err)
		assert.Len(t, list, 2)

		count, err := svc.Count(tenantContext(acmeID))
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("global realm sees everything", func(t *testing.T) {
		t.Parallel()

		list, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 3)

		count, err := svc.Count(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})
}

func TestServiceEmailExists(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	svc := users.NewService(newFakeRepo(), fakeHasher{})
	_, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
	require.NoError(t, err)

	t.Run("taken within the ambient tenant", func(t *testing.T) {
		t.Parallel()

		exists, err := svc.EmailExists(tenantContext(tenantID), " Jane@ACME.com ")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("free within the ambient tenant", func(t *testing.T) {
		t.Parallel()

		exists, err := svc.EmailExists(tenantContext(tenantID), "ghost@acme.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("scoped per tenant", func(t *testing.T) {
		t.Parallel()

		exists, err := svc.EmailExists(tenantContext(uuid.New()), "jane@acme.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("requires a tenant realm", func(t *testing.T) {
		t.Parallel()

		_, err := svc.EmailExists(context.Background(), "jane@acme.com")
		require.ErrorIs(t, err, tenant.ErrNoTenantInContext)
	})
}

func TestServiceAsUserStore(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	svc := users.NewService(newFakeRepo(), fakeHasher{})
	created, err := svc.Create(tenantContext(tenantID), "Jane", "jane@acme.com", "jane-pass", auth.RoleUser)
	require.NoError(t, err)

	var store auth.UserStore = svc

	found, err := store.FindByEmailAndTenant(context.Background(), " Jane@ACME.com ", tenantID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.FindByEmailAndTenant(context.Background(), "jane@acme.com", uuid.New())
	require.ErrorIs(t, err, auth.ErrUserNotFound)
}
