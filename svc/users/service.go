package users

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Repository is the persistence contract for user records.
type Repository interface {
	Create(ctx context.Context, u *auth.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
	GetByEmailAndTenant(ctx context.Context, email string, tenantID uuid.UUID) (*auth.User, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]auth.User, error)
	ListAll(ctx context.Context) ([]auth.User, error)
	Update(ctx context.Context, u *auth.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmailAndTenant(ctx context.Context, email string, tenantID uuid.UUID) (bool, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// Service manages user records with tenant isolation. Every operation
// reads the ambient tenant context: in a tenant realm it only ever sees
// that tenant's users, in the global realm (superadmin) it sees all of
// them. The service also satisfies auth.UserStore for the authentication
// resolver.
type Service struct {
	repo   Repository
	hasher auth.Hasher
	store  *tenant.Store
	logger *slog.Logger
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTenantStore sets the tenant context store consulted for the ambient
// tenant.
func WithTenantStore(store *tenant.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// NewService creates a user management service.
func NewService(repo Repository, hasher auth.Hasher, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		hasher: hasher,
		store:  tenant.NewStore(nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByEmailAndTenant satisfies auth.UserStore.
func (s *Service) FindByEmailAndTenant(ctx context.Context, email string, tenantID uuid.UUID) (*auth.User, error) {
	return s.repo.GetByEmailAndTenant(ctx, auth.NormalizeEmail(email), tenantID)
}

// Register creates an end user from the signup form. It requires a tenant
// realm: there is no tenant-less user table, so global-realm signups must
// register a tenant instead.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*auth.User, error) {
	current, ok := s.store.Get(ctx)
	if !ok {
		return nil, tenant.ErrNoTenantInContext
	}
	return s.create(ctx, current.ID, fullName, email, password, auth.RoleUser)
}

// Create adds a user with an explicit role inside the ambient tenant.
// Admin-facing; the SUPERADMIN role is never assignable.
func (s *Service) Create(ctx context.Context, fullName, email, password string, role auth.Role) (*auth.User, error) {
	current, ok := s.store.Get(ctx)
	if !ok {
		return nil, tenant.ErrNoTenantInContext
	}
	if role == "" {
		role = auth.RoleUser
	}
	if role == auth.RoleSuperadmin {
		return nil, ErrSuperadminRole
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return s.create(ctx, current.ID, fullName, email, password, role)
}

func (s *Service) create(ctx context.Context, tenantID uuid.UUID, fullName, email, password string, role auth.Role) (*auth.User, error) {
	email = auth.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	exists, err := s.repo.ExistsByEmailAndTenant(ctx, email, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &auth.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		TenantID:     &tenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", u.ID.String()),
		slog.String("role", string(u.Role)),
	)
	return u, nil
}

// UpdateRequest carries the mutable user fields. An empty Password leaves
// the stored hash untouched.
type UpdateRequest struct {
	FullName string
	Password string
	Role     auth.Role
}

// Update modifies a user, enforcing tenant isolation and the superadmin
// immutability rules.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*auth.User, error) {
	target, err := s.guard(ctx, id, req.Role)
	if err != nil {
		return nil, err
	}

	target.FullName = strings.TrimSpace(req.FullName)
	if req.Role != "" {
		target.Role = req.Role
	}
	if req.Password != "" {
		if len(req.Password) < MinPasswordLength {
			return nil, ErrWeakPassword
		}
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hash
	}
	target.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}

// Delete removes a user, enforcing tenant isolation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.guard(ctx, id, ""); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}

// guard loads the target user and applies the checks shared by Update and
// Delete: stored superadmins (which should not exist) are untouchable, the
// SUPERADMIN role is not assignable, and in a tenant realm the target must
// belong to the ambient tenant.
func (s *Service) guard(ctx context.Context, id uuid.UUID, newRole auth.Role) (*auth.User, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if target.Role == auth.RoleSuperadmin {
		return nil, ErrSuperadminRole
	}
	if newRole == auth.RoleSuperadmin {
		return nil, ErrSuperadminRole
	}
	if newRole != "" && !newRole.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, newRole)
	}

	if current, ok := s.store.Get(ctx); ok {
		if target.TenantID == nil || *target.TenantID != current.ID {
			return nil, ErrCrossTenant
		}
	}
	return target, nil
}

// List returns the ambient tenant's users, or every user in the global
// realm.
func (s *Service) List(ctx context.Context) ([]auth.User, error) {
	if current, ok := s.store.Get(ctx); ok {
		return s.repo.ListByTenant(ctx, current.ID)
	}
	return s.repo.ListAll(ctx)
}

// Count returns the ambient tenant's user count, or the global count.
func (s *Service) Count(ctx context.Context) (int64, error) {
	if current, ok := s.store.Get(ctx); ok {
		return s.repo.CountByTenant(ctx, current.ID)
	}
	return s.repo.CountAll(ctx)
}

// EmailExists reports whether the email is taken within the ambient
// tenant scope.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	current, ok := s.store.Get(ctx)
	if !ok {
		return false, tenant.ErrNoTenantInContext
	}
	return s.repo.ExistsByEmailAndTenant(ctx, auth.NormalizeEmail(email), current.ID)
}
