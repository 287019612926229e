package tenants

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novatech/tenantkit/pkg/auth"
	"github.com/novatech/tenantkit/pkg/tenant"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Repository is the persistence contract for tenant records.
type Repository interface {
	Create(ctx context.Context, t *tenant.Tenant) error
	CreateWithAdmin(ctx context.Context, t *tenant.Tenant, admin *auth.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error)
	List(ctx context.Context) ([]tenant.Tenant, error)
	Update(ctx context.Context, t *tenant.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// Service manages tenant records. It also implements tenant.Directory so
// it can back the context propagation middleware directly.
type Service struct {
	repo   Repository
	hasher auth.Hasher
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

// NewService creates a tenant management service.
func NewService(repo Repository, hasher auth.Hasher, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		hasher: hasher,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindBySubdomain satisfies tenant.Directory.
func (s *Service) FindBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	return s.repo.GetBySubdomain(ctx, subdomain)
}

// Create creates a tenant without an initial user. Used by superadmin
// tooling; self-service signups go through Register instead.
func (s *Service) Create(ctx context.Context, name, email, subdomain string) (*tenant.Tenant, error) {
	name = strings.TrimSpace(name)
	email = auth.NormalizeEmail(email)
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))

	if err := s.validate(ctx, email, subdomain); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.InfoContext(ctx, "tenant created",
		slog.String("tenant_id", t.ID.String()),
		slog.String("subdomain", t.Subdomain),
	)
	return t, nil
}

// RegisterRequest carries a self-service tenant registration.
type RegisterRequest struct {
	TenantName string
	Subdomain  string
	FullName   string
	Email      string
	Password   string
}

// Register creates a tenant together with its initial ADMIN user in one
// transaction, so a failed user insert never leaves an orphaned tenant.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*tenant.Tenant, error) {
	email := auth.NormalizeEmail(req.Email)
	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))

	if err := s.validate(ctx, email, subdomain); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	t := &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      strings.TrimSpace(req.TenantName),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &auth.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         auth.RoleAdmin,
		TenantID:     &t.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateWithAdmin(ctx, t, admin); err != nil {
		return nil, fmt.Errorf("failed to register tenant: %w", err)
	}

	s.logger.InfoContext(ctx, "tenant registered",
		slog.String("tenant_id", t.ID.String()),
		slog.String("subdomain", t.Subdomain),
	)
	return t, nil
}

// GetByID returns a tenant by its identifier.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns a tenant by its contact email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error) {
	return s.repo.GetByEmail(ctx, auth.NormalizeEmail(email))
}

// List returns all tenants, for the superadmin dashboard.
func (s *Service) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.repo.List(ctx)
}

// Count returns the total number of tenants.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Update changes a tenant's name, contact email and subdomain.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name, email, subdomain string) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email = auth.NormalizeEmail(email)
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainPattern.MatchString(subdomain) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubdomain, subdomain)
	}

	if subdomain != t.Subdomain {
		if taken, err := s.repo.ExistsBySubdomain(ctx, subdomain); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrSubdomainTaken
		}
	}
	if email != t.Email {
		if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrEmailTaken
		}
	}

	t.Name = strings.TrimSpace(name)
	t.Email = email
	t.Subdomain = subdomain
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return t, nil
}

// Delete removes a tenant and, through the schema's cascade, its users.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "tenant deleted", slog.String("tenant_id", id.String()))
	return nil
}

func (s *Service) validate(ctx context.Context, email, subdomain string) error {
	if !subdomainPattern.MatchString(subdomain) {
		return fmt.Errorf("%w: %q", ErrInvalidSubdomain, subdomain)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	if taken, err := s.repo.ExistsBySubdomain(ctx, subdomain); err != nil {
		return err
	} else if taken {
		return ErrSubdomainTaken
	}
	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if taken {
		return ErrEmailTaken
	}
	return nil
}
