package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a customer organization with the minimal information
// needed for request-scoped operations and UI display.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Directory loads tenant information from a data source.
// Implementations are expected to return ErrTenantNotFound when no
// tenant owns the given subdomain.
type Directory interface {
	FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
}

// DirectoryFunc is an adapter to allow ordinary functions as Directories.
type DirectoryFunc func(ctx context.Context, subdomain string) (*Tenant, error)

// FindBySubdomain calls the function.
func (f DirectoryFunc) FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	return f(ctx, subdomain)
}
