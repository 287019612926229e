package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a stored account. TenantID is nil only for the superadmin, which
// in practice never appears in storage; every persisted user belongs to a
// tenant. Email is unique within a tenant, not globally.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	TenantID     *uuid.UUID `json:"tenant_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserStore is the lookup capability the resolver needs from the user
// storage layer. Implementations return ErrUserNotFound when no user with
// that email exists inside the tenant.
type UserStore interface {
	FindByEmailAndTenant(ctx context.Context, email string, tenantID uuid.UUID) (*User, error)
}

// NormalizeEmail lowercases and trims an email address so lookups and the
// superadmin comparison are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
