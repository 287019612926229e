package auth

import "github.com/google/uuid"

// Class is the identity class of a resolved principal. It is derived from
// role and tenant presence at construction time, never stored.
type Class string

const (
	ClassSuperadmin  Class = "SUPERADMIN"
	ClassTenantAdmin Class = "TENANT_ADMIN"
	ClassEndUser     Class = "END_USER"
)

// SuperadminDisplayName is the fixed display name of the superadmin
// singleton, which has no persisted record.
const SuperadminDisplayName = "Super Administrator"

// Principal is the resolved authentication result for one login attempt.
// It is created fresh per attempt and never persisted. Construct it only
// through NewSuperadminPrincipal or NewTenantPrincipal so that identity
// class and tenant presence cannot disagree: Class is ClassSuperadmin iff
// TenantID is nil.
type Principal struct {
	Email       string
	Credential  string // one-way password hash to verify against
	Role        Role
	UserID      uuid.UUID // uuid.Nil is the reserved superadmin sentinel
	TenantID    *uuid.UUID
	Class       Class
	DisplayName string
}

// NewSuperadminPrincipal builds the superadmin singleton principal. The
// credential is hashed from configuration at resolution time, not read
// from storage.
func NewSuperadminPrincipal(email, credential string) *Principal {
	return &Principal{
		Email:       email,
		Credential:  credential,
		Role:        RoleSuperadmin,
		UserID:      uuid.Nil,
		TenantID:    nil,
		Class:       ClassSuperadmin,
		DisplayName: SuperadminDisplayName,
	}
}

// NewTenantPrincipal builds a principal for a stored user inside a tenant.
// The class follows the user's role: ADMIN maps to TENANT_ADMIN, anything
// else to END_USER.
func NewTenantPrincipal(user *User, tenantID uuid.UUID) *Principal {
	class := ClassEndUser
	if user.Role == RoleAdmin {
		class = ClassTenantAdmin
	}
	return &Principal{
		Email:       user.Email,
		Credential:  user.PasswordHash,
		Role:        user.Role,
		UserID:      user.ID,
		TenantID:    &tenantID,
		Class:       class,
		DisplayName: user.FullName,
	}
}
