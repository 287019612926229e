// Package auth resolves login attempts into role-scoped principals and
// exposes the role hierarchy used for authorization decisions.
//
// # Identity classes
//
// A resolved Principal carries one of three identity classes, derived at
// construction from role and tenant presence:
//
//   - SUPERADMIN: the configured operator account. No persisted record,
//     nil tenant, reserved zero user ID, credential hashed from
//     configuration at resolution time.
//   - TENANT_ADMIN: a stored user with role ADMIN inside a tenant.
//   - END_USER: any other stored user inside a tenant.
//
// The constructors are the only way to build a Principal, so class and
// tenant presence cannot disagree.
//
// # Resolution
//
//	resolver := auth.NewResolver(cfg, userStore, auth.NewBcryptHasher(cfg.BcryptCost),
//		auth.WithResolverLogger(log),
//	)
//
//	principal, err := resolver.Authenticate(ctx, email, password)
//	if errors.Is(err, auth.ErrPrincipalNotFound) {
//		// uniform failure: wrong realm, unknown email or wrong password
//	}
//
// The resolver reads the ambient tenant context populated by the tenant
// middleware; it must therefore run strictly after it. All failing
// branches surface the same ErrPrincipalNotFound so that error variance
// cannot be used to probe which tenants or accounts exist.
//
// # Role hierarchy
//
// Roles form the static order SUPERADMIN > ADMIN > USER. Role.Satisfies
// implements the dominance relation and RequireRole turns it into a route
// guard that distinguishes 401 (no principal) from 403 (insufficient
// role).
package auth
