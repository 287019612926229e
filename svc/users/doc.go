// Package users manages user records with ambient tenant isolation: in a
// tenant realm every operation is scoped to that tenant, in the global
// realm the superadmin sees everything. The service doubles as the
// auth.UserStore consumed by the authentication resolver.
package users
