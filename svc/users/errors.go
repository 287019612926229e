package users

import "errors"

var (
	// ErrEmailExists is returned when the email is already registered
	// within the tenant scope.
	ErrEmailExists = errors.New("user already exists with this email")

	// ErrCrossTenant is returned when an operation targets a user owned by
	// a different tenant than the ambient one.
	ErrCrossTenant = errors.New("cannot operate on users from other tenants")

	// ErrSuperadminRole is returned when an operation would create, modify
	// or delete a superadmin account. The superadmin is configured, never
	// stored, and the role cannot be granted.
	ErrSuperadminRole = errors.New("superadmin role is not assignable")

	// ErrInvalidRole is returned when the requested role is unknown.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidEmail is returned when the email is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrWeakPassword is returned when a password fails the minimum
	// length requirement.
	ErrWeakPassword = errors.New("password too short")
)
