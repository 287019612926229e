package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by Directory implementations when no
	// tenant owns the requested subdomain.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidSubdomain is returned when a host yields a subdomain
	// candidate that is not a valid DNS label.
	ErrInvalidSubdomain = errors.New("invalid subdomain")

	// ErrNoTenantInContext is returned when a tenant is required but the
	// request is running in the global realm.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
