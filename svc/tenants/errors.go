package tenants

import "errors"

var (
	// ErrSubdomainTaken is returned when the requested subdomain already
	// belongs to another tenant.
	ErrSubdomainTaken = errors.New("subdomain already taken")

	// ErrEmailTaken is returned when the contact email already belongs to
	// another tenant.
	ErrEmailTaken = errors.New("tenant email already exists")

	// ErrInvalidSubdomain is returned when the requested subdomain is not
	// a valid lowercase DNS label.
	ErrInvalidSubdomain = errors.New("invalid subdomain")

	// ErrInvalidEmail is returned when the contact email is malformed.
	ErrInvalidEmail = errors.New("invalid email address")
)
