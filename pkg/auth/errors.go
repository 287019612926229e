package auth

import "errors"

var (
	// ErrPrincipalNotFound is the single opaque authentication failure.
	// Wrong realm, unknown email and wrong password all collapse into it so
	// that error variance cannot leak tenant or account existence.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrUserNotFound is returned by UserStore implementations when no user
	// matches the email within the tenant scope.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthenticated is returned when a guarded route is reached
	// without a principal in the context.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when a principal's role does not satisfy a
	// route's required role. Deliberately distinct from authentication
	// failure.
	ErrForbidden = errors.New("insufficient role")
)
