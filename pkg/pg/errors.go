package pg

import "errors"

var (
	// ErrInvalidConfig is returned when the connection string cannot be parsed.
	ErrInvalidConfig = errors.New("failed to parse postgres config")

	// ErrNotReady is returned when the database is unreachable after all retries.
	ErrNotReady = errors.New("postgres not ready")
)
