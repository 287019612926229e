package redis

import "errors"

var (
	// ErrInvalidURL is returned when the connection URL cannot be parsed.
	ErrInvalidURL = errors.New("failed to parse redis connection URL")

	// ErrNotReady is returned when the server is unreachable after all retries.
	ErrNotReady = errors.New("redis not ready")
)
