// Package pg provides PostgreSQL connection pooling via pgx with
// environment-driven configuration and startup retry.
package pg
