// Package logger builds slog loggers with context-aware attribute
// injection. Extractors registered at construction pull request-scoped
// values (request ID, tenant ID, principal) into every record without the
// call sites having to thread them through.
package logger
