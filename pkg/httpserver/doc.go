// Package httpserver wraps net/http with graceful shutdown, signal
// handling and sane timeout defaults.
package httpserver
