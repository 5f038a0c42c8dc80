// Package httpserver wraps http.Server with listen-address validation,
// sensible timeouts and graceful shutdown.
package httpserver
