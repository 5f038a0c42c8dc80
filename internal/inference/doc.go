// Package inference defines the gateway's request/response types, the error
// taxonomy surfaced to callers, and the HTTP client that forwards one request
// to a provider's predict endpoint.
package inference
