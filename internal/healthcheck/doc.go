// Package healthcheck implements the liveness tracker. It probes every
// registered provider's /health endpoint on a fixed interval and writes the
// results to the registry as one batch snapshot. Probe failures never reach
// request handling; they only flip the availability map.
package healthcheck
