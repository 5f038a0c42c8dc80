// Package metrics exposes the gateway's Prometheus collectors: per-provider
// inference counters and latency histograms labelled by model and cloud
// provider, plus an up-gauge written by the liveness tracker. Everything is
// registered with the default registry and served via promhttp.
package metrics
