// Package provider defines the model-serving backends the gateway routes to
// and the registry that holds their availability snapshot. The snapshot is
// replaced wholesale by the liveness tracker and read by the request router,
// so it always reflects exactly the configured provider set.
package provider
