package provider

import (
	"net/url"
)

// Provider is one inference-serving backend tied to a cloud provider.
// It is immutable after construction; availability lives in the registry
// snapshot, not on the provider itself.
type Provider struct {
	name    string
	baseURL *url.URL
}

// New creates a Provider with the given name and base URL.
func New(name string, baseURL *url.URL) *Provider {
	return &Provider{
		name:    name,
		baseURL: baseURL,
	}
}

// Name returns the cloud provider identifier (e.g. "aws").
func (p *Provider) Name() string {
	return p.name
}

// BaseURL returns the provider's base URL.
func (p *Provider) BaseURL() *url.URL {
	return p.baseURL
}

// HealthURL returns the provider's health endpoint.
func (p *Provider) HealthURL() string {
	return p.baseURL.ResolveReference(&url.URL{Path: "/health"}).String()
}

// PredictURL returns the provider's predict endpoint.
func (p *Provider) PredictURL() string {
	return p.baseURL.ResolveReference(&url.URL{Path: "/predict"}).String()
}
