package provider

import (
	"sync/atomic"
)

// Snapshot maps a provider name to its availability at one point in time.
// Readers must treat a Snapshot as immutable; the tracker builds a fresh map
// for every refresh cycle.
type Snapshot map[string]bool

// Registry owns the configured provider set and the current availability
// snapshot. The snapshot is swapped wholesale by a single writer (the
// liveness tracker) and read concurrently by the router and status handler.
type Registry struct {
	providers []*Provider
	byName    map[string]*Provider
	snapshot  atomic.Pointer[Snapshot]
}

// NewRegistry creates a registry for the given providers. Every provider
// starts out unavailable until the first refresh marks it up.
func NewRegistry(providers []*Provider) *Registry {
	r := &Registry{
		providers: providers,
		byName:    make(map[string]*Provider, len(providers)),
	}

	initial := make(Snapshot, len(providers))
	for _, p := range providers {
		r.byName[p.Name()] = p
		initial[p.Name()] = false
	}
	r.snapshot.Store(&initial)

	return r
}

// All returns every configured provider.
func (r *Registry) All() []*Provider {
	return r.providers
}

// Names returns the configured provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Lookup returns the provider with the given name, if configured.
func (r *Registry) Lookup(name string) (*Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Snapshot returns the current availability snapshot. Callers must not
// modify the returned map.
func (r *Registry) Snapshot() Snapshot {
	return *r.snapshot.Load()
}

// SetSnapshot replaces the availability snapshot as a batch. The stored
// snapshot always contains exactly the configured provider set: names
// missing from results default to unavailable, unknown names are dropped.
func (r *Registry) SetSnapshot(results Snapshot) {
	next := make(Snapshot, len(r.providers))
	for _, p := range r.providers {
		next[p.Name()] = results[p.Name()]
	}
	r.snapshot.Store(&next)
}

// Available returns the providers currently marked available.
func (r *Registry) Available() []*Provider {
	snap := r.Snapshot()

	available := make([]*Provider, 0, len(r.providers))
	for _, p := range r.providers {
		if snap[p.Name()] {
			available = append(available, p)
		}
	}

	return available
}
