package provider

// Registry holds the configured providers keyed by name. It is populated
// once at startup and never mutated afterwards, so lookups are safe for
// unsynchronized concurrent use.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers by name. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names, in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
