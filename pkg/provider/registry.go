package provider

import (
	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// Registry is the fixed set of configured adapters.
// It is read-only after NewRegistry and safe for concurrent use.
type Registry struct {
	adapters map[wallpaper.Type]Adapter
	order    []wallpaper.Type
}

// NewRegistry indexes adapters by type. Types are ordered as in
// [wallpaper.AllTypes] regardless of argument order.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[wallpaper.Type]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			continue
		}
		t := a.Type()
		if !t.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "unknown provider type %q", t)
		}
		if _, dup := r.adapters[t]; dup {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "provider %s registered twice", t)
		}
		r.adapters[t] = a
	}
	for _, t := range wallpaper.AllTypes {
		if _, ok := r.adapters[t]; ok {
			r.order = append(r.order, t)
		}
	}
	return r, nil
}

// Get returns the adapter for t.
func (r *Registry) Get(t wallpaper.Type) (Adapter, bool) {
	a, ok := r.adapters[t]
	return a, ok
}

// Has reports whether t is registered.
func (r *Registry) Has(t wallpaper.Type) bool {
	_, ok := r.adapters[t]
	return ok
}

// Types returns the registered types in canonical order.
func (r *Registry) Types() []wallpaper.Type {
	return append([]wallpaper.Type(nil), r.order...)
}

// Len returns the number of registered adapters.
func (r *Registry) Len() int { return len(r.order) }

// Descriptors returns every registered descriptor with credentials redacted.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.adapters[t].Descriptor().Redacted())
	}
	return out
}

// Pick draws one registered type uniformly at random.
// It reports false when the registry is empty.
func (r *Registry) Pick(rng Rand) (wallpaper.Type, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[rng.IntN(len(r.order))], true
}
