package extractor

import "sync"

// Registry holds the known extractors in declaration order.
type Registry struct {
	mu         sync.RWMutex
	extractors []Extractor
}

// NewRegistry creates a registry pre-populated with exts.
func NewRegistry(exts ...Extractor) *Registry {
	r := &Registry{}
	for _, e := range exts {
		r.Register(e)
	}
	return r
}

// Register appends an extractor. Earlier registrations win on overlapping URLs.
func (r *Registry) Register(e Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = append(r.extractors, e)
}

// Find returns the first extractor that can handle url, or nil.
func (r *Registry) Find(url string) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.extractors {
		if e.CanHandle(url) {
			return e
		}
	}
	return nil
}

// Platforms lists registered platform ids.
func (r *Registry) Platforms() []PlatformID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]PlatformID, len(r.extractors))
	for i, e := range r.extractors {
		ids[i] = e.ID()
	}
	return ids
}
