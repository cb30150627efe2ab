package ephemeris

import "sync"

// Handle serializes all queries to a provider. The services behind real
// providers are not reentrant, so one lookup completes before the next
// begins — even across independent simulations sharing the handle. Handles
// are constructed and closed explicitly; there is no lazy global instance.
type Handle struct {
	mu     sync.Mutex
	p      Provider
	closed bool
}

// NewHandle wraps a provider for shared, serialized use.
func NewHandle(p Provider) *Handle {
	return &Handle{p: p}
}

// Lookup fetches a body snapshot, one caller at a time.
func (h *Handle) Lookup(name string) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return Record{}, ErrClosed
	}
	return h.p.Lookup(name)
}

// Names lists the bodies the provider knows about.
func (h *Handle) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	return h.p.Names()
}

// Close releases the provider. Subsequent lookups return ErrClosed.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.p = nil
	return nil
}
