package commands

import (
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// InFlightRegistry tracks entities with an outstanding mutation. A second request
// for the same entity is rejected, not queued.
type InFlightRegistry struct {
	entity string

	mu      sync.Mutex
	pending map[kernel.ID]struct{}
}

// NewInFlightRegistry creates a registry for one entity type ("order", "product").
func NewInFlightRegistry(entity string) *InFlightRegistry {
	return &InFlightRegistry{
		entity:  entity,
		pending: make(map[kernel.ID]struct{}),
	}
}

// Acquire marks id as in flight. The returned release func must be called
// once the mutation is over; calling it more than once is harmless.
func (r *InFlightRegistry) Acquire(id kernel.ID) (release func(), err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.pending[id]; busy {
		return nil, errs.NewTransitionInFlightError(r.entity, id.Int64())
	}
	r.pending[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.pending, id)
			r.mu.Unlock()
		})
	}, nil
}

// InFlight reports whether id has an outstanding mutation.
func (r *InFlightRegistry) InFlight(id kernel.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.pending[id]
	return busy
}
