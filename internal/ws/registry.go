package ws

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is the live view of one connected client: its last reported
// location and notification radius. Never persisted; the registry rebuilds
// itself as clients reconnect.
type Subscription struct {
	ConnID    uuid.UUID
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Registry is the only shared mutable in-memory structure in the system.
// All access goes through the mutex; handlers never touch the map directly.
type Registry struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[uuid.UUID]Subscription)}
}

func (r *Registry) Upsert(connID uuid.UUID, lat, lng, radiusKm float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[connID] = Subscription{
		ConnID:    connID,
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radiusKm,
	}
}

func (r *Registry) Remove(connID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, connID)
}

func (r *Registry) Get(connID uuid.UUID) (Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[connID]
	return sub, ok
}

// Snapshot copies the current entries so fanout can iterate without holding
// the lock across socket writes.
func (r *Registry) Snapshot() []Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
