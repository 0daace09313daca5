package kvstore

import "sync"

// Bus broadcasts key changes to every attached store handle. One bus with N
// handles models N tabs over the same origin storage: a write through any
// handle makes every handle re-read the key and notify its own subscribers.
type Bus struct {
	mu     sync.Mutex
	stores map[*Store]struct{}
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{stores: make(map[*Store]struct{})}
}

func (b *Bus) attach(s *Store) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stores[s] = struct{}{}
}

func (b *Bus) detach(s *Store) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.stores, s)
}

// Publish fans a key change out to all attached handles. Delivery is
// synchronous; subscriber callbacks run on the publishing goroutine.
func (b *Bus) Publish(key string) {
	b.mu.Lock()
	stores := make([]*Store, 0, len(b.stores))
	for s := range b.stores {
		stores = append(stores, s)
	}
	b.mu.Unlock()

	for _, s := range stores {
		s.notifyLocal(key)
	}
}
