// Package bus is the in-process event bus decoupling the sync engine from
// its listeners (UI badges, local read refresh) without direct references.
package bus

import "sync"

// Signal names published on the bus.
const (
	SyncStart     = "sync-start"
	SyncEnd       = "sync-end"
	SyncRequested = "sync-data"
)

// Bus fans a named signal out to its subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func()
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string]map[int]func())}
}

// Publish invokes every handler subscribed to the named signal,
// synchronously, in unspecified order.
func (b *Bus) Publish(signal string) {
	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subs[signal]))
	for _, fn := range b.subs[signal] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn()
	}
}

// Subscription is a handle to an active bus subscription.
type Subscription struct {
	bus    *Bus
	signal string
	id     int
	once   sync.Once
}

// Subscribe registers fn for the named signal and returns the handle to
// release it.
func (b *Bus) Subscribe(signal string, fn func()) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[signal] == nil {
		b.subs[signal] = make(map[int]func())
	}
	b.nextID++
	id := b.nextID
	b.subs[signal][id] = fn
	return &Subscription{bus: b, signal: signal, id: id}
}

// Unsubscribe removes the handler. Idempotent.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.bus.mu.Lock()
		delete(sub.bus.subs[sub.signal], sub.id)
		sub.bus.mu.Unlock()
	})
}
