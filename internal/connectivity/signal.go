// Package connectivity exposes the online/offline boolean signal with
// edge-triggered change notifications. The underlying network detection is
// external; callers feed state changes in through SetOnline and consumers
// subscribe for transitions.
package connectivity

import "sync"

// Signal holds the current online state and a set of subscribers notified on
// every transition. The zero state is offline; construct with NewSignal.
type Signal struct {
	mu     sync.RWMutex
	online bool
	nextID int
	subs   map[int]func(online bool)
}

// NewSignal creates a Signal with the given initial state.
func NewSignal(online bool) *Signal {
	return &Signal{
		online: online,
		subs:   make(map[int]func(online bool)),
	}
}

// IsOnline returns the current state.
func (s *Signal) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// SetOnline records a state change. Subscribers are invoked synchronously,
// in unspecified order, only when the state actually flips.
func (s *Signal) SetOnline(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	handlers := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		handlers = append(handlers, fn)
	}
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(online)
	}
}

// Subscription is a handle to an active subscription. Unsubscribe releases
// it; after Unsubscribe returns, the handler is not invoked again.
type Subscription struct {
	signal *Signal
	id     int
	once   sync.Once
}

// Subscribe registers fn to run on every online/offline transition and
// returns the handle to release it.
func (s *Signal) Subscribe(fn func(online bool)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	return &Subscription{signal: s, id: id}
}

// Unsubscribe removes the handler. Idempotent.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		sub.signal.mu.Lock()
		delete(sub.signal.subs, sub.id)
		sub.signal.mu.Unlock()
	})
}
