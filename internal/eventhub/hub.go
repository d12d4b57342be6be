// Package eventhub is a synchronous publish/subscribe registry keyed by event
// name. Listeners run in registration order on the publishing goroutine.
package eventhub

import (
	"sync"

	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/google/uuid"
)

type listener struct {
	id   string
	name string
	fn   func(interface{})
}

// Hub holds the live subscriptions for every event name.
type Hub struct {
	mu        sync.Mutex
	listeners map[string][]*listener
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{listeners: make(map[string][]*listener)}
}

// Subscription is the handle returned by On. Dispose removes exactly this
// registration and may be called any number of times.
type Subscription struct {
	hub  *Hub
	l    *listener
	once sync.Once
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string {
	return s.l.id
}

// Dispose unregisters the listener.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		s.hub.remove(s.l)
		events.Hub.Dispose(s.l.name, s.l.id)
	})
}

// On registers fn for name.
func (h *Hub) On(name string, fn func(interface{})) *Subscription {
	l := &listener{id: uuid.NewString(), name: name, fn: fn}
	h.mu.Lock()
	h.listeners[name] = append(h.listeners[name], l)
	h.mu.Unlock()
	events.Hub.Subscribe(name, l.id)
	return &Subscription{hub: h, l: l}
}

// Emit calls every listener registered for name when Emit started. Changes
// made by listeners during the emit apply to later emits only. A panicking
// listener is reported and does not stop the remaining ones.
func (h *Hub) Emit(name string, payload interface{}) {
	h.mu.Lock()
	snapshot := append([]*listener(nil), h.listeners[name]...)
	h.mu.Unlock()
	events.Hub.Emit(name, len(snapshot))
	for _, l := range snapshot {
		invoke(l, payload)
	}
}

// Count returns the number of live listeners for name.
func (h *Hub) Count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[name])
}

func (h *Hub) remove(target *listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	current := h.listeners[target.name]
	for i, l := range current {
		if l != target {
			continue
		}
		next := make([]*listener, 0, len(current)-1)
		next = append(next, current[:i]...)
		next = append(next, current[i+1:]...)
		if len(next) == 0 {
			delete(h.listeners, target.name)
		} else {
			h.listeners[target.name] = next
		}
		return
	}
}

func invoke(l *listener, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			events.Hub.CallbackFailed(l.name, l.id, r)
		}
	}()
	l.fn(payload)
}
