package event

import (
	"sync"

	"github.com/erp/stockplanner/internal/domain/shared"
)

type subscription struct {
	handler  shared.EventHandler
	types    map[string]struct{}
	wildcard bool
}

func (s subscription) matches(eventType string) bool {
	if s.wildcard {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// HandlerRegistry keeps handler subscriptions in registration order
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes a handler to the given event types, or to every event when none are given.
// Registering the same handler again adds the new types to its existing subscription.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subs {
		if r.subs[i].handler != handler {
			continue
		}
		if len(eventTypes) == 0 {
			r.subs[i].wildcard = true
		}
		for _, t := range eventTypes {
			r.subs[i].types[t] = struct{}{}
		}
		return
	}

	sub := subscription{handler: handler, types: make(map[string]struct{}, len(eventTypes)), wildcard: len(eventTypes) == 0}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}
	r.subs = append(r.subs, sub)
}

// Unregister removes every subscription of the handler
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.subs[:0]
	for _, sub := range r.subs {
		if sub.handler != handler {
			kept = append(kept, sub)
		}
	}
	for i := len(kept); i < len(r.subs); i++ {
		r.subs[i] = subscription{}
	}
	r.subs = kept
}

// GetHandlers returns the handlers subscribed to the event type, in registration order
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []shared.EventHandler
	for _, sub := range r.subs {
		if sub.matches(eventType) {
			result = append(result, sub.handler)
		}
	}
	return result
}

// Len returns the number of registered handlers
func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
