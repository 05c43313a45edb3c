package shared

import "github.com/google/uuid"

// TrackedAction is the pending persistence action recorded for an entity
type TrackedAction string

const (
	TrackedActionCreated TrackedAction = "created"
	TrackedActionUpdated TrackedAction = "updated"
	TrackedActionDeleted TrackedAction = "deleted"
)

// IsValid reports whether the action is one of the known actions
func (a TrackedAction) IsValid() bool {
	switch a {
	case TrackedActionCreated, TrackedActionUpdated, TrackedActionDeleted:
		return true
	}
	return false
}

// Tracked is anything a ledger can hold: it only needs a stable identity
type Tracked interface {
	GetID() uuid.UUID
}

// TrackedChange is one pending mutation awaiting flush
type TrackedChange struct {
	Entity Tracked
	Action TrackedAction
}

// Ledger records pending mutations for the entities of one aggregate.
//
// Entities live in an arena keyed by identity; pending actions live in a side table
// with the same keys, and order keeps first-recorded position so flushes are
// deterministic. Recording an identity again follows last-write-wins, with two
// collapse rules for entities that do not exist in storage yet:
//
//	created then updated -> created (the arena keeps the latest entity value)
//	created then deleted -> dropped entirely
//
// The zero value is ready to use.
type Ledger struct {
	arena   map[uuid.UUID]Tracked
	pending map[uuid.UUID]TrackedAction
	order   []uuid.UUID
}

// Record registers an action for the entity, collapsing with any prior action
func (l *Ledger) Record(entity Tracked, action TrackedAction) {
	if l.arena == nil {
		l.arena = make(map[uuid.UUID]Tracked)
		l.pending = make(map[uuid.UUID]TrackedAction)
	}

	id := entity.GetID()
	prior, seen := l.pending[id]
	if !seen {
		l.arena[id] = entity
		l.pending[id] = action
		l.order = append(l.order, id)
		return
	}

	if prior == TrackedActionCreated {
		switch action {
		case TrackedActionUpdated, TrackedActionCreated:
			l.arena[id] = entity
			return
		case TrackedActionDeleted:
			l.forget(id)
			return
		}
	}

	l.arena[id] = entity
	l.pending[id] = action
}

// Changes returns pending changes in first-recorded order
func (l *Ledger) Changes() []TrackedChange {
	changes := make([]TrackedChange, 0, len(l.order))
	for _, id := range l.order {
		changes = append(changes, TrackedChange{
			Entity: l.arena[id],
			Action: l.pending[id],
		})
	}
	return changes
}

// ActionFor returns the pending action for an identity, if any
func (l *Ledger) ActionFor(id uuid.UUID) (TrackedAction, bool) {
	action, ok := l.pending[id]
	return action, ok
}

// Len returns the number of pending changes
func (l *Ledger) Len() int {
	return len(l.order)
}

// Clear drops every pending change
func (l *Ledger) Clear() {
	l.arena = nil
	l.pending = nil
	l.order = nil
}

func (l *Ledger) forget(id uuid.UUID) {
	delete(l.arena, id)
	delete(l.pending, id)
	for i, candidate := range l.order {
		if candidate == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
