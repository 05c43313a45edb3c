package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	id    uuid.UUID
	value string
}

func (s *stubEntity) GetID() uuid.UUID { return s.id }

func newStub(value string) *stubEntity {
	return &stubEntity{id: uuid.New(), value: value}
}

func TestLedger_Record(t *testing.T) {
	t.Run("keeps first-recorded order", func(t *testing.T) {
		var l Ledger
		a, b, c := newStub("a"), newStub("b"), newStub("c")

		l.Record(b, TrackedActionUpdated)
		l.Record(a, TrackedActionCreated)
		l.Record(c, TrackedActionDeleted)

		changes := l.Changes()
		require.Len(t, changes, 3)
		assert.Equal(t, b.id, changes[0].Entity.GetID())
		assert.Equal(t, a.id, changes[1].Entity.GetID())
		assert.Equal(t, c.id, changes[2].Entity.GetID())
	})

	t.Run("created then updated collapses to created with final value", func(t *testing.T) {
		var l Ledger
		a := newStub("draft")
		l.Record(a, TrackedActionCreated)

		final := &stubEntity{id: a.id, value: "final"}
		l.Record(final, TrackedActionUpdated)

		changes := l.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, TrackedActionCreated, changes[0].Action)
		assert.Equal(t, "final", changes[0].Entity.(*stubEntity).value)
	})

	t.Run("created then deleted drops the entry", func(t *testing.T) {
		var l Ledger
		a, b := newStub("a"), newStub("b")
		l.Record(a, TrackedActionCreated)
		l.Record(b, TrackedActionCreated)
		l.Record(a, TrackedActionDeleted)

		changes := l.Changes()
		require.Len(t, changes, 1)
		assert.Equal(t, b.id, changes[0].Entity.GetID())
		_, ok := l.ActionFor(a.id)
		assert.False(t, ok)
	})

	t.Run("last write wins for stored entities", func(t *testing.T) {
		var l Ledger
		a := newStub("a")
		l.Record(a, TrackedActionUpdated)
		l.Record(a, TrackedActionDeleted)

		action, ok := l.ActionFor(a.id)
		require.True(t, ok)
		assert.Equal(t, TrackedActionDeleted, action)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("clear empties the ledger", func(t *testing.T) {
		var l Ledger
		l.Record(newStub("a"), TrackedActionCreated)
		l.Clear()

		assert.Equal(t, 0, l.Len())
		assert.Empty(t, l.Changes())
	})
}

func TestTrackedAction_IsValid(t *testing.T) {
	assert.True(t, TrackedActionCreated.IsValid())
	assert.True(t, TrackedActionUpdated.IsValid())
	assert.True(t, TrackedActionDeleted.IsValid())
	assert.False(t, TrackedAction("archived").IsValid())
}

type recordingPublisher struct {
	published []DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...DomainEvent) error {
	p.published = append(p.published, events...)
	return nil
}

type testAggregate struct {
	BaseAggregateRoot
}

func TestDrainEvents(t *testing.T) {
	agg := &testAggregate{BaseAggregateRoot: NewBaseAggregateRoot()}
	event := NewBaseDomainEvent("Tested", "Test", agg.ID)
	agg.AddDomainEvent(&event)
	agg.AddTrackedEntity(agg, TrackedActionCreated)

	pub := &recordingPublisher{}
	require.NoError(t, DrainEvents(context.Background(), pub, agg))

	assert.Len(t, pub.published, 1)
	assert.Empty(t, agg.GetDomainEvents())
	// the ledger is a separate outbox and is not touched by draining events
	assert.Len(t, agg.GetTrackedEntities(), 1)
}
