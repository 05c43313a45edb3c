package shared

// AggregateRoot is the base interface for all aggregate roots.
// It carries two independent outboxes: the tracked-entity ledger flushed by the
// unit of work, and the domain event queue drained after a successful commit.
type AggregateRoot interface {
	Entity
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
	AddTrackedEntity(entity Tracked, action TrackedAction)
	GetTrackedEntities() []TrackedChange
	ClearTrackedEntities()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	ledger       Ledger
	domainEvents []DomainEvent
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// AddTrackedEntity records a pending mutation in the aggregate's ledger
func (a *BaseAggregateRoot) AddTrackedEntity(entity Tracked, action TrackedAction) {
	a.ledger.Record(entity, action)
}

// GetTrackedEntities returns pending mutations in insertion order
func (a *BaseAggregateRoot) GetTrackedEntities() []TrackedChange {
	return a.ledger.Changes()
}

// ClearTrackedEntities empties the ledger after a successful flush
func (a *BaseAggregateRoot) ClearTrackedEntities() {
	a.ledger.Clear()
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		domainEvents: make([]DomainEvent, 0),
	}
}

// RehydrateAggregateRoot rebuilds the base of an aggregate loaded from storage.
// The ledger and event queue start empty.
func RehydrateAggregateRoot(base BaseEntity) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   base,
		domainEvents: make([]DomainEvent, 0),
	}
}
