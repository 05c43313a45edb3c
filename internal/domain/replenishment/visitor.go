package replenishment

import "github.com/erp/stockplanner/internal/domain/shared"

// EntityVisitor has one method per persisted entity kind.
// Adding a kind means adding a method here, which breaks every writer
// that does not handle it yet.
type EntityVisitor interface {
	VisitForecast(f *Forecast) error
	VisitRecommendation(r *InventoryRecommendation) error
}

// TrackedEntity is the closed set of entities a ledger in this context may hold
type TrackedEntity interface {
	shared.Tracked
	Accept(v EntityVisitor) error
}

var (
	_ TrackedEntity = (*Forecast)(nil)
	_ TrackedEntity = (*InventoryRecommendation)(nil)
)
