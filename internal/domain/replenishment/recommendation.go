package replenishment

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeRecommendation is the aggregate type for InventoryRecommendation
const AggregateTypeRecommendation = "InventoryRecommendation"

// RecommendationStatus is the urgency of a recommendation
type RecommendationStatus string

const (
	RecommendationStatusGood     RecommendationStatus = "good"
	RecommendationStatusWarning  RecommendationStatus = "warning"
	RecommendationStatusUrgent   RecommendationStatus = "urgent"
	RecommendationStatusCritical RecommendationStatus = "critical"
)

// IsValid checks if the status is a known value
func (s RecommendationStatus) IsValid() bool {
	switch s {
	case RecommendationStatusGood, RecommendationStatusWarning,
		RecommendationStatusUrgent, RecommendationStatusCritical:
		return true
	}
	return false
}

// NeedsAttention returns true for statuses that require placing an order now
func (s RecommendationStatus) NeedsAttention() bool {
	return s == RecommendationStatusUrgent || s == RecommendationStatusCritical
}

// InventoryRecommendation is the engine's reorder advice for one product.
// It is never changed after creation; a newer recommendation supersedes it.
type InventoryRecommendation struct {
	shared.BaseAggregateRoot
	ProductID       uuid.UUID
	ForecastID      uuid.UUID
	SupplierID      uuid.UUID
	LeadTimeDays    int
	Status          RecommendationStatus
	StockOutDate    time.Time
	RestockDate     time.Time
	RestockQuantity decimal.Decimal
	SafetyStock     decimal.Decimal
	CoverageDays    int
}

// RehydrateRecommendation rebuilds a recommendation loaded from storage
func RehydrateRecommendation(
	base shared.BaseEntity,
	productID, forecastID, supplierID uuid.UUID,
	leadTimeDays int,
	status RecommendationStatus,
	stockOutDate, restockDate time.Time,
	restockQuantity, safetyStock decimal.Decimal,
	coverageDays int,
) *InventoryRecommendation {
	return &InventoryRecommendation{
		BaseAggregateRoot: shared.RehydrateAggregateRoot(base),
		ProductID:         productID,
		ForecastID:        forecastID,
		SupplierID:        supplierID,
		LeadTimeDays:      leadTimeDays,
		Status:            status,
		StockOutDate:      stockOutDate,
		RestockDate:       restockDate,
		RestockQuantity:   restockQuantity,
		SafetyStock:       safetyStock,
		CoverageDays:      coverageDays,
	}
}

// Supersede retires a prior recommendation for the same product.
// The prior one is tracked as deleted in this recommendation's ledger so both
// writes flush in the same save.
func (r *InventoryRecommendation) Supersede(prior *InventoryRecommendation) error {
	if prior == nil {
		return nil
	}
	if prior.ID == r.ID {
		return shared.NewDomainError("INVALID_SUPERSEDE", "Recommendation cannot supersede itself")
	}
	if prior.ProductID != r.ProductID {
		return shared.NewDomainError("INVALID_SUPERSEDE", "Recommendation can only supersede one for the same product")
	}

	r.AddTrackedEntity(prior, shared.TrackedActionDeleted)
	r.AddDomainEvent(NewRecommendationRetiredEvent(prior, r.ID))
	return nil
}

// Retire withdraws the recommendation without a replacement
func (r *InventoryRecommendation) Retire() {
	r.AddTrackedEntity(r, shared.TrackedActionDeleted)
	r.AddDomainEvent(NewRecommendationRetiredEvent(r, uuid.Nil))
}

// Accept dispatches the recommendation to the visitor
func (r *InventoryRecommendation) Accept(v EntityVisitor) error {
	return v.VisitRecommendation(r)
}
