package replenishment

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeForecastGenerated     = "ForecastGenerated"
	EventTypeForecastEvaluated     = "ForecastEvaluated"
	EventTypeRecommendationIssued  = "RecommendationIssued"
	EventTypeRecommendationRetired = "RecommendationRetired"
)

// ForecastGeneratedEvent is raised when a new forecast is stored.
// Its handler derives a fresh recommendation.
type ForecastGeneratedEvent struct {
	shared.BaseDomainEvent
	ForecastID   uuid.UUID `json:"forecast_id"`
	ProductID    uuid.UUID `json:"product_id"`
	EntryCount   int       `json:"entry_count"`
	HorizonStart time.Time `json:"horizon_start"`
	HorizonEnd   time.Time `json:"horizon_end"`
}

// NewForecastGeneratedEvent creates a new ForecastGeneratedEvent
func NewForecastGeneratedEvent(f *Forecast) *ForecastGeneratedEvent {
	start, end := f.Horizon()
	return &ForecastGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeForecastGenerated, AggregateTypeForecast, f.ID),
		ForecastID:      f.ID,
		ProductID:       f.ProductID,
		EntryCount:      len(f.entries),
		HorizonStart:    start,
		HorizonEnd:      end,
	}
}

// ForecastEvaluatedEvent is raised when accuracy is recorded on a forecast
type ForecastEvaluatedEvent struct {
	shared.BaseDomainEvent
	ForecastID uuid.UUID `json:"forecast_id"`
	ProductID  uuid.UUID `json:"product_id"`
	MAE        float64   `json:"mae"`
	MAPE       float64   `json:"mape"`
	RMSE       float64   `json:"rmse"`
}

// NewForecastEvaluatedEvent creates a new ForecastEvaluatedEvent
func NewForecastEvaluatedEvent(f *Forecast) *ForecastEvaluatedEvent {
	e := &ForecastEvaluatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeForecastEvaluated, AggregateTypeForecast, f.ID),
		ForecastID:      f.ID,
		ProductID:       f.ProductID,
	}
	if f.Accuracy != nil {
		e.MAE = f.Accuracy.MAE
		e.MAPE = f.Accuracy.MAPE
		e.RMSE = f.Accuracy.RMSE
	}
	return e
}

// RecommendationIssuedEvent is raised when the engine creates a recommendation
type RecommendationIssuedEvent struct {
	shared.BaseDomainEvent
	RecommendationID uuid.UUID            `json:"recommendation_id"`
	ForecastID       uuid.UUID            `json:"forecast_id"`
	ProductID        uuid.UUID            `json:"product_id"`
	SupplierID       uuid.UUID            `json:"supplier_id"`
	Status           RecommendationStatus `json:"status"`
	StockOutDate     time.Time            `json:"stock_out_date"`
	RestockDate      time.Time            `json:"restock_date"`
	RestockQuantity  decimal.Decimal      `json:"restock_quantity"`
}

// NewRecommendationIssuedEvent creates a new RecommendationIssuedEvent
func NewRecommendationIssuedEvent(r *InventoryRecommendation) *RecommendationIssuedEvent {
	return &RecommendationIssuedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRecommendationIssued, AggregateTypeRecommendation, r.ID),
		RecommendationID: r.ID,
		ForecastID:       r.ForecastID,
		ProductID:        r.ProductID,
		SupplierID:       r.SupplierID,
		Status:           r.Status,
		StockOutDate:     r.StockOutDate,
		RestockDate:      r.RestockDate,
		RestockQuantity:  r.RestockQuantity,
	}
}

// RecommendationRetiredEvent is raised when a recommendation is withdrawn,
// either replaced by a newer one or no longer needed
type RecommendationRetiredEvent struct {
	shared.BaseDomainEvent
	RecommendationID uuid.UUID `json:"recommendation_id"`
	ProductID        uuid.UUID `json:"product_id"`
	ReplacedBy       uuid.UUID `json:"replaced_by,omitempty"`
}

// NewRecommendationRetiredEvent creates a new RecommendationRetiredEvent.
// replacedBy is uuid.Nil when nothing replaces the recommendation.
func NewRecommendationRetiredEvent(r *InventoryRecommendation, replacedBy uuid.UUID) *RecommendationRetiredEvent {
	return &RecommendationRetiredEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeRecommendationRetired, AggregateTypeRecommendation, r.ID),
		RecommendationID: r.ID,
		ProductID:        r.ProductID,
		ReplacedBy:       replacedBy,
	}
}
