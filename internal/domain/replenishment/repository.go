package replenishment

import (
	"context"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
)

// ForecastRepository is the read port for forecasts
type ForecastRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Forecast, error)
}

// RecommendationRepository is the read port for recommendations
type RecommendationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecommendation, error)
	// FindCurrentByProduct returns the most recent recommendation for a product,
	// or ErrRecommendationNotFound when none exists
	FindCurrentByProduct(ctx context.Context, productID uuid.UUID) (*InventoryRecommendation, error)
}

// ForecastStore writes forecasts
type ForecastStore = shared.EntityStore[*Forecast]

// RecommendationStore writes recommendations
type RecommendationStore = shared.EntityStore[*InventoryRecommendation]
