package replenishment

import "github.com/erp/stockplanner/internal/domain/shared"

// Domain-precondition errors. None of them is retried automatically.
var (
	ErrForecastNotFound       = shared.NewDomainError("FORECAST_NOT_FOUND", "Forecast not found")
	ErrForecastOutOfDate      = shared.NewDomainError("FORECAST_OUT_OF_DATE", "Forecast has no entries dated today or later")
	ErrNoForecastEntries      = shared.NewDomainError("NO_FORECAST_ENTRIES", "Forecast has no entries to evaluate")
	ErrInvalidForecast        = shared.NewDomainError("INVALID_FORECAST", "Forecast is invalid")
	ErrRecommendationNotFound = shared.NewDomainError("RECOMMENDATION_NOT_FOUND", "Inventory recommendation not found")
)
