package event

import (
	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"go.uber.org/zap"
)

// ReplenishmentHandlers holds the handlers that react to replenishment events
type ReplenishmentHandlers struct {
	ForecastGenerated *replenishmentapp.ForecastGeneratedHandler
	Alerts            *replenishmentapp.RecommendationAlertHandler
}

// RegisterReplenishmentHandlers subscribes the replenishment handlers to the bus.
// Recommendation generation is guarded by the idempotency store because a
// redelivered ForecastGenerated event would otherwise issue a second recommendation.
// Alerts are only logged, so duplicates are tolerated.
func RegisterReplenishmentHandlers(
	bus shared.EventSubscriber,
	handlers ReplenishmentHandlers,
	store shared.IdempotencyStore,
	idempotency shared.IdempotencyConfig,
	metrics *IdempotencyMetrics,
	logger *zap.Logger,
) {
	if handlers.ForecastGenerated != nil {
		opts := []IdempotentHandlerOption{WithIdempotencyConfig(idempotency)}
		if metrics != nil {
			opts = append(opts, WithIdempotencyMetrics(metrics))
		}
		bus.Subscribe(NewIdempotentHandler(handlers.ForecastGenerated, store, logger, opts...))
	}
	if handlers.Alerts != nil {
		bus.Subscribe(handlers.Alerts)
	}
}
