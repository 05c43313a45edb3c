package replenishment

import (
	"context"
	"fmt"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendationGenerator derives a recommendation for a stored forecast
type RecommendationGenerator interface {
	GenerateForForecast(ctx context.Context, forecastID uuid.UUID) (*RecommendationResponse, error)
}

// ForecastGeneratedHandler regenerates the product recommendation whenever a new forecast is stored
type ForecastGeneratedHandler struct {
	generator RecommendationGenerator
	logger    *zap.Logger
}

// NewForecastGeneratedHandler creates a new ForecastGeneratedHandler
func NewForecastGeneratedHandler(generator RecommendationGenerator, logger *zap.Logger) *ForecastGeneratedHandler {
	return &ForecastGeneratedHandler{
		generator: generator,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ForecastGeneratedHandler) EventTypes() []string {
	return []string{replenishment.EventTypeForecastGenerated}
}

// Handle processes a ForecastGeneratedEvent
func (h *ForecastGeneratedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	generated, ok := event.(*replenishment.ForecastGeneratedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", replenishment.EventTypeForecastGenerated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			replenishment.EventTypeForecastGenerated, event.EventType())
	}

	rec, err := h.generator.GenerateForForecast(ctx, generated.ForecastID)
	if err != nil {
		return fmt.Errorf("generate recommendation for forecast %s: %w", generated.ForecastID, err)
	}

	if rec == nil {
		h.logger.Debug("forecast needs no recommendation",
			zap.String("forecast_id", generated.ForecastID.String()),
			zap.String("product_id", generated.ProductID.String()),
		)
		return nil
	}

	h.logger.Debug("recommendation generated from forecast",
		zap.String("forecast_id", generated.ForecastID.String()),
		zap.String("recommendation_id", rec.ID.String()),
		zap.String("status", rec.Status),
	)
	return nil
}

var _ shared.EventHandler = (*ForecastGeneratedHandler)(nil)
