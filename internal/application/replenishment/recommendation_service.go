package replenishment

import (
	"context"
	"errors"
	"time"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCoverageDays is the post-restock window used when none is configured
const DefaultCoverageDays = 14

// RecommendationConfig tunes recommendation generation
type RecommendationConfig struct {
	CoverageDays   int
	IsolationLevel IsolationLevel
}

// RecommendationService derives inventory recommendations from stored forecasts
type RecommendationService struct {
	newUnitOfWork   UnitOfWorkFactory
	engine          *replenishment.Engine
	config          RecommendationConfig
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	newUnitOfWork UnitOfWorkFactory,
	engine *replenishment.Engine,
	config RecommendationConfig,
	logger *zap.Logger,
) *RecommendationService {
	if config.CoverageDays <= 0 {
		config.CoverageDays = DefaultCoverageDays
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		newUnitOfWork: newUnitOfWork,
		engine:        engine,
		config:        config,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *RecommendationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *RecommendationService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GenerateForForecast runs the engine for a stored forecast and replaces the
// product's current recommendation with the result.
// Returns nil when stock lasts for the whole forecast horizon; any previous
// recommendation is retired in that case.
func (s *RecommendationService) GenerateForForecast(ctx context.Context, forecastID uuid.UUID) (*RecommendationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "recommendation", "generate",
		telemetry.WithAttribute(telemetry.SpanAttrForecastID, forecastID.String()))
	defer span.End()
	started := time.Now()

	var (
		issued  *replenishment.InventoryRecommendation
		retired *replenishment.InventoryRecommendation
	)

	uow := s.newUnitOfWork()
	err := RunInTransaction(ctx, uow, s.config.IsolationLevel, func(ctx context.Context, repos Repositories) error {
		forecast, err := repos.Forecasts().FindByID(ctx, forecastID)
		if err != nil {
			return err
		}
		product, err := repos.Products().FindByID(ctx, forecast.ProductID)
		if err != nil {
			return err
		}
		supplier, err := repos.Suppliers().FindDefaultSupplier(ctx, product.ID)
		if err != nil {
			return err
		}
		deliveries, err := repos.Deliveries().FindProductDeliveries(ctx, product.ID)
		if err != nil {
			return err
		}

		prior, err := repos.Recommendations().FindCurrentByProduct(ctx, product.ID)
		if err != nil && !errors.Is(err, replenishment.ErrRecommendationNotFound) {
			return err
		}

		rec, err := s.engine.Generate(replenishment.GenerateInput{
			RecommendationID: uuid.New(),
			Product:          product,
			Forecast:         forecast,
			Deliveries:       deliveries,
			Supplier:         supplier,
			CoverageDays:     s.config.CoverageDays,
		})
		if err != nil {
			return err
		}

		if rec == nil {
			if prior == nil {
				return nil
			}
			prior.Retire()
			retired = prior
			return uow.Save(ctx, prior)
		}

		if err := rec.Supersede(prior); err != nil {
			return err
		}
		issued = rec
		return uow.Save(ctx, rec)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Recommendation generation failed",
			zap.String("forecast_id", forecastID.String()),
			zap.Error(err))
		return nil, err
	}

	if s.businessMetrics != nil {
		status := "none"
		if issued != nil {
			status = string(issued.Status)
		}
		s.businessMetrics.RecordRecommendation(ctx, status, time.Since(started))
	}

	if err := s.drain(ctx, issued, retired); err != nil {
		// the recommendation is committed; a lost event is logged, not surfaced
		s.logger.Error("Failed to publish recommendation events",
			zap.String("forecast_id", forecastID.String()),
			zap.Error(err))
	}

	if issued == nil {
		s.logger.Info("No recommendation needed, stock covers forecast horizon",
			zap.String("forecast_id", forecastID.String()))
		return nil, nil
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecommendationID, issued.ID.String(),
		telemetry.SpanAttrRecommendationStatus, string(issued.Status))
	s.logger.Info("Recommendation issued",
		zap.String("recommendation_id", issued.ID.String()),
		zap.String("product_id", issued.ProductID.String()),
		zap.String("status", string(issued.Status)),
		zap.String("restock_quantity", issued.RestockQuantity.String()))

	resp := ToRecommendationResponse(issued)
	return &resp, nil
}

// GetCurrentForProduct returns the product's current recommendation
func (s *RecommendationService) GetCurrentForProduct(ctx context.Context, productID uuid.UUID) (*RecommendationResponse, error) {
	var resp RecommendationResponse
	uow := s.newUnitOfWork()
	err := RunInTransaction(ctx, uow, IsolationDefault, func(ctx context.Context, repos Repositories) error {
		rec, err := repos.Recommendations().FindCurrentByProduct(ctx, productID)
		if err != nil {
			return err
		}
		resp = ToRecommendationResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *RecommendationService) drain(ctx context.Context, aggregates ...*replenishment.InventoryRecommendation) error {
	roots := make([]shared.AggregateRoot, 0, len(aggregates))
	for _, agg := range aggregates {
		if agg != nil {
			roots = append(roots, agg)
		}
	}
	return shared.DrainEvents(ctx, s.eventPublisher, roots...)
}
