package replenishment

import (
	"context"
	"time"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ForecastService stores forecasts produced by the forecasting service and
// back-tests them against realized sales
type ForecastService struct {
	newUnitOfWork   UnitOfWorkFactory
	isolation       IsolationLevel
	eventPublisher  shared.EventPublisher
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
	now             func() time.Time
}

// NewForecastService creates a new ForecastService
func NewForecastService(newUnitOfWork UnitOfWorkFactory, isolation IsolationLevel, logger *zap.Logger) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{
		newUnitOfWork: newUnitOfWork,
		isolation:     isolation,
		logger:        logger,
		now:           time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ForecastService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics sets the business metrics collector
func (s *ForecastService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// RecordForecast stores a new forecast for an existing product.
// The ForecastGenerated event is published after commit.
func (s *ForecastService) RecordForecast(ctx context.Context, req RecordForecastRequest) (*ForecastResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "forecast", "record",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, req.ProductID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrEntryCount, len(req.Entries)))
	defer span.End()

	generatedAt := s.now()
	if req.GeneratedAt != nil {
		generatedAt = *req.GeneratedAt
	}

	var forecast *replenishment.Forecast
	uow := s.newUnitOfWork()
	err := RunInTransaction(ctx, uow, s.isolation, func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Products().FindByID(ctx, req.ProductID); err != nil {
			return err
		}
		f, err := replenishment.NewForecast(req.ProductID, toForecastEntries(req.Entries), generatedAt)
		if err != nil {
			return err
		}
		forecast = f
		return uow.Save(ctx, f)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrForecastID, forecast.ID.String())
	if err := shared.DrainEvents(ctx, s.eventPublisher, forecast); err != nil {
		s.logger.Error("Failed to publish forecast events",
			zap.String("forecast_id", forecast.ID.String()),
			zap.Error(err))
	}

	resp := ToForecastResponse(forecast)
	return &resp, nil
}

// GetForecast returns a stored forecast
func (s *ForecastService) GetForecast(ctx context.Context, id uuid.UUID) (*ForecastResponse, error) {
	var resp ForecastResponse
	err := RunInTransaction(ctx, s.newUnitOfWork(), IsolationDefault, func(ctx context.Context, repos Repositories) error {
		f, err := repos.Forecasts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToForecastResponse(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// EvaluateAccuracy back-tests a forecast against completed sales over its
// horizon and records the summary on the forecast
func (s *ForecastService) EvaluateAccuracy(ctx context.Context, forecastID uuid.UUID) (*AccuracyReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "forecast", "evaluate_accuracy",
		telemetry.WithAttribute(telemetry.SpanAttrForecastID, forecastID.String()))
	defer span.End()

	var (
		forecast *replenishment.Forecast
		report   *replenishment.AccuracyReport
	)
	uow := s.newUnitOfWork()
	err := RunInTransaction(ctx, uow, s.isolation, func(ctx context.Context, repos Repositories) error {
		f, err := repos.Forecasts().FindByID(ctx, forecastID)
		if err != nil {
			return err
		}
		from, to := f.Horizon()
		sales, err := repos.Sales().DailyCompletedSales(ctx, f.ProductID, from, to)
		if err != nil {
			return err
		}
		r, err := replenishment.Evaluate(f.Entries(), sales)
		if err != nil {
			return err
		}
		if err := f.RecordAccuracy(r, s.now()); err != nil {
			return err
		}
		forecast, report = f, r
		return uow.Save(ctx, f)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordForecastAccuracy(ctx, report.MAPE)
	}
	if err := shared.DrainEvents(ctx, s.eventPublisher, forecast); err != nil {
		s.logger.Error("Failed to publish forecast events",
			zap.String("forecast_id", forecastID.String()),
			zap.Error(err))
	}

	s.logger.Info("Forecast evaluated",
		zap.String("forecast_id", forecastID.String()),
		zap.Float64("mae", report.MAE),
		zap.Float64("mape", report.MAPE),
		zap.Float64("rmse", report.RMSE))

	resp := ToAccuracyReportResponse(forecastID, report)
	return &resp, nil
}
