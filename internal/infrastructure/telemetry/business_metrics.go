package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics tracks replenishment outcomes.
type BusinessMetrics struct {
	logger *zap.Logger

	recommendationsTotal *Counter
	generationDuration   *Histogram
	forecastMAPE         *Histogram
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger}

	var err error
	bm.recommendationsTotal, err = NewCounter(
		cfg.Meter,
		"stockplanner_recommendations_total",
		"Total number of recommendation runs by resulting status",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	bm.generationDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockplanner_recommendation_duration_seconds",
		Description: "Duration of a recommendation run including persistence",
		Unit:        "s",
		Boundaries:  GenerationDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.forecastMAPE, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "stockplanner_forecast_mape_percent",
		Description: "Mean absolute percentage error of evaluated forecasts",
		Unit:        "%",
		Boundaries:  PercentageBuckets,
	})
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// RecordRecommendation records one recommendation run.
// status is the recommendation status, or "none" when no recommendation was needed.
func (bm *BusinessMetrics) RecordRecommendation(ctx context.Context, status string, duration time.Duration) {
	attr := AttrRecommendationStatus.String(status)
	bm.recommendationsTotal.Inc(ctx, attr)
	bm.generationDuration.RecordDuration(ctx, duration, attr)
}

// RecordForecastAccuracy records the MAPE of an evaluated forecast.
func (bm *BusinessMetrics) RecordForecastAccuracy(ctx context.Context, mape float64) {
	bm.forecastMAPE.Record(ctx, mape)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
