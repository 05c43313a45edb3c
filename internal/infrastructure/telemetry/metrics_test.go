package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestCounterAndHistogram(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	meter := provider.Meter("test")

	counter, err := telemetry.NewCounter(meter, "forecasts_recorded_total", "Forecasts recorded", "1")
	require.NoError(t, err)
	histogram, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:       "generation_seconds",
		Unit:       "s",
		Boundaries: telemetry.GenerationDurationBuckets,
	})
	require.NoError(t, err)

	ctx := context.Background()
	counter.Inc(ctx, telemetry.AttrRecommendationStatus.String("good"))
	counter.Inc(ctx, telemetry.AttrRecommendationStatus.String("good"))
	histogram.RecordDuration(ctx, 20*time.Millisecond)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	found := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		found[m.Name] = true
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			require.Len(t, data.DataPoints, 1)
			assert.Equal(t, int64(2), data.DataPoints[0].Value)
		case metricdata.Histogram[float64]:
			require.Len(t, data.DataPoints, 1)
			assert.Equal(t, uint64(1), data.DataPoints[0].Count)
			assert.Equal(t, telemetry.GenerationDurationBuckets, data.DataPoints[0].Bounds)
		}
	}
	assert.True(t, found["forecasts_recorded_total"])
	assert.True(t, found["generation_seconds"])
}
