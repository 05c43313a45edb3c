package event

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingGenerator struct {
	calls atomic.Int32
}

func (g *countingGenerator) GenerateForForecast(_ context.Context, _ uuid.UUID) (*replenishmentapp.RecommendationResponse, error) {
	g.calls.Add(1)
	return nil, nil
}

func TestRegisterReplenishmentHandlers(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	bus := NewInMemoryEventBus(logger)
	require.NoError(t, bus.Start(ctx))

	generator := &countingGenerator{}
	metrics := &IdempotencyMetrics{}
	RegisterReplenishmentHandlers(bus,
		ReplenishmentHandlers{
			ForecastGenerated: replenishmentapp.NewForecastGeneratedHandler(generator, logger),
			Alerts:            replenishmentapp.NewRecommendationAlertHandler(logger),
		},
		newMemoryStore(t),
		shared.IdempotencyConfig{Enabled: true, TTL: time.Hour},
		metrics,
		logger,
	)

	forecast, err := replenishment.NewForecast(uuid.New(), []replenishment.ForecastEntry{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Yhat: 5, YhatLower: 4, YhatUpper: 6},
	}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	events := forecast.GetDomainEvents()
	require.Len(t, events, 1)

	require.NoError(t, bus.Publish(ctx, events[0]))
	require.NoError(t, bus.Publish(ctx, events[0]))

	assert.Equal(t, int32(1), generator.calls.Load())
	assert.Equal(t, IdempotencyStats{Processed: 1, Duplicate: 1}, metrics.Stats())
	assert.Len(t, bus.registry.GetHandlers(replenishment.EventTypeRecommendationIssued), 1)
}
