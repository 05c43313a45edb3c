package replenishment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type MockRecommendationGenerator struct {
	mock.Mock
}

func (m *MockRecommendationGenerator) GenerateForForecast(ctx context.Context, forecastID uuid.UUID) (*RecommendationResponse, error) {
	args := m.Called(ctx, forecastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RecommendationResponse), args.Error(1)
}

func forecastGeneratedEvent(t *testing.T) *replenishment.ForecastGeneratedEvent {
	t.Helper()
	f, err := replenishment.NewForecast(uuid.New(), []replenishment.ForecastEntry{{Date: testDay0, Yhat: 1}}, testDay0)
	require.NoError(t, err)
	return replenishment.NewForecastGeneratedEvent(f)
}

func TestForecastGeneratedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a recommendation for the forecast", func(t *testing.T) {
		generator := new(MockRecommendationGenerator)
		handler := NewForecastGeneratedHandler(generator, zaptest.NewLogger(t))
		event := forecastGeneratedEvent(t)
		generator.On("GenerateForForecast", mock.Anything, event.ForecastID).
			Return(&RecommendationResponse{ID: uuid.New(), Status: "warning"}, nil)

		require.NoError(t, handler.Handle(ctx, event))
		generator.AssertExpectations(t)
	})

	t.Run("no recommendation needed is not an error", func(t *testing.T) {
		generator := new(MockRecommendationGenerator)
		handler := NewForecastGeneratedHandler(generator, zaptest.NewLogger(t))
		event := forecastGeneratedEvent(t)
		generator.On("GenerateForForecast", mock.Anything, event.ForecastID).Return(nil, nil)

		assert.NoError(t, handler.Handle(ctx, event))
	})

	t.Run("propagates generation errors", func(t *testing.T) {
		generator := new(MockRecommendationGenerator)
		handler := NewForecastGeneratedHandler(generator, zaptest.NewLogger(t))
		event := forecastGeneratedEvent(t)
		generator.On("GenerateForForecast", mock.Anything, event.ForecastID).Return(nil, replenishment.ErrForecastOutOfDate)

		err := handler.Handle(ctx, event)
		assert.ErrorIs(t, err, replenishment.ErrForecastOutOfDate)
	})

	t.Run("returns error for wrong event type", func(t *testing.T) {
		handler := NewForecastGeneratedHandler(new(MockRecommendationGenerator), zaptest.NewLogger(t))
		wrong := &replenishment.RecommendationIssuedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(replenishment.EventTypeRecommendationIssued, replenishment.AggregateTypeRecommendation, uuid.New()),
		}

		err := handler.Handle(ctx, wrong)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
	})

	t.Run("subscribes to ForecastGenerated", func(t *testing.T) {
		handler := NewForecastGeneratedHandler(nil, zap.NewNop())
		assert.Equal(t, []string{replenishment.EventTypeForecastGenerated}, handler.EventTypes())
	})
}

type mockReorderNotifier struct {
	mu     sync.Mutex
	alerts []ReorderAlert
	err    error
}

func (n *mockReorderNotifier) SendReorderAlert(_ context.Context, alert ReorderAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return n.err
}

func issuedEvent(status replenishment.RecommendationStatus) *replenishment.RecommendationIssuedEvent {
	rec := replenishment.RehydrateRecommendation(
		shared.NewBaseEntityWithID(uuid.New(), testDay0), uuid.New(), uuid.New(), uuid.New(), 5,
		status, testDay0.AddDate(0, 0, 5), testDay0, decimal.NewFromInt(188), decimal.NewFromInt(8), 14,
	)
	return replenishment.NewRecommendationIssuedEvent(rec)
}

func TestRecommendationAlertHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("alerts on urgent and critical", func(t *testing.T) {
		notifier := &mockReorderNotifier{}
		handler := NewRecommendationAlertHandler(zaptest.NewLogger(t)).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, issuedEvent(replenishment.RecommendationStatusUrgent)))
		require.NoError(t, handler.Handle(ctx, issuedEvent(replenishment.RecommendationStatusCritical)))

		require.Len(t, notifier.alerts, 2)
		assert.Equal(t, "urgent", notifier.alerts[0].Status)
		assert.Equal(t, "188", notifier.alerts[0].RestockQuantity)
		assert.Equal(t, "2025-03-08", notifier.alerts[0].StockOutDate)
	})

	t.Run("ignores good and warning", func(t *testing.T) {
		notifier := &mockReorderNotifier{}
		handler := NewRecommendationAlertHandler(zaptest.NewLogger(t)).WithNotifier(notifier)

		require.NoError(t, handler.Handle(ctx, issuedEvent(replenishment.RecommendationStatusGood)))
		require.NoError(t, handler.Handle(ctx, issuedEvent(replenishment.RecommendationStatusWarning)))

		assert.Empty(t, notifier.alerts)
	})

	t.Run("notifier failure does not fail handling", func(t *testing.T) {
		notifier := &mockReorderNotifier{err: errors.New("smtp down")}
		handler := NewRecommendationAlertHandler(zaptest.NewLogger(t)).WithNotifier(notifier)

		assert.NoError(t, handler.Handle(ctx, issuedEvent(replenishment.RecommendationStatusCritical)))
	})

	t.Run("logging notifier accepts alerts", func(t *testing.T) {
		n := NewLoggingReorderAlertNotifier(zaptest.NewLogger(t))
		assert.NoError(t, n.SendReorderAlert(ctx, ReorderAlert{Status: "urgent"}))
	})
}
