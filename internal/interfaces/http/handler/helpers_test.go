package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/infrastructure/logger"
	"github.com/erp/stockplanner/internal/interfaces/http/dto"
	"github.com/erp/stockplanner/internal/interfaces/http/middleware"
	"github.com/erp/stockplanner/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockForecastUseCases struct {
	mock.Mock
}

func (m *MockForecastUseCases) RecordForecast(ctx context.Context, req replenishmentapp.RecordForecastRequest) (*replenishmentapp.ForecastResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishmentapp.ForecastResponse), args.Error(1)
}

func (m *MockForecastUseCases) GetForecast(ctx context.Context, id uuid.UUID) (*replenishmentapp.ForecastResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishmentapp.ForecastResponse), args.Error(1)
}

func (m *MockForecastUseCases) EvaluateAccuracy(ctx context.Context, forecastID uuid.UUID) (*replenishmentapp.AccuracyReportResponse, error) {
	args := m.Called(ctx, forecastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishmentapp.AccuracyReportResponse), args.Error(1)
}

type MockRecommendationUseCases struct {
	mock.Mock
}

func (m *MockRecommendationUseCases) GenerateForForecast(ctx context.Context, forecastID uuid.UUID) (*replenishmentapp.RecommendationResponse, error) {
	args := m.Called(ctx, forecastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishmentapp.RecommendationResponse), args.Error(1)
}

func (m *MockRecommendationUseCases) GetCurrentForProduct(ctx context.Context, productID uuid.UUID) (*replenishmentapp.RecommendationResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishmentapp.RecommendationResponse), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

// newTestEngine mounts the registrars under /api/v1 behind the request logger
func newTestEngine(registrars ...router.RouteRegistrar) *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(logger.GinMiddleware(zap.NewNop()))
	r := router.NewRouter(engine)
	for _, reg := range registrars {
		r.Register(reg)
	}
	r.Setup()
	return engine
}

func doRequest(t *testing.T, engine http.Handler, method, path, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(logger.RequestIDHeader, "test-request")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is %T", resp.Data)
	return data
}
