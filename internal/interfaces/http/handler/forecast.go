package handler

import (
	"context"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ForecastUseCases is what the forecast endpoints need from the application layer
type ForecastUseCases interface {
	RecordForecast(ctx context.Context, req replenishmentapp.RecordForecastRequest) (*replenishmentapp.ForecastResponse, error)
	GetForecast(ctx context.Context, id uuid.UUID) (*replenishmentapp.ForecastResponse, error)
	EvaluateAccuracy(ctx context.Context, forecastID uuid.UUID) (*replenishmentapp.AccuracyReportResponse, error)
}

// ForecastHandler handles forecast endpoints
type ForecastHandler struct {
	BaseHandler
	forecasts ForecastUseCases
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecasts ForecastUseCases) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

// RegisterRoutes mounts the forecast routes under /forecasts
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("forecasts", "/forecasts").
		POST("", h.RecordForecast).
		GET("/:id", h.GetForecast).
		POST("/:id/accuracy", h.EvaluateAccuracy).
		RegisterRoutes(rg)
}

// RecordForecast stores a forecast delivered by the forecasting service
//
//	POST /forecasts
func (h *ForecastHandler) RecordForecast(c *gin.Context) {
	var req replenishmentapp.RecordForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	forecast, err := h.forecasts.RecordForecast(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, forecast)
}

// GetForecast returns a stored forecast with its entries
//
//	GET /forecasts/:id
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	id, ok := h.bindID(c, "id")
	if !ok {
		return
	}

	forecast, err := h.forecasts.GetForecast(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, forecast)
}

// EvaluateAccuracy back-tests the forecast against completed sales
//
//	POST /forecasts/:id/accuracy
func (h *ForecastHandler) EvaluateAccuracy(c *gin.Context) {
	id, ok := h.bindID(c, "id")
	if !ok {
		return
	}

	report, err := h.forecasts.EvaluateAccuracy(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
