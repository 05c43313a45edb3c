package handler

import (
	"context"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecommendationUseCases is what the recommendation endpoints need from the application layer
type RecommendationUseCases interface {
	GenerateForForecast(ctx context.Context, forecastID uuid.UUID) (*replenishmentapp.RecommendationResponse, error)
	GetCurrentForProduct(ctx context.Context, productID uuid.UUID) (*replenishmentapp.RecommendationResponse, error)
}

// RecommendationHandler handles inventory recommendation endpoints
type RecommendationHandler struct {
	BaseHandler
	recommendations RecommendationUseCases
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommendations RecommendationUseCases) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

// RegisterRoutes mounts the recommendation routes
func (h *RecommendationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	router.NewDomainGroup("forecast-recommendations", "/forecasts").
		POST("/:id/recommendations", h.GenerateForForecast).
		RegisterRoutes(rg)
	router.NewDomainGroup("product-recommendations", "/products").
		GET("/:product_id/recommendation", h.GetCurrentForProduct).
		RegisterRoutes(rg)
}

// GenerateForForecast runs the recommendation engine for a stored forecast
//
//	POST /forecasts/:id/recommendations
func (h *RecommendationHandler) GenerateForForecast(c *gin.Context) {
	id, ok := h.bindID(c, "id")
	if !ok {
		return
	}

	rec, err := h.recommendations.GenerateForForecast(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// GetCurrentForProduct returns the product's most recent recommendation
//
//	GET /products/:product_id/recommendation
func (h *RecommendationHandler) GetCurrentForProduct(c *gin.Context) {
	productID, ok := h.bindID(c, "product_id")
	if !ok {
		return
	}

	rec, err := h.recommendations.GetCurrentForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}
