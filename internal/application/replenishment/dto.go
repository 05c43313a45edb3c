package replenishment

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastEntryInput is one forecast day as delivered by the forecasting service
type ForecastEntryInput struct {
	Date      time.Time `json:"date" binding:"required"`
	Yhat      float64   `json:"yhat"`
	YhatLower float64   `json:"yhat_lower"`
	YhatUpper float64   `json:"yhat_upper"`
}

// RecordForecastRequest stores a freshly fitted forecast
type RecordForecastRequest struct {
	ProductID   uuid.UUID            `json:"product_id" binding:"required"`
	GeneratedAt *time.Time           `json:"generated_at"`
	Entries     []ForecastEntryInput `json:"entries" binding:"required,min=1,dive"`
}

// ForecastEntryResponse represents a forecast entry in API responses
type ForecastEntryResponse struct {
	Date      time.Time `json:"date"`
	Yhat      float64   `json:"yhat"`
	YhatLower float64   `json:"yhat_lower"`
	YhatUpper float64   `json:"yhat_upper"`
}

// AccuracySummaryResponse represents the last back-test of a forecast
type AccuracySummaryResponse struct {
	MAE         float64   `json:"mae"`
	MAPE        float64   `json:"mape"`
	RMSE        float64   `json:"rmse"`
	Days        int       `json:"days"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// ForecastResponse represents a forecast in API responses
type ForecastResponse struct {
	ID          uuid.UUID                `json:"id"`
	ProductID   uuid.UUID                `json:"product_id"`
	GeneratedAt time.Time                `json:"generated_at"`
	Entries     []ForecastEntryResponse  `json:"entries"`
	Accuracy    *AccuracySummaryResponse `json:"accuracy,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// RecommendationResponse represents an inventory recommendation in API responses
type RecommendationResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ForecastID      uuid.UUID       `json:"forecast_id"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	LeadTimeDays    int             `json:"lead_time_days"`
	Status          string          `json:"status"`
	StockOutDate    time.Time       `json:"stock_out_date"`
	RestockDate     time.Time       `json:"restock_date"`
	RestockQuantity decimal.Decimal `json:"restock_quantity"`
	SafetyStock     decimal.Decimal `json:"safety_stock"`
	CoverageDays    int             `json:"coverage_days"`
	CreatedAt       time.Time       `json:"created_at"`
}

// DailyAccuracyResponse is one day of an accuracy report
type DailyAccuracyResponse struct {
	Date            time.Time `json:"date"`
	Actual          float64   `json:"actual"`
	Forecast        float64   `json:"forecast"`
	AbsoluteError   float64   `json:"absolute_error"`
	SquaredError    float64   `json:"squared_error"`
	PercentageError float64   `json:"percentage_error"`
}

// AccuracyReportResponse represents a forecast back-test
type AccuracyReportResponse struct {
	ForecastID uuid.UUID               `json:"forecast_id"`
	MAE        float64                 `json:"mae"`
	MAPE       float64                 `json:"mape"`
	RMSE       float64                 `json:"rmse"`
	Days       []DailyAccuracyResponse `json:"days"`
}

// ToForecastResponse converts the domain forecast
func ToForecastResponse(f *replenishment.Forecast) ForecastResponse {
	entries := f.Entries()
	resp := ForecastResponse{
		ID:          f.ID,
		ProductID:   f.ProductID,
		GeneratedAt: f.GeneratedAt,
		Entries:     make([]ForecastEntryResponse, 0, len(entries)),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ForecastEntryResponse(e))
	}
	if f.Accuracy != nil {
		acc := AccuracySummaryResponse(*f.Accuracy)
		resp.Accuracy = &acc
	}
	return resp
}

// ToRecommendationResponse converts the domain recommendation
func ToRecommendationResponse(r *replenishment.InventoryRecommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		ForecastID:      r.ForecastID,
		SupplierID:      r.SupplierID,
		LeadTimeDays:    r.LeadTimeDays,
		Status:          string(r.Status),
		StockOutDate:    r.StockOutDate,
		RestockDate:     r.RestockDate,
		RestockQuantity: r.RestockQuantity,
		SafetyStock:     r.SafetyStock,
		CoverageDays:    r.CoverageDays,
		CreatedAt:       r.CreatedAt,
	}
}

// ToAccuracyReportResponse converts an accuracy report
func ToAccuracyReportResponse(forecastID uuid.UUID, report *replenishment.AccuracyReport) AccuracyReportResponse {
	resp := AccuracyReportResponse{
		ForecastID: forecastID,
		MAE:        report.MAE,
		MAPE:       report.MAPE,
		RMSE:       report.RMSE,
		Days:       make([]DailyAccuracyResponse, 0, len(report.Days)),
	}
	for _, d := range report.Days {
		resp.Days = append(resp.Days, DailyAccuracyResponse(d))
	}
	return resp
}

func toForecastEntries(inputs []ForecastEntryInput) []replenishment.ForecastEntry {
	entries := make([]replenishment.ForecastEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, replenishment.ForecastEntry(in))
	}
	return entries
}
