package models

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ForecastModel is the persistence model for the Forecast aggregate.
// Accuracy columns are meaningful only when EvaluatedAt is set.
type ForecastModel struct {
	BaseModel
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	GeneratedAt  time.Time `gorm:"not null"`
	AccuracyMAE  float64   `gorm:"not null;default:0"`
	AccuracyMAPE float64   `gorm:"not null;default:0"`
	AccuracyRMSE float64   `gorm:"not null;default:0"`
	AccuracyDays int       `gorm:"not null;default:0"`
	EvaluatedAt  *time.Time
	Entries      []ForecastEntryModel `gorm:"foreignKey:ForecastID"`
}

// TableName returns the table name for GORM
func (ForecastModel) TableName() string {
	return "forecasts"
}

// ToDomain converts the persistence model to a domain Forecast aggregate.
func (m *ForecastModel) ToDomain() *replenishment.Forecast {
	entries := make([]replenishment.ForecastEntry, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = e.ToDomain()
	}

	var accuracy *replenishment.AccuracySummary
	if m.EvaluatedAt != nil {
		accuracy = &replenishment.AccuracySummary{
			MAE:         m.AccuracyMAE,
			MAPE:        m.AccuracyMAPE,
			RMSE:        m.AccuracyRMSE,
			Days:        m.AccuracyDays,
			EvaluatedAt: *m.EvaluatedAt,
		}
	}

	return replenishment.RehydrateForecast(m.BaseModel.ToDomain(), m.ProductID, m.GeneratedAt, entries, accuracy)
}

// FromDomain populates the persistence model from a domain Forecast, entries included.
func (m *ForecastModel) FromDomain(f *replenishment.Forecast) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ProductID = f.ProductID
	m.GeneratedAt = f.GeneratedAt
	m.EvaluatedAt = nil
	m.AccuracyMAE, m.AccuracyMAPE, m.AccuracyRMSE, m.AccuracyDays = 0, 0, 0, 0
	if a := f.Accuracy; a != nil {
		evaluatedAt := a.EvaluatedAt
		m.AccuracyMAE = a.MAE
		m.AccuracyMAPE = a.MAPE
		m.AccuracyRMSE = a.RMSE
		m.AccuracyDays = a.Days
		m.EvaluatedAt = &evaluatedAt
	}

	entries := f.Entries()
	m.Entries = make([]ForecastEntryModel, len(entries))
	for i, e := range entries {
		m.Entries[i] = ForecastEntryModel{
			ID:         uuid.New(),
			ForecastID: f.ID,
			Date:       e.Date,
			Yhat:       e.Yhat,
			YhatLower:  e.YhatLower,
			YhatUpper:  e.YhatUpper,
		}
	}
}

// ForecastModelFromDomain creates a new persistence model from a domain Forecast.
func ForecastModelFromDomain(f *replenishment.Forecast) *ForecastModel {
	m := &ForecastModel{}
	m.FromDomain(f)
	return m
}

// ForecastEntryModel is one forecast day.
type ForecastEntryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ForecastID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_forecast_entry_day,priority:1"`
	Date       time.Time `gorm:"not null;uniqueIndex:idx_forecast_entry_day,priority:2"`
	Yhat       float64   `gorm:"not null"`
	YhatLower  float64   `gorm:"not null"`
	YhatUpper  float64   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ForecastEntryModel) TableName() string {
	return "forecast_entries"
}

// ToDomain converts the entry to its domain value
func (m ForecastEntryModel) ToDomain() replenishment.ForecastEntry {
	return replenishment.ForecastEntry{
		Date:      m.Date,
		Yhat:      m.Yhat,
		YhatLower: m.YhatLower,
		YhatUpper: m.YhatUpper,
	}
}

// RecommendationModel is the persistence model for InventoryRecommendation.
type RecommendationModel struct {
	BaseModel
	ProductID       uuid.UUID                          `gorm:"type:uuid;not null;index"`
	ForecastID      uuid.UUID                          `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID                          `gorm:"type:uuid;not null"`
	LeadTimeDays    int                                `gorm:"not null"`
	Status          replenishment.RecommendationStatus `gorm:"type:varchar(20);not null"`
	StockOutDate    time.Time                          `gorm:"not null"`
	RestockDate     time.Time                          `gorm:"not null"`
	RestockQuantity decimal.Decimal                    `gorm:"type:decimal(18,4);not null"`
	SafetyStock     decimal.Decimal                    `gorm:"type:decimal(18,4);not null"`
	CoverageDays    int                                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecommendationModel) TableName() string {
	return "inventory_recommendations"
}

// ToDomain converts the persistence model to a domain InventoryRecommendation.
func (m *RecommendationModel) ToDomain() *replenishment.InventoryRecommendation {
	return replenishment.RehydrateRecommendation(
		m.BaseModel.ToDomain(),
		m.ProductID, m.ForecastID, m.SupplierID,
		m.LeadTimeDays,
		m.Status,
		m.StockOutDate, m.RestockDate,
		m.RestockQuantity, m.SafetyStock,
		m.CoverageDays,
	)
}

// RecommendationModelFromDomain creates a new persistence model from a domain InventoryRecommendation.
func RecommendationModelFromDomain(r *replenishment.InventoryRecommendation) *RecommendationModel {
	m := &RecommendationModel{
		ProductID:       r.ProductID,
		ForecastID:      r.ForecastID,
		SupplierID:      r.SupplierID,
		LeadTimeDays:    r.LeadTimeDays,
		Status:          r.Status,
		StockOutDate:    r.StockOutDate,
		RestockDate:     r.RestockDate,
		RestockQuantity: r.RestockQuantity,
		SafetyStock:     r.SafetyStock,
		CoverageDays:    r.CoverageDays,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
