package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormForecastRepository implements the forecast read port and write store using GORM
type GormForecastRepository struct {
	db *gorm.DB
}

// NewGormForecastRepository creates a new GormForecastRepository
func NewGormForecastRepository(db *gorm.DB) *GormForecastRepository {
	return &GormForecastRepository{db: db}
}

// FindByID finds a forecast by its ID with entries ordered by date
func (r *GormForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*replenishment.Forecast, error) {
	var model models.ForecastModel
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenishment.ErrForecastNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts the forecast and its entries
func (r *GormForecastRepository) Create(ctx context.Context, forecast *replenishment.Forecast) error {
	model := models.ForecastModelFromDomain(forecast)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists the accuracy summary. Entries are immutable once generated.
func (r *GormForecastRepository) Update(ctx context.Context, forecast *replenishment.Forecast) error {
	model := models.ForecastModelFromDomain(forecast)
	result := r.db.WithContext(ctx).
		Model(&models.ForecastModel{}).
		Where("id = ?", forecast.ID).
		Updates(map[string]any{
			"accuracy_mae":  model.AccuracyMAE,
			"accuracy_mape": model.AccuracyMAPE,
			"accuracy_rmse": model.AccuracyRMSE,
			"accuracy_days": model.AccuracyDays,
			"evaluated_at":  model.EvaluatedAt,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return replenishment.ErrForecastNotFound
	}
	return nil
}

// Delete removes the forecast and its entries
func (r *GormForecastRepository) Delete(ctx context.Context, forecast *replenishment.Forecast) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("forecast_id = ?", forecast.ID).Delete(&models.ForecastEntryModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.ForecastModel{}, "id = ?", forecast.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return replenishment.ErrForecastNotFound
	}
	return nil
}

var (
	_ replenishment.ForecastRepository = (*GormForecastRepository)(nil)
	_ replenishment.ForecastStore      = (*GormForecastRepository)(nil)
)
