package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecommendationRepository implements the recommendation read port and write store using GORM
type GormRecommendationRepository struct {
	db *gorm.DB
}

// NewGormRecommendationRepository creates a new GormRecommendationRepository
func NewGormRecommendationRepository(db *gorm.DB) *GormRecommendationRepository {
	return &GormRecommendationRepository{db: db}
}

// FindByID finds a recommendation by its ID
func (r *GormRecommendationRepository) FindByID(ctx context.Context, id uuid.UUID) (*replenishment.InventoryRecommendation, error) {
	var model models.RecommendationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenishment.ErrRecommendationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCurrentByProduct returns the most recently created recommendation of a product
func (r *GormRecommendationRepository) FindCurrentByProduct(ctx context.Context, productID uuid.UUID) (*replenishment.InventoryRecommendation, error) {
	var model models.RecommendationModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, replenishment.ErrRecommendationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts a recommendation
func (r *GormRecommendationRepository) Create(ctx context.Context, rec *replenishment.InventoryRecommendation) error {
	return r.db.WithContext(ctx).Create(models.RecommendationModelFromDomain(rec)).Error
}

// Update overwrites every column of an existing recommendation
func (r *GormRecommendationRepository) Update(ctx context.Context, rec *replenishment.InventoryRecommendation) error {
	model := models.RecommendationModelFromDomain(rec)
	result := r.db.WithContext(ctx).
		Model(&models.RecommendationModel{}).
		Where("id = ?", rec.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return replenishment.ErrRecommendationNotFound
	}
	return nil
}

// Delete removes a recommendation
func (r *GormRecommendationRepository) Delete(ctx context.Context, rec *replenishment.InventoryRecommendation) error {
	result := r.db.WithContext(ctx).Delete(&models.RecommendationModel{}, "id = ?", rec.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return replenishment.ErrRecommendationNotFound
	}
	return nil
}

var (
	_ replenishment.RecommendationRepository = (*GormRecommendationRepository)(nil)
	_ replenishment.RecommendationStore      = (*GormRecommendationRepository)(nil)
)
