package persistence

import (
	"context"
	"errors"

	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindDefaultSupplier returns the supplier flagged as default for the product
func (r *GormSupplierRepository) FindDefaultSupplier(ctx context.Context, productID uuid.UUID) (*partner.Supplier, error) {
	var model models.SupplierModel
	err := r.db.WithContext(ctx).
		Joins("JOIN product_suppliers ps ON ps.supplier_id = suppliers.id").
		Where("ps.product_id = ? AND ps.is_default = ?", productID, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, partner.ErrSupplierMissingForRecommendations
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(models.SupplierModelFromDomain(supplier)).Error
}

// LinkProduct links a supplier to a product. Flagging it as default clears
// the flag on the product's other links.
func (r *GormSupplierRepository) LinkProduct(ctx context.Context, link partner.ProductSupplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if link.IsDefault {
			if err := tx.Model(&models.ProductSupplierModel{}).
				Where("product_id = ? AND supplier_id <> ?", link.ProductID, link.SupplierID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&models.ProductSupplierModel{
			ProductID:  link.ProductID,
			SupplierID: link.SupplierID,
			IsDefault:  link.IsDefault,
		}).Error
	})
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
