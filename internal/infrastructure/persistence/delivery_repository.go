package persistence

import (
	"context"
	"time"

	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

type productDeliveryRow struct {
	ProductID   uuid.UUID
	Quantity    decimal.Decimal
	ArrivalDate time.Time
}

// FindProductDeliveries returns the pending lines for one product ordered by arrival date
func (r *GormDeliveryRepository) FindProductDeliveries(ctx context.Context, productID uuid.UUID) ([]trade.ProductDelivery, error) {
	var rows []productDeliveryRow
	err := r.db.WithContext(ctx).
		Table("delivery_items di").
		Select("di.product_id, di.quantity, d.arrival_date").
		Joins("JOIN deliveries d ON d.id = di.delivery_id").
		Where("di.product_id = ? AND d.status = ?", productID, trade.DeliveryStatusPending).
		Order("d.arrival_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]trade.ProductDelivery, len(rows))
	for i, row := range rows {
		result[i] = trade.ProductDelivery{
			ProductID:   row.ProductID,
			Quantity:    row.Quantity,
			ArrivalDate: row.ArrivalDate,
		}
	}
	return result, nil
}

// Create inserts a delivery with its items
func (r *GormDeliveryRepository) Create(ctx context.Context, delivery *trade.Delivery) error {
	return r.db.WithContext(ctx).Create(models.DeliveryModelFromDomain(delivery)).Error
}

var _ trade.DeliveryRepository = (*GormDeliveryRepository)(nil)
