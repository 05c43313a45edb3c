package models

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryModel is the persistence model for inbound deliveries.
type DeliveryModel struct {
	BaseModel
	SupplierID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status      trade.DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ArrivalDate time.Time            `gorm:"not null"`
	Items       []DeliveryItemModel  `gorm:"foreignKey:DeliveryID"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity.
func (m *DeliveryModel) ToDomain() *trade.Delivery {
	items := make([]trade.DeliveryItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = trade.DeliveryItem{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return &trade.Delivery{
		BaseEntity:  m.BaseModel.ToDomain(),
		SupplierID:  m.SupplierID,
		Status:      m.Status,
		ArrivalDate: m.ArrivalDate,
		Items:       items,
	}
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery entity.
func DeliveryModelFromDomain(d *trade.Delivery) *DeliveryModel {
	m := &DeliveryModel{
		SupplierID:  d.SupplierID,
		Status:      d.Status,
		ArrivalDate: d.ArrivalDate,
		Items:       make([]DeliveryItemModel, len(d.Items)),
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	for i, item := range d.Items {
		m.Items[i] = DeliveryItemModel{
			ID:         item.ID,
			DeliveryID: d.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		}
	}
	return m
}

// DeliveryItemModel is one product line of a delivery.
type DeliveryItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	DeliveryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (DeliveryItemModel) TableName() string {
	return "delivery_items"
}

// SalesOrderStatusCompleted marks orders whose quantities count as realized demand
const SalesOrderStatusCompleted = "completed"

// SalesOrderModel is the slice of a sales order needed for back-testing.
type SalesOrderModel struct {
	BaseModel
	Status      string                `gorm:"type:varchar(20);not null;index"`
	CompletedAt *time.Time            `gorm:"index"`
	Items       []SalesOrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// SalesOrderItemModel is one product line of a sales order.
type SalesOrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}
