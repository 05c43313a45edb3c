package trade

import (
	"time"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus represents the status of an inbound delivery
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusReceived  DeliveryStatus = "received"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// Delivery is inbound stock scheduled to arrive from a supplier
type Delivery struct {
	shared.BaseEntity
	SupplierID  uuid.UUID
	Status      DeliveryStatus
	ArrivalDate time.Time
	Items       []DeliveryItem
}

// DeliveryItem is one product line of a delivery
type DeliveryItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// IsPending returns true if the delivery still counts towards future stock
func (d *Delivery) IsPending() bool {
	return d.Status == DeliveryStatusPending
}

// ProductDeliveries flattens the pending lines of the delivery for one product
func (d *Delivery) ProductDeliveries(productID uuid.UUID) []ProductDelivery {
	if !d.IsPending() {
		return nil
	}
	var result []ProductDelivery
	for _, item := range d.Items {
		if item.ProductID != productID {
			continue
		}
		result = append(result, ProductDelivery{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			ArrivalDate: d.ArrivalDate,
		})
	}
	return result
}

// ProductDelivery is a pending inbound quantity of one product on one date
type ProductDelivery struct {
	ProductID   uuid.UUID
	Quantity    decimal.Decimal
	ArrivalDate time.Time
}
