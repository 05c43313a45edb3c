package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryRepository is the read port for pending inbound deliveries
type DeliveryRepository interface {
	// FindProductDeliveries returns pending delivery lines for a product, ordered by arrival date
	FindProductDeliveries(ctx context.Context, productID uuid.UUID) ([]ProductDelivery, error)
}

// DailySales is the summed completed-sale quantity of a product on one day
type DailySales struct {
	Date     time.Time
	Quantity decimal.Decimal
}

// SalesQuery reads realized sales for back-testing forecasts
type SalesQuery interface {
	// DailyCompletedSales returns one row per day with completed sales in [from, to]
	DailyCompletedSales(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]DailySales, error)
}
