package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesQuery implements SalesQuery over completed sales orders
type GormSalesQuery struct {
	db *gorm.DB
}

// NewGormSalesQuery creates a new GormSalesQuery
func NewGormSalesQuery(db *gorm.DB) *GormSalesQuery {
	return &GormSalesQuery{db: db}
}

type completedSaleRow struct {
	CompletedAt time.Time
	Quantity    decimal.Decimal
}

// DailyCompletedSales sums completed quantities per UTC day in [from, to].
// Both bounds are whole days; to includes its entire day.
func (q *GormSalesQuery) DailyCompletedSales(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]trade.DailySales, error) {
	start := truncateDay(from)
	end := truncateDay(to).AddDate(0, 0, 1)

	var rows []completedSaleRow
	err := q.db.WithContext(ctx).
		Table("sales_order_items soi").
		Select("so.completed_at, soi.quantity").
		Joins("JOIN sales_orders so ON so.id = soi.order_id").
		Where("soi.product_id = ? AND so.status = ?", productID, models.SalesOrderStatusCompleted).
		Where("so.completed_at >= ? AND so.completed_at < ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[time.Time]decimal.Decimal)
	for _, row := range rows {
		day := truncateDay(row.CompletedAt)
		byDay[day] = byDay[day].Add(row.Quantity)
	}

	result := make([]trade.DailySales, 0, len(byDay))
	for day, qty := range byDay {
		result = append(result, trade.DailySales{Date: day, Quantity: qty})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ trade.SalesQuery = (*GormSalesQuery)(nil)
