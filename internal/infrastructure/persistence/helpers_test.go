package persistence

import (
	"testing"
	"time"

	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every statement sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func seedProduct(t *testing.T, db *gorm.DB, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("sku-"+uuid.NewString()[:8], "Widget", decimal.NewFromInt(stock), 0.95, catalog.ProductClassA)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(t.Context(), product))
	return product
}

func seedSupplier(t *testing.T, db *gorm.DB, leadTimeDays int) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("sup-"+uuid.NewString()[:8], "Acme", leadTimeDays)
	require.NoError(t, err)
	require.NoError(t, NewGormSupplierRepository(db).Save(t.Context(), supplier))
	return supplier
}

func newTestForecast(t *testing.T, productID uuid.UUID, days int) *replenishment.Forecast {
	t.Helper()
	entries := make([]replenishment.ForecastEntry, days)
	for i := range entries {
		entries[i] = replenishment.ForecastEntry{
			Date:      day(i),
			Yhat:      float64(10 + i),
			YhatLower: float64(8 + i),
			YhatUpper: float64(12 + i),
		}
	}
	forecast, err := replenishment.NewForecast(productID, entries, day(0))
	require.NoError(t, err)
	return forecast
}

func newTestRecommendation(productID, forecastID, supplierID uuid.UUID, createdAt time.Time) *replenishment.InventoryRecommendation {
	return replenishment.RehydrateRecommendation(
		shared.NewBaseEntityWithID(uuid.New(), createdAt),
		productID, forecastID, supplierID,
		3,
		replenishment.RecommendationStatusWarning,
		createdAt.AddDate(0, 0, 5), createdAt.AddDate(0, 0, 2),
		decimal.NewFromInt(120), decimal.NewFromInt(15),
		14,
	)
}
