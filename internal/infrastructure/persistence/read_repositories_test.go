package persistence

import (
	"testing"
	"time"

	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/erp/stockplanner/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	product := seedProduct(t, db, 42)

	loaded, err := repo.FindByID(t.Context(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Code, loaded.Code)
	assert.True(t, loaded.Stock.Equal(decimal.NewFromInt(42)))
	assert.Equal(t, catalog.ProductClassA, loaded.Classification)

	_, err = repo.FindByID(t.Context(), uuid.New())
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGormSupplierRepository_FindDefaultSupplier(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	product := seedProduct(t, db, 10)
	first := seedSupplier(t, db, 7)
	second := seedSupplier(t, db, 3)

	t.Run("no links", func(t *testing.T) {
		_, err := repo.FindDefaultSupplier(t.Context(), product.ID)
		assert.ErrorIs(t, err, partner.ErrSupplierMissingForRecommendations)
	})

	t.Run("links without default", func(t *testing.T) {
		require.NoError(t, repo.LinkProduct(t.Context(), partner.ProductSupplier{ProductID: product.ID, SupplierID: first.ID}))

		_, err := repo.FindDefaultSupplier(t.Context(), product.ID)
		assert.ErrorIs(t, err, partner.ErrSupplierMissingForRecommendations)
	})

	t.Run("default link wins and moves", func(t *testing.T) {
		require.NoError(t, repo.LinkProduct(t.Context(), partner.ProductSupplier{ProductID: product.ID, SupplierID: first.ID, IsDefault: true}))
		got, err := repo.FindDefaultSupplier(t.Context(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, 7, got.LeadTimeDays)

		require.NoError(t, repo.LinkProduct(t.Context(), partner.ProductSupplier{ProductID: product.ID, SupplierID: second.ID, IsDefault: true}))
		got, err = repo.FindDefaultSupplier(t.Context(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
	})
}

func TestGormDeliveryRepository_FindProductDeliveries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDeliveryRepository(db)
	productID := uuid.New()
	otherID := uuid.New()

	delivery := func(status trade.DeliveryStatus, arrival time.Time, lines ...trade.DeliveryItem) *trade.Delivery {
		d := &trade.Delivery{
			BaseEntity:  shared.NewBaseEntityWithID(uuid.New(), arrival),
			SupplierID:  uuid.New(),
			Status:      status,
			ArrivalDate: arrival,
			Items:       lines,
		}
		require.NoError(t, repo.Create(t.Context(), d))
		return d
	}
	line := func(p uuid.UUID, qty int64) trade.DeliveryItem {
		return trade.DeliveryItem{ID: uuid.New(), ProductID: p, Quantity: decimal.NewFromInt(qty)}
	}

	delivery(trade.DeliveryStatusPending, day(5), line(productID, 30), line(otherID, 99))
	delivery(trade.DeliveryStatusPending, day(2), line(productID, 20))
	delivery(trade.DeliveryStatusReceived, day(1), line(productID, 500))
	delivery(trade.DeliveryStatusCancelled, day(3), line(productID, 700))

	got, err := repo.FindProductDeliveries(t.Context(), productID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].ArrivalDate.Equal(day(2)))
	assert.True(t, got[0].Quantity.Equal(decimal.NewFromInt(20)))
	assert.True(t, got[1].ArrivalDate.Equal(day(5)))
	assert.True(t, got[1].Quantity.Equal(decimal.NewFromInt(30)))
	for _, d := range got {
		assert.Equal(t, productID, d.ProductID)
	}
}

func TestGormSalesQuery_DailyCompletedSales(t *testing.T) {
	db := setupTestDB(t)
	productID := uuid.New()

	order := func(status string, completedAt *time.Time, qty int64, p uuid.UUID) {
		orderID := uuid.New()
		m := &models.SalesOrderModel{
			Status:      status,
			CompletedAt: completedAt,
			Items: []models.SalesOrderItemModel{
				{ID: uuid.New(), OrderID: orderID, ProductID: p, Quantity: decimal.NewFromInt(qty)},
			},
		}
		m.ID = orderID
		m.CreatedAt = day(0)
		m.UpdatedAt = day(0)
		require.NoError(t, db.Create(m).Error)
	}
	at := func(ts time.Time) *time.Time { return &ts }

	order(models.SalesOrderStatusCompleted, at(day(1).Add(9*time.Hour)), 4, productID)
	order(models.SalesOrderStatusCompleted, at(day(1).Add(17*time.Hour)), 6, productID)
	order(models.SalesOrderStatusCompleted, at(day(3).Add(23*time.Hour+59*time.Minute)), 5, productID)
	order(models.SalesOrderStatusCompleted, at(day(4).Add(time.Hour)), 50, productID)
	order(models.SalesOrderStatusCompleted, at(day(1)), 70, uuid.New())
	order("pending", nil, 80, productID)
	order("cancelled", at(day(2)), 90, productID)

	got, err := NewGormSalesQuery(db).DailyCompletedSales(t.Context(), productID, day(1), day(3))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Equal(day(1)))
	assert.True(t, got[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, got[1].Date.Equal(day(3)))
	assert.True(t, got[1].Quantity.Equal(decimal.NewFromInt(5)))
}
