package replenishment

import (
	"context"
	"sync"
	"time"

	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Transaction(ctx context.Context, level IsolationLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Save(ctx context.Context, aggregate shared.AggregateRoot) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUnitOfWork) Repositories() (Repositories, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Repositories), args.Error(1)
}

// MockForecastRepository is a mock implementation of replenishment.ForecastRepository
type MockForecastRepository struct {
	mock.Mock
}

func (m *MockForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*replenishment.Forecast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishment.Forecast), args.Error(1)
}

// MockRecommendationRepository is a mock implementation of replenishment.RecommendationRepository
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) FindByID(ctx context.Context, id uuid.UUID) (*replenishment.InventoryRecommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishment.InventoryRecommendation), args.Error(1)
}

func (m *MockRecommendationRepository) FindCurrentByProduct(ctx context.Context, productID uuid.UUID) (*replenishment.InventoryRecommendation, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*replenishment.InventoryRecommendation), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindDefaultSupplier(ctx context.Context, productID uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

// MockDeliveryRepository is a mock implementation of trade.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindProductDeliveries(ctx context.Context, productID uuid.UUID) ([]trade.ProductDelivery, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.ProductDelivery), args.Error(1)
}

// MockSalesQuery is a mock implementation of trade.SalesQuery
type MockSalesQuery struct {
	mock.Mock
}

func (m *MockSalesQuery) DailyCompletedSales(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]trade.DailySales, error) {
	args := m.Called(ctx, productID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.DailySales), args.Error(1)
}

// mockRepositories bundles the mocks behind the Repositories port
type mockRepositories struct {
	forecasts       *MockForecastRepository
	recommendations *MockRecommendationRepository
	products        *MockProductRepository
	suppliers       *MockSupplierRepository
	deliveries      *MockDeliveryRepository
	sales           *MockSalesQuery
}

func newMockRepositories() *mockRepositories {
	return &mockRepositories{
		forecasts:       new(MockForecastRepository),
		recommendations: new(MockRecommendationRepository),
		products:        new(MockProductRepository),
		suppliers:       new(MockSupplierRepository),
		deliveries:      new(MockDeliveryRepository),
		sales:           new(MockSalesQuery),
	}
}

func (r *mockRepositories) Forecasts() replenishment.ForecastRepository { return r.forecasts }
func (r *mockRepositories) Recommendations() replenishment.RecommendationRepository {
	return r.recommendations
}
func (r *mockRepositories) Products() catalog.ProductRepository { return r.products }
func (r *mockRepositories) Suppliers() partner.SupplierRepository { return r.suppliers }
func (r *mockRepositories) Deliveries() trade.DeliveryRepository { return r.deliveries }
func (r *mockRepositories) Sales() trade.SalesQuery { return r.sales }

func (r *mockRepositories) assertExpectations(t mock.TestingT) {
	r.forecasts.AssertExpectations(t)
	r.recommendations.AssertExpectations(t)
	r.products.AssertExpectations(t)
	r.suppliers.AssertExpectations(t)
	r.deliveries.AssertExpectations(t)
	r.sales.AssertExpectations(t)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// expectCommittedTransaction wires a unit of work that opens, hands out repos and commits
func expectCommittedTransaction(uow *MockUnitOfWork, repos Repositories, level IsolationLevel) {
	uow.On("Transaction", mock.Anything, level).Return(nil).Once()
	uow.On("Repositories").Return(repos, nil).Once()
	uow.On("Commit").Return(nil).Once()
}

// expectRolledBackTransaction wires a unit of work whose work function fails
func expectRolledBackTransaction(uow *MockUnitOfWork, repos Repositories, level IsolationLevel) {
	uow.On("Transaction", mock.Anything, level).Return(nil).Once()
	uow.On("Repositories").Return(repos, nil).Once()
	uow.On("Rollback").Return(nil).Once()
}
