package persistence

import (
	"context"
	"fmt"

	replenishmentapp "github.com/erp/stockplanner/internal/application/replenishment"
	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/domain/trade"
	"github.com/erp/stockplanner/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUnitOfWork implements the unit of work on a GORM transaction.
// It is request scoped; create one per operation through NewGormUnitOfWorkFactory.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	dispatch *RepositoryDispatch
	logger   *zap.Logger
}

// NewGormUnitOfWork creates an idle unit of work
func NewGormUnitOfWork(db *gorm.DB, dispatch *RepositoryDispatch, logger *zap.Logger) *GormUnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWork{db: db, dispatch: dispatch, logger: logger}
}

// NewGormUnitOfWorkFactory returns a factory producing a fresh unit of work per call
func NewGormUnitOfWorkFactory(db *gorm.DB, dispatch *RepositoryDispatch, logger *zap.Logger) replenishmentapp.UnitOfWorkFactory {
	return func() replenishmentapp.UnitOfWork {
		return NewGormUnitOfWork(db, dispatch, logger)
	}
}

// Transaction opens a transaction at the requested isolation level
func (u *GormUnitOfWork) Transaction(ctx context.Context, level replenishmentapp.IsolationLevel) error {
	if u.tx != nil {
		return replenishmentapp.ErrTransactionAlreadyStarted
	}

	tx := u.db.WithContext(ctx).Begin(level.TxOptions())
	if tx.Error != nil {
		return fmt.Errorf("begin transaction (%s): %w", level, tx.Error)
	}
	u.tx = tx
	u.logger.Debug("Transaction started", zap.Stringer("isolation", level))
	return nil
}

// Commit commits the open transaction; the unit of work is idle afterwards either way
func (u *GormUnitOfWork) Commit() error {
	if u.tx == nil {
		return replenishmentapp.ErrNoTransactionInProgress
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the open transaction
func (u *GormUnitOfWork) Rollback() error {
	if u.tx == nil {
		return replenishmentapp.ErrNoTransactionInProgress
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	return nil
}

// Save flushes the aggregate's ledger into the open transaction in ledger order.
// The first failing write aborts the flush and leaves the ledger untouched.
func (u *GormUnitOfWork) Save(ctx context.Context, aggregate shared.AggregateRoot) error {
	if u.tx == nil {
		return replenishmentapp.ErrTransactionNotInitialized
	}

	changes := aggregate.GetTrackedEntities()
	ctx, span := telemetry.StartSpan(ctx, "uow.save",
		telemetry.WithAttribute("aggregate_id", aggregate.GetID().String()),
		telemetry.WithAttribute("change_count", len(changes)),
	)
	defer span.End()

	tx := u.tx.WithContext(ctx)
	for _, change := range changes {
		if err := u.dispatch.Apply(ctx, tx, change); err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("save %s %T %s: %w", change.Action, change.Entity, change.Entity.GetID(), err)
		}
	}

	aggregate.ClearTrackedEntities()
	return nil
}

// Repositories returns read ports bound to the open transaction
func (u *GormUnitOfWork) Repositories() (replenishmentapp.Repositories, error) {
	if u.tx == nil {
		return nil, replenishmentapp.ErrTransactionNotInitialized
	}
	return &txRepositories{tx: u.tx}, nil
}

var _ replenishmentapp.UnitOfWork = (*GormUnitOfWork)(nil)

type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Forecasts() replenishment.ForecastRepository {
	return NewGormForecastRepository(r.tx)
}

func (r *txRepositories) Recommendations() replenishment.RecommendationRepository {
	return NewGormRecommendationRepository(r.tx)
}

func (r *txRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *txRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx)
}

func (r *txRepositories) Deliveries() trade.DeliveryRepository {
	return NewGormDeliveryRepository(r.tx)
}

func (r *txRepositories) Sales() trade.SalesQuery {
	return NewGormSalesQuery(r.tx)
}
