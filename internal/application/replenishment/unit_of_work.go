package replenishment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/erp/stockplanner/internal/domain/trade"
)

// Unit of work lifecycle errors. They signal programming mistakes, not business conditions.
var (
	ErrTransactionAlreadyStarted = errors.New("unit of work: transaction already started")
	ErrNoTransactionInProgress   = errors.New("unit of work: no transaction in progress")
	ErrTransactionNotInitialized = errors.New("unit of work: transaction not initialized")
)

// IsolationLevel is the transaction isolation requested by a use case
type IsolationLevel int

const (
	// IsolationDefault leaves the choice to the database driver
	IsolationDefault IsolationLevel = iota
	IsolationReadCommitted
	IsolationRepeatableRead
	IsolationSerializable
)

// String returns the configuration name of the level
func (l IsolationLevel) String() string {
	switch l {
	case IsolationReadCommitted:
		return "read_committed"
	case IsolationRepeatableRead:
		return "repeatable_read"
	case IsolationSerializable:
		return "serializable"
	default:
		return "default"
	}
}

// TxOptions maps the level onto database/sql options
func (l IsolationLevel) TxOptions() *sql.TxOptions {
	switch l {
	case IsolationReadCommitted:
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	case IsolationRepeatableRead:
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	case IsolationSerializable:
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	default:
		return &sql.TxOptions{Isolation: sql.LevelDefault}
	}
}

// ParseIsolationLevel parses a configuration value such as "repeatable_read"
func ParseIsolationLevel(value string) (IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(value, "-", "_"))) {
	case "", "default":
		return IsolationDefault, nil
	case "read_committed":
		return IsolationReadCommitted, nil
	case "repeatable_read":
		return IsolationRepeatableRead, nil
	case "serializable":
		return IsolationSerializable, nil
	default:
		return IsolationDefault, fmt.Errorf("unknown isolation level %q", value)
	}
}

// Repositories gives access to every port a replenishment use case reads through.
// All of them share the open transaction of the unit of work that returned them.
type Repositories interface {
	Forecasts() replenishment.ForecastRepository
	Recommendations() replenishment.RecommendationRepository
	Products() catalog.ProductRepository
	Suppliers() partner.SupplierRepository
	Deliveries() trade.DeliveryRepository
	Sales() trade.SalesQuery
}

// UnitOfWork owns at most one open transaction and flushes aggregate ledgers into it.
//
// Lifecycle: Idle -> Transaction -> Open -> Commit | Rollback -> Idle.
// A unit of work is request scoped and must not be shared between goroutines.
type UnitOfWork interface {
	// Transaction opens a transaction. Fails with ErrTransactionAlreadyStarted if one is open.
	Transaction(ctx context.Context, level IsolationLevel) error
	// Commit commits the open transaction. Fails with ErrNoTransactionInProgress if idle.
	Commit() error
	// Rollback aborts the open transaction. Fails with ErrNoTransactionInProgress if idle.
	Rollback() error
	// Save issues one write per ledger entry of the aggregate, in ledger order, and clears
	// the ledger once every write succeeded. Fails with ErrTransactionNotInitialized if idle.
	Save(ctx context.Context, aggregate shared.AggregateRoot) error
	// Repositories returns the read ports bound to the open transaction
	Repositories() (Repositories, error)
}

// UnitOfWorkFactory creates a fresh unit of work per operation
type UnitOfWorkFactory func() UnitOfWork

// RunInTransaction opens a transaction, runs fn and commits.
// Any error or panic from fn rolls the transaction back and is passed on unchanged.
// The operation is never retried.
func RunInTransaction(ctx context.Context, uow UnitOfWork, level IsolationLevel, fn func(ctx context.Context, repos Repositories) error) (err error) {
	if err := uow.Transaction(ctx, level); err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = uow.Rollback()
			panic(p)
		}
		if rbErr := uow.Rollback(); rbErr != nil && !errors.Is(rbErr, ErrNoTransactionInProgress) {
			err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
	}()

	repos, err := uow.Repositories()
	if err != nil {
		return err
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
