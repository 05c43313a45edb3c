package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/stockplanner/internal/domain/replenishment"
	"github.com/erp/stockplanner/internal/domain/shared"
	"gorm.io/gorm"
)

// ErrEntityKindNotRegistered is returned when a ledger holds an entity no store is registered for.
// It is a wiring mistake, not a business condition.
var ErrEntityKindNotRegistered = errors.New("repository dispatch: entity kind not registered")

// ForecastStoreFactory builds a forecast store bound to a transaction handle
type ForecastStoreFactory func(tx *gorm.DB) replenishment.ForecastStore

// RecommendationStoreFactory builds a recommendation store bound to a transaction handle
type RecommendationStoreFactory func(tx *gorm.DB) replenishment.RecommendationStore

// RepositoryDispatch maps each persisted entity kind to the store that writes it
type RepositoryDispatch struct {
	forecasts       ForecastStoreFactory
	recommendations RecommendationStoreFactory
}

// NewRepositoryDispatch creates a dispatch table with the given store factories.
// A nil factory leaves that kind unregistered.
func NewRepositoryDispatch(forecasts ForecastStoreFactory, recommendations RecommendationStoreFactory) *RepositoryDispatch {
	return &RepositoryDispatch{forecasts: forecasts, recommendations: recommendations}
}

// NewGormRepositoryDispatch registers the GORM stores for every kind
func NewGormRepositoryDispatch() *RepositoryDispatch {
	return NewRepositoryDispatch(
		func(tx *gorm.DB) replenishment.ForecastStore { return NewGormForecastRepository(tx) },
		func(tx *gorm.DB) replenishment.RecommendationStore { return NewGormRecommendationRepository(tx) },
	)
}

// Apply writes one ledger change through the store registered for its kind
func (d *RepositoryDispatch) Apply(ctx context.Context, tx *gorm.DB, change shared.TrackedChange) error {
	if !change.Action.IsValid() {
		return fmt.Errorf("repository dispatch: unknown action %q", change.Action)
	}
	entity, ok := change.Entity.(replenishment.TrackedEntity)
	if !ok {
		return fmt.Errorf("%w: %T", ErrEntityKindNotRegistered, change.Entity)
	}
	return entity.Accept(&ledgerWriter{ctx: ctx, tx: tx, action: change.Action, dispatch: d})
}

// ledgerWriter is the visitor that routes one change to its store
type ledgerWriter struct {
	ctx      context.Context
	tx       *gorm.DB
	action   shared.TrackedAction
	dispatch *RepositoryDispatch
}

func (w *ledgerWriter) VisitForecast(f *replenishment.Forecast) error {
	if w.dispatch.forecasts == nil {
		return fmt.Errorf("%w: %T", ErrEntityKindNotRegistered, f)
	}
	return write(w.ctx, w.dispatch.forecasts(w.tx), w.action, f)
}

func (w *ledgerWriter) VisitRecommendation(r *replenishment.InventoryRecommendation) error {
	if w.dispatch.recommendations == nil {
		return fmt.Errorf("%w: %T", ErrEntityKindNotRegistered, r)
	}
	return write(w.ctx, w.dispatch.recommendations(w.tx), w.action, r)
}

var _ replenishment.EntityVisitor = (*ledgerWriter)(nil)

func write[T any](ctx context.Context, store shared.EntityStore[T], action shared.TrackedAction, entity T) error {
	switch action {
	case shared.TrackedActionCreated:
		return store.Create(ctx, entity)
	case shared.TrackedActionUpdated:
		return store.Update(ctx, entity)
	case shared.TrackedActionDeleted:
		return store.Delete(ctx, entity)
	default:
		return fmt.Errorf("repository dispatch: unknown action %q", action)
	}
}
