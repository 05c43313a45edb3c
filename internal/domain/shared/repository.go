package shared

import "context"

// EntityStore is the write adapter for one entity kind.
// The unit of work resolves one per kind and calls it with the pending action.
type EntityStore[T any] interface {
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, entity T) error
}
