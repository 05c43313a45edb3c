package catalog

import (
	"context"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product referenced by a forecast does not exist
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")

// ProductRepository is the read port for products
type ProductRepository interface {
	// FindByID returns ErrProductNotFound when the product does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
