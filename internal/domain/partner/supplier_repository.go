package partner

import (
	"context"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrSupplierMissingForRecommendations is returned when a product has no default supplier,
// so no lead time is available to plan a restock
var ErrSupplierMissingForRecommendations = shared.NewDomainError(
	"SUPPLIER_MISSING_FOR_RECOMMENDATIONS",
	"Product has no default supplier; recommendations cannot be generated",
)

// SupplierRepository is the read port for suppliers
type SupplierRepository interface {
	// FindDefaultSupplier returns the default supplier of the product,
	// or ErrSupplierMissingForRecommendations when none is flagged
	FindDefaultSupplier(ctx context.Context, productID uuid.UUID) (*Supplier, error)
}
