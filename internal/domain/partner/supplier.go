package partner

import (
	"strings"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier is the replenishment view of a supplier
type Supplier struct {
	shared.BaseEntity
	Code         string
	Name         string
	LeadTimeDays int // days between placing an order and its arrival
}

// NewSupplier creates a supplier snapshot
func NewSupplier(code, name string, leadTimeDays int) (*Supplier, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if leadTimeDays < 0 {
		return nil, shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	return &Supplier{
		BaseEntity:   shared.NewBaseEntity(),
		Code:         strings.ToUpper(code),
		Name:         name,
		LeadTimeDays: leadTimeDays,
	}, nil
}

// ProductSupplier links a product to one of its suppliers
type ProductSupplier struct {
	ProductID  uuid.UUID
	SupplierID uuid.UUID
	IsDefault  bool
}
