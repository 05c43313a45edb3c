package catalog

import (
	"strings"

	"github.com/erp/stockplanner/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductClass is the ABC classification of a product
type ProductClass string

const (
	ProductClassA ProductClass = "A"
	ProductClassB ProductClass = "B"
	ProductClassC ProductClass = "C"
)

// DefaultServiceLevel is applied when a product has no explicit target
const DefaultServiceLevel = 0.95

// Product is the replenishment view of a catalog product.
// Stock is maintained by the inventory context; this core only reads it.
type Product struct {
	shared.BaseEntity
	Code           string
	Name           string
	Stock          decimal.Decimal
	SafetyStock    decimal.Decimal // floor for the replenishment buffer
	ServiceLevel   float64         // target probability of no stock-out during lead time
	Classification ProductClass
}

// NewProduct creates a product snapshot with validation
func NewProduct(code, name string, stock decimal.Decimal, serviceLevel float64, class ProductClass) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if err := validateServiceLevel(serviceLevel); err != nil {
		return nil, err
	}
	if class == "" {
		class = ProductClassC
	}

	return &Product{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           strings.ToUpper(code),
		Name:           name,
		Stock:          stock,
		SafetyStock:    decimal.Zero,
		ServiceLevel:   serviceLevel,
		Classification: class,
	}, nil
}

// EffectiveServiceLevel returns the service level, falling back to the default when unset
func (p *Product) EffectiveServiceLevel() float64 {
	if p.ServiceLevel <= 0 || p.ServiceLevel >= 1 {
		return DefaultServiceLevel
	}
	return p.ServiceLevel
}

func validateServiceLevel(level float64) error {
	if level < 0 || level >= 1 {
		return shared.NewDomainError("INVALID_SERVICE_LEVEL", "Service level must be in [0, 1)")
	}
	return nil
}
