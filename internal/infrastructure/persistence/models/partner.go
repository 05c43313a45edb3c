package models

import (
	"github.com/erp/stockplanner/internal/domain/partner"
	"github.com/google/uuid"
)

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string `gorm:"type:varchar(200);not null"`
	LeadTimeDays int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity:   m.BaseModel.ToDomain(),
		Code:         m.Code,
		Name:         m.Name,
		LeadTimeDays: m.LeadTimeDays,
	}
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{Code: s.Code, Name: s.Name, LeadTimeDays: s.LeadTimeDays}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ProductSupplierModel links a product to a supplier.
// At most one link per product is flagged as default.
type ProductSupplierModel struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductSupplierModel) TableName() string {
	return "product_suppliers"
}
