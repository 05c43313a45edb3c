package models

import (
	"github.com/erp/stockplanner/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Code           string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string               `gorm:"type:varchar(200);not null"`
	Stock          decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	SafetyStock    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ServiceLevel   float64              `gorm:"not null;default:0.95"`
	Classification catalog.ProductClass `gorm:"type:varchar(1);not null;default:'C'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:     m.BaseModel.ToDomain(),
		Code:           m.Code,
		Name:           m.Name,
		Stock:          m.Stock,
		SafetyStock:    m.SafetyStock,
		ServiceLevel:   m.ServiceLevel,
		Classification: m.Classification,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Code:           p.Code,
		Name:           p.Name,
		Stock:          p.Stock,
		SafetyStock:    p.SafetyStock,
		ServiceLevel:   p.ServiceLevel,
		Classification: p.Classification,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
