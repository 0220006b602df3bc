package models

import (
	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Category      string          `gorm:"type:varchar(100);index"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock         int             `gorm:"not null;default:0"`
	ReorderLevel  int             `gorm:"not null;default:0"`
	Description   string          `gorm:"type:text"`
	Active        bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Category:          m.Category,
		UnitPrice:         m.UnitPrice,
		TaxPercentage:     m.TaxPercentage,
		Stock:             m.Stock,
		ReorderLevel:      m.ReorderLevel,
		Description:       m.Description,
		Active:            m.Active,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(product *catalog.Product) *ProductModel {
	model := &ProductModel{
		Code:          product.Code,
		Name:          product.Name,
		Category:      product.Category,
		UnitPrice:     product.UnitPrice,
		TaxPercentage: product.TaxPercentage,
		Stock:         product.Stock,
		ReorderLevel:  product.ReorderLevel,
		Description:   product.Description,
		Active:        product.Active,
	}
	model.FromDomainAggregateRoot(product.BaseAggregateRoot)
	return model
}
