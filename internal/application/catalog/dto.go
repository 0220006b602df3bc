package catalog

import (
	"time"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code          string          `json:"code" binding:"required,min=1,max=50"`
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Stock         int             `json:"stock" binding:"min=0"`
	ReorderLevel  int             `json:"reorder_level" binding:"min=0"`
	Description   string          `json:"description"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	TaxPercentage *decimal.Decimal `json:"tax_percentage"`
	ReorderLevel  *int             `json:"reorder_level"`
	Description   *string          `json:"description"`
}

// AdjustStockRequest represents a request to change stock by a delta
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string  `form:"search"`
	Category *string `form:"category"`
	Active   *bool   `form:"active"`
	Page     int     `form:"page" binding:"min=0"`
	PageSize int     `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxPercentage  decimal.Decimal `json:"tax_percentage"`
	Stock          int             `json:"stock"`
	ReorderLevel   int             `json:"reorder_level"`
	LowStock       bool            `json:"low_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	Description    string          `json:"description"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID,
		Code:           product.Code,
		Name:           product.Name,
		Category:       product.Category,
		UnitPrice:      product.UnitPrice,
		TaxPercentage:  product.TaxPercentage,
		Stock:          product.Stock,
		ReorderLevel:   product.ReorderLevel,
		LowStock:       product.IsLowStock(),
		InventoryValue: product.InventoryValue().Amount(),
		Description:    product.Description,
		Active:         product.Active,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
