package catalog

import (
	"strings"
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a garment product offered for sourcing.
// Its unit price and tax rate are the inputs used when pricing order
// line items; its stock is the availability ceiling for new items.
type Product struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	TaxPercentage decimal.Decimal // [0, 100]
	Stock         int
	ReorderLevel  int
	Description   string
	Active        bool
}

// NewProduct creates a new product
func NewProduct(code, name string, unitPrice valueobject.Money, taxPercentage decimal.Decimal, stock int) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_PERCENTAGE", "Tax percentage must be between 0 and 100")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		TaxPercentage:     taxPercentage,
		Stock:             stock,
		Active:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates name, category and description
func (p *Product) Update(name, category, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	p.Name = name
	p.Category = category
	p.Description = description
	p.touch()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPricing updates the unit price and tax percentage
func (p *Product) SetPricing(unitPrice valueobject.Money, taxPercentage decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxPercentage.IsNegative() || taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_PERCENTAGE", "Tax percentage must be between 0 and 100")
	}

	p.UnitPrice = unitPrice.Amount()
	p.TaxPercentage = taxPercentage
	p.touch()

	p.AddDomainEvent(NewProductPriceChangedEvent(p))

	return nil
}

// AdjustStock changes the stock level by delta (positive or negative).
// The resulting stock can never go below zero.
func (p *Product) AdjustStock(delta int) error {
	if p.Stock+delta < 0 {
		return shared.ErrOutOfStock
	}

	p.Stock += delta
	p.touch()

	return nil
}

// SetReorderLevel sets the threshold below which the product counts as low stock
func (p *Product) SetReorderLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	p.ReorderLevel = level
	p.touch()
	return nil
}

// Deactivate marks the product as no longer orderable
func (p *Product) Deactivate() {
	p.Active = false
	p.touch()
}

// Activate marks the product as orderable
func (p *Product) Activate() {
	p.Active = true
	p.touch()
}

// IsLowStock returns true if stock is at or below the reorder level
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// HasStock returns true if at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.Stock
}

// GetUnitPriceMoney returns the unit price as Money
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.UnitPrice)
}

// InventoryValue returns unit price * stock, rounded
func (p *Product) InventoryValue() valueobject.Money {
	return p.GetUnitPriceMoney().MultiplyByInt(int64(p.Stock))
}

// Snapshot returns the read-only view of the product used when pricing
// order items.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		UnitPrice:     p.GetUnitPriceMoney(),
		TaxPercentage: p.TaxPercentage,
		Stock:         p.Stock,
	}
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
}

func validateProductCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}
