package ordering

import (
	"fmt"
	"time"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem represents a line item in an order. Pricing inputs are the
// unit price, quantity and the discount/tax percentages; every other
// monetary field is derived from them, rounding at each step:
//
//	gross      = round2(unitPrice * quantity)
//	discount   = round2(gross * discountPct / 100)
//	subTotal   = round2(gross - discount)
//	taxAmount  = round2(subTotal * taxPct / 100)
//	total      = round2(subTotal + taxAmount)
type OrderItem struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ProductID          uuid.UUID
	ProductName        string
	ProductCode        string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxPercentage      decimal.Decimal
	TaxAmount          decimal.Decimal
	SubTotal           decimal.Decimal
	Total              decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderItem creates a line item priced from the product snapshot.
// The snapshot's stock is the availability ceiling for the requested
// quantity.
func NewOrderItem(orderID uuid.UUID, product catalog.ProductSnapshot, quantity int, discountPercentage decimal.Decimal) (*OrderItem, error) {
	if product.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > product.Stock {
		return nil, shared.ErrOutOfStock
	}
	if product.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if err := validatePercentage(discountPercentage, "discount"); err != nil {
		return nil, err
	}
	if err := validatePercentage(product.TaxPercentage, "tax"); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &OrderItem{
		ID:                 uuid.New(),
		OrderID:            orderID,
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductCode:        product.Code,
		Quantity:           quantity,
		UnitPrice:          product.UnitPrice.Amount(),
		DiscountPercentage: discountPercentage,
		TaxPercentage:      product.TaxPercentage,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	item.recompute()

	return item, nil
}

// UpdateQuantity updates the quantity and re-derives all amounts.
// The available stock ceiling applies to the new quantity.
func (i *OrderItem) UpdateQuantity(quantity, availableStock int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > availableStock {
		return shared.ErrOutOfStock
	}

	i.Quantity = quantity
	i.recompute()
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateDiscount updates the discount percentage and re-derives amounts
func (i *OrderItem) UpdateDiscount(discountPercentage decimal.Decimal) error {
	if err := validatePercentage(discountPercentage, "discount"); err != nil {
		return err
	}

	i.DiscountPercentage = discountPercentage
	i.recompute()
	i.UpdatedAt = time.Now()

	return nil
}

// GrossAmount returns unitPrice * quantity, rounded
func (i *OrderItem) GrossAmount() decimal.Decimal {
	return valueobject.Round2(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// recompute derives every monetary field from the pricing inputs,
// rounding at each step
func (i *OrderItem) recompute() {
	gross := i.GrossAmount()
	i.DiscountAmount = valueobject.Round2(gross.Mul(i.DiscountPercentage).Div(decimal.NewFromInt(100)))
	i.SubTotal = valueobject.Round2(gross.Sub(i.DiscountAmount))
	i.TaxAmount = valueobject.Round2(i.SubTotal.Mul(i.TaxPercentage).Div(decimal.NewFromInt(100)))
	i.Total = valueobject.Round2(i.SubTotal.Add(i.TaxAmount))
}

// validate checks each derived field against its immediate predecessors
// as stored, so one corrupted amount also flags everything downstream of
// it, and collects a violation for every value off by more than the
// tolerance. The field prefix scopes violations to the item's position,
// e.g. "items[2]".
func (i *OrderItem) validate(prefix string, violations *shared.ValidationErrors) {
	if i.Quantity < 1 {
		violations.Add(prefix+".quantity", "INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if i.UnitPrice.IsNegative() {
		violations.Add(prefix+".unitPrice", "NEGATIVE_AMOUNT", "Unit price cannot be negative")
	}
	if i.DiscountPercentage.IsNegative() || i.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		violations.Add(prefix+".discountPercentage", "INVALID_PERCENTAGE", "Discount percentage must be between 0 and 100")
	}
	if i.TaxPercentage.IsNegative() || i.TaxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		violations.Add(prefix+".taxPercentage", "INVALID_PERCENTAGE", "Tax percentage must be between 0 and 100")
	}

	gross := i.GrossAmount()
	discount := valueobject.Round2(gross.Mul(i.DiscountPercentage).Div(decimal.NewFromInt(100)))
	subTotal := valueobject.Round2(gross.Sub(i.DiscountAmount))
	taxAmount := valueobject.Round2(i.SubTotal.Mul(i.TaxPercentage).Div(decimal.NewFromInt(100)))
	total := valueobject.Round2(i.SubTotal.Add(i.TaxAmount))

	checkAmount(violations, prefix+".discountAmount", i.DiscountAmount, discount)
	checkAmount(violations, prefix+".subTotal", i.SubTotal, subTotal)
	checkAmount(violations, prefix+".taxAmount", i.TaxAmount, taxAmount)
	checkAmount(violations, prefix+".total", i.Total, total)

	if i.SubTotal.IsNegative() {
		violations.Add(prefix+".subTotal", "NEGATIVE_AMOUNT", "Sub-total cannot be negative")
	}
	if i.Total.IsNegative() {
		violations.Add(prefix+".total", "NEGATIVE_AMOUNT", "Total cannot be negative")
	}
}

// checkAmount records a mismatch violation when stored and recomputed
// amounts differ beyond the tolerance
func checkAmount(violations *shared.ValidationErrors, field string, stored, recomputed decimal.Decimal) {
	if !valueobject.WithinTolerance(stored, recomputed) {
		violations.Add(field, "AMOUNT_MISMATCH",
			fmt.Sprintf("Stored value %s does not match recomputed value %s", stored.StringFixed(2), recomputed.StringFixed(2)))
	}
}

func validatePercentage(pct decimal.Decimal, kind string) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_PERCENTAGE", "The "+kind+" percentage must be between 0 and 100")
	}
	return nil
}

// GetSubTotalMoney returns the sub-total as Money
func (i *OrderItem) GetSubTotalMoney() valueobject.Money {
	return valueobject.NewMoney(i.SubTotal)
}

// GetTotalMoney returns the total as Money
func (i *OrderItem) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoney(i.Total)
}
