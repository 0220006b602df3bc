package catalog

import (
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductUpdated      = "ProductUpdated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
	EventTypeProductDeleted      = "ProductDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
	}
}

// ProductUpdatedEvent is published when a product's descriptive fields change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
	}
}

// ProductPriceChangedEvent is published when pricing inputs change
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID       `json:"product_id"`
	Code          string          `json:"code"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		UnitPrice:       product.UnitPrice,
		TaxPercentage:   product.TaxPercentage,
	}
}

// ProductDeletedEvent is published when a product is deleted
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(product *Product) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Code:            product.Code,
		Name:            product.Name,
	}
}
