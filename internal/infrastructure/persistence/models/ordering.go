package models

import (
	"encoding/json"
	"time"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate. Items
// and payments load and save together with the order.
type OrderModel struct {
	AggregateModel
	OrderNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaymentMethod   string          `gorm:"type:varchar(20)"`
	ItemsTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ItemsTaxTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Shipping        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ProductionStage string          `gorm:"type:varchar(30);not null;default:'confirmed'"`
	Milestones      []byte          `gorm:"type:jsonb"`
	Notes           string          `gorm:"type:text"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments        []PaymentModel   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line item
type OrderItemModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName        string          `gorm:"type:varchar(200);not null"`
	ProductCode        string          `gorm:"type:varchar(50);not null"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TaxPercentage      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SubTotal           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Total              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel is the persistence model for a payment ledger entry
type PaymentModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction  string          `gorm:"type:varchar(10);not null;default:'pay'"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method     string          `gorm:"type:varchar(20);not null"`
	Reference  string          `gorm:"type:varchar(100)"`
	PaidAt     time.Time       `gorm:"not null;index"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Order aggregate
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Status:            ordering.OrderStatus(m.Status),
		PaymentStatus:     ordering.PaymentStatus(m.PaymentStatus),
		PaymentMethod:     ordering.PaymentMethod(m.PaymentMethod),
		ItemsTotal:        m.ItemsTotal,
		ItemsTaxTotal:     m.ItemsTaxTotal,
		DiscountTotal:     m.DiscountTotal,
		Shipping:          m.Shipping,
		GrandTotal:        m.GrandTotal,
		ProductionStage:   ordering.ProductionStage(m.ProductionStage),
		Notes:             m.Notes,
	}

	if len(m.Milestones) > 0 {
		// Unreadable milestone JSON leaves the milestones empty rather
		// than failing the whole load.
		_ = json.Unmarshal(m.Milestones, &order.Milestones)
	}

	order.Items = make([]ordering.OrderItem, len(m.Items))
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	order.Payments = make([]ordering.Payment, len(m.Payments))
	for i, payment := range m.Payments {
		order.Payments[i] = *payment.ToDomain()
	}

	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(order *ordering.Order) *OrderModel {
	model := &OrderModel{
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   string(order.PaymentMethod),
		ItemsTotal:      order.ItemsTotal,
		ItemsTaxTotal:   order.ItemsTaxTotal,
		DiscountTotal:   order.DiscountTotal,
		Shipping:        order.Shipping,
		GrandTotal:      order.GrandTotal,
		ProductionStage: string(order.ProductionStage),
		Notes:           order.Notes,
	}
	model.FromDomainAggregateRoot(order.BaseAggregateRoot)

	if milestones, err := json.Marshal(order.Milestones); err == nil {
		model.Milestones = milestones
	}

	model.Items = make([]OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		model.Items[i] = *OrderItemModelFromDomain(&item)
	}
	model.Payments = make([]PaymentModel, len(order.Payments))
	for i, payment := range order.Payments {
		model.Payments[i] = *PaymentModelFromDomain(&payment)
	}

	return model
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		ProductID:          m.ProductID,
		ProductName:        m.ProductName,
		ProductCode:        m.ProductCode,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		DiscountPercentage: m.DiscountPercentage,
		DiscountAmount:     m.DiscountAmount,
		TaxPercentage:      m.TaxPercentage,
		TaxAmount:          m.TaxAmount,
		SubTotal:           m.SubTotal,
		Total:              m.Total,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(item *ordering.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:                 item.ID,
		OrderID:            item.OrderID,
		ProductID:          item.ProductID,
		ProductName:        item.ProductName,
		ProductCode:        item.ProductCode,
		Quantity:           item.Quantity,
		UnitPrice:          item.UnitPrice,
		DiscountPercentage: item.DiscountPercentage,
		DiscountAmount:     item.DiscountAmount,
		TaxPercentage:      item.TaxPercentage,
		TaxAmount:          item.TaxAmount,
		SubTotal:           item.SubTotal,
		Total:              item.Total,
		CreatedAt:          item.CreatedAt,
		UpdatedAt:          item.UpdatedAt,
	}
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *ordering.Payment {
	return &ordering.Payment{
		ID:         m.ID,
		OrderID:    m.OrderID,
		CustomerID: m.CustomerID,
		Direction:  ordering.PaymentDirection(m.Direction),
		Amount:     m.Amount,
		Method:     ordering.PaymentMethod(m.Method),
		Reference:  m.Reference,
		PaidAt:     m.PaidAt,
		CreatedAt:  m.CreatedAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(payment *ordering.Payment) *PaymentModel {
	return &PaymentModel{
		ID:         payment.ID,
		OrderID:    payment.OrderID,
		CustomerID: payment.CustomerID,
		Direction:  string(payment.Direction),
		Amount:     payment.Amount,
		Method:     string(payment.Method),
		Reference:  payment.Reference,
		PaidAt:     payment.PaidAt,
		CreatedAt:  payment.CreatedAt,
	}
}
