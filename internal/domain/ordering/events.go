package ordering

import (
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated            = "OrderCreated"
	EventTypeOrderUpdated            = "OrderUpdated"
	EventTypeOrderDeleted            = "OrderDeleted"
	EventTypeOrderStatusChanged      = "OrderStatusChanged"
	EventTypeOrderItemAdded          = "OrderItemAdded"
	EventTypeOrderItemRemoved        = "OrderItemRemoved"
	EventTypePaymentReceived         = "PaymentReceived"
	EventTypePaymentRefunded         = "PaymentRefunded"
	EventTypePaymentDeleted          = "PaymentDeleted"
	EventTypeProductionStageAdvanced = "ProductionStageAdvanced"
)

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
	}
}

// OrderUpdatedEvent is published when order lines or totals change
type OrderUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// NewOrderUpdatedEvent creates a new OrderUpdatedEvent
func NewOrderUpdatedEvent(order *Order) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderUpdated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		GrandTotal:      order.GrandTotal,
	}
}

// OrderDeletedEvent is published when an order is deleted
type OrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewOrderDeletedEvent creates a new OrderDeletedEvent
func NewOrderDeletedEvent(order *Order) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeleted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
	}
}

// OrderStatusChangedEvent is published when the lifecycle label changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID   `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderItemAddedEvent is published when a line item is added
type OrderItemAddedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// NewOrderItemAddedEvent creates a new OrderItemAddedEvent
func NewOrderItemAddedEvent(order *Order, item *OrderItem) *OrderItemAddedEvent {
	return &OrderItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemAdded, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ItemID:          item.ID,
		ProductID:       item.ProductID,
		ProductName:     item.ProductName,
		Quantity:        item.Quantity,
		Total:           item.Total,
	}
}

// OrderItemRemovedEvent is published when a line item is removed
type OrderItemRemovedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	ItemID  uuid.UUID `json:"item_id"`
}

// NewOrderItemRemovedEvent creates a new OrderItemRemovedEvent
func NewOrderItemRemovedEvent(order *Order, itemID uuid.UUID) *OrderItemRemovedEvent {
	return &OrderItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemRemoved, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ItemID:          itemID,
	}
}

// PaymentReceivedEvent is published when a pay-direction ledger entry is recorded
type PaymentReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// NewPaymentReceivedEvent creates a new PaymentReceivedEvent
func NewPaymentReceivedEvent(order *Order, payment *Payment) *PaymentReceivedEvent {
	return &PaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentReceived, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		Method:          payment.Method,
		PaymentStatus:   order.PaymentStatus,
	}
}

// PaymentRefundedEvent is published when a refund-direction ledger entry is recorded
type PaymentRefundedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// NewPaymentRefundedEvent creates a new PaymentRefundedEvent
func NewPaymentRefundedEvent(order *Order, payment *Payment) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRefunded, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		Method:          payment.Method,
		PaymentStatus:   order.PaymentStatus,
	}
}

// PaymentDeletedEvent is published when a ledger entry is hard-removed
type PaymentDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	PaymentID uuid.UUID `json:"payment_id"`
}

// NewPaymentDeletedEvent creates a new PaymentDeletedEvent
func NewPaymentDeletedEvent(order *Order, paymentID uuid.UUID) *PaymentDeletedEvent {
	return &PaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentDeleted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		PaymentID:       paymentID,
	}
}

// ProductionStageAdvancedEvent is published when the production stage moves
type ProductionStageAdvancedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OldStage    ProductionStage `json:"old_stage"`
	NewStage    ProductionStage `json:"new_stage"`
}

// NewProductionStageAdvancedEvent creates a new ProductionStageAdvancedEvent
func NewProductionStageAdvancedEvent(order *Order, oldStage, newStage ProductionStage) *ProductionStageAdvancedEvent {
	return &ProductionStageAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductionStageAdvanced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OldStage:        oldStage,
		NewStage:        newStage,
	}
}
