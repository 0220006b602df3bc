package ordering

import (
	"time"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Order Requests ====================

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	OrderNumber   string                 `json:"order_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID              `json:"customer_id" binding:"required"`
	Items         []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	Discount      *decimal.Decimal       `json:"discount"`
	Shipping      *decimal.Decimal       `json:"shipping"`
	PaymentMethod string                 `json:"payment_method"`
	Notes         string                 `json:"notes"`
}

// CreateOrderItemInput represents an item in the create order request
type CreateOrderItemInput struct {
	ProductID          uuid.UUID       `json:"product_id" binding:"required"`
	Quantity           int             `json:"quantity" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// UpdateOrderRequest represents a request to update an order's header fields
type UpdateOrderRequest struct {
	Discount      *decimal.Decimal `json:"discount"`
	Shipping      *decimal.Decimal `json:"shipping"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

// AddOrderItemRequest represents a request to add an item to an order
type AddOrderItemRequest struct {
	ProductID          uuid.UUID       `json:"product_id" binding:"required"`
	Quantity           int             `json:"quantity" binding:"required,min=1"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// UpdateOrderItemRequest represents a request to update an order item
type UpdateOrderItemRequest struct {
	Quantity           *int             `json:"quantity"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
}

// SetOrderStatusRequest represents a request to set the lifecycle status
type SetOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetPaymentStatusRequest represents a request to set the payment status label
type SetPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// RecordPaymentRequest represents a request to record a ledger entry
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
}

// AdvanceStageRequest represents a request to move the production stage
type AdvanceStageRequest struct {
	Stage     string     `json:"stage" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search        string     `form:"search"`
	CustomerID    *uuid.UUID `form:"customer_id"`
	Status        *string    `form:"status"`
	PaymentStatus *string    `form:"payment_status"`
	Stage         *string    `form:"stage"`
	StartDate     *time.Time `form:"start_date"`
	EndDate       *time.Time `form:"end_date"`
	Page          int        `form:"page" binding:"min=0"`
	PageSize      int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Order Responses ====================

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          uuid.UUID       `json:"product_id"`
	ProductName        string          `json:"product_name"`
	ProductCode        string          `json:"product_code"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	SubTotal           decimal.Decimal `json:"sub_total"`
	Total              decimal.Decimal `json:"total"`
}

// PaymentResponse represents a ledger entry in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	PaidAt    time.Time       `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentSummaryResponse represents the derived payment summary
type PaymentSummaryResponse struct {
	GrandTotal    decimal.Decimal `json:"grand_total"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentCount  int             `json:"payment_count"`
	Status        string          `json:"status"`
}

// MilestoneResponse represents the next upcoming milestone
type MilestoneResponse struct {
	Stage string    `json:"stage"`
	Date  time.Time `json:"date"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID              `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	CustomerID      uuid.UUID              `json:"customer_id"`
	CustomerName    string                 `json:"customer_name"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	PaymentMethod   string                 `json:"payment_method,omitempty"`
	Items           []OrderItemResponse    `json:"items"`
	Payments        []PaymentResponse      `json:"payments"`
	PaymentSummary  PaymentSummaryResponse `json:"payment_summary"`
	ItemsTotal      decimal.Decimal        `json:"items_total"`
	ItemsTaxTotal   decimal.Decimal        `json:"items_tax_total"`
	DiscountTotal   decimal.Decimal        `json:"discount_total"`
	Shipping        decimal.Decimal        `json:"shipping"`
	GrandTotal      decimal.Decimal        `json:"grand_total"`
	ProductionStage string                 `json:"production_stage"`
	Milestones      ordering.Milestones    `json:"milestones"`
	NextMilestone   *MilestoneResponse     `json:"next_milestone,omitempty"`
	Notes           string                 `json:"notes"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// OrderListItemResponse represents an order row in list responses
type OrderListItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	ItemCount       int             `json:"item_count"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Balance         decimal.Decimal `json:"balance"`
	ProductionStage string          `json:"production_stage"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToOrderItemResponse converts a domain order item to a response
func ToOrderItemResponse(item *ordering.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:                 item.ID,
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
	}
}

// ToPaymentResponse converts a domain payment to a response
func ToPaymentResponse(payment *ordering.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Direction: string(payment.Direction),
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		Reference: payment.Reference,
		PaidAt:    payment.PaidAt,
		CreatedAt: payment.CreatedAt,
	}
}

// ToPaymentSummaryResponse converts a derived summary to a response
func ToPaymentSummaryResponse(summary ordering.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		GrandTotal:    summary.GrandTotal,
		TotalPaid:     summary.TotalPaid,
		TotalRefunded: summary.TotalRefunded,
		Balance:       summary.Balance,
		PaymentCount:  summary.PaymentCount,
		Status:        string(summary.Status),
	}
}

// ToOrderResponse converts a domain order to a full response
func ToOrderResponse(order *ordering.Order, now time.Time) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for idx := range order.Items {
		items[idx] = ToOrderItemResponse(&order.Items[idx])
	}

	payments := make([]PaymentResponse, len(order.Payments))
	for idx := range order.Payments {
		payments[idx] = ToPaymentResponse(&order.Payments[idx])
	}

	var next *MilestoneResponse
	if milestone := order.NextMilestone(now); milestone != nil {
		next = &MilestoneResponse{Stage: string(milestone.Stage), Date: milestone.Date}
	}

	return OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   string(order.PaymentMethod),
		Items:           items,
		Payments:        payments,
		PaymentSummary:  ToPaymentSummaryResponse(order.Summary()),
		ItemsTotal:      order.ItemsTotal,
		ItemsTaxTotal:   order.ItemsTaxTotal,
		DiscountTotal:   order.DiscountTotal,
		Shipping:        order.Shipping,
		GrandTotal:      order.GrandTotal,
		ProductionStage: string(order.ProductionStage),
		Milestones:      order.Milestones,
		NextMilestone:   next,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// ToOrderListItemResponse converts a domain order to a list row
func ToOrderListItemResponse(order *ordering.Order) OrderListItemResponse {
	summary := order.Summary()
	return OrderListItemResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		ItemCount:       order.ItemCount(),
		GrandTotal:      order.GrandTotal,
		Balance:         summary.Balance,
		ProductionStage: string(order.ProductionStage),
		CreatedAt:       order.CreatedAt,
	}
}

// ToOrderListItemResponses converts a slice of orders to list rows
func ToOrderListItemResponses(orders []ordering.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for idx := range orders {
		responses[idx] = ToOrderListItemResponse(&orders[idx])
	}
	return responses
}
