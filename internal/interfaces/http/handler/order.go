package handler

import (
	orderingapp "github.com/garmsource/backend/internal/application/ordering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order-related API endpoints: the order records
// themselves, their payment ledger and the production pipeline.
type OrderHandler struct {
	BaseHandler
	orderService      *orderingapp.OrderService
	paymentService    *orderingapp.PaymentService
	productionService *orderingapp.ProductionService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	orderService *orderingapp.OrderService,
	paymentService *orderingapp.PaymentService,
	productionService *orderingapp.ProductionService,
) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		paymentService:    paymentService,
		productionService: productionService,
	}
}

// Create creates a new order with its line items
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderingapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns a full order with items, payments and milestones
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber returns an order looked up by its order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a filtered, paginated order list
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Update updates an order's header fields
func (h *OrderHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete removes an order and its line items and payments
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem adds a line item to an order
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateItem updates a line item's quantity or discount
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req orderingapp.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveItem removes a line item from an order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// SetStatus sets the order lifecycle status
func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.SetOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// SetPaymentStatus overrides the order's payment status label
func (h *OrderHandler) SetPaymentStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.SetPaymentStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListPayments returns the order's ledger entries, newest first
func (h *OrderHandler) ListPayments(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// RecordPayment appends an incoming payment to the order's ledger
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// RecordRefund appends an outgoing refund to the order's ledger
func (h *OrderHandler) RecordRefund(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	refund, err := h.paymentService.RecordRefund(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, refund)
}

// DeletePayment removes a ledger entry and returns the recomputed summary
func (h *OrderHandler) DeletePayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	summary, err := h.paymentService.DeletePayment(c.Request.Context(), orderID, paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetPaymentSummary returns the derived payment summary for an order
func (h *OrderHandler) GetPaymentSummary(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	summary, err := h.paymentService.GetSummary(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// AdvanceStage moves the order's production stage and stamps a milestone
func (h *OrderHandler) AdvanceStage(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderingapp.AdvanceStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.productionService.AdvanceStage(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetNextMilestone returns the next upcoming milestone, if any
func (h *OrderHandler) GetNextMilestone(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	milestone, err := h.productionService.GetNextMilestone(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, milestone)
}

// ListStages returns the production stages in pipeline order
func (h *OrderHandler) ListStages(c *gin.Context) {
	h.Success(c, h.productionService.ListStages())
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/stages", h.ListStages)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)

		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items/:itemId", h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.RemoveItem)

		orders.POST("/:id/status", h.SetStatus)
		orders.POST("/:id/payment-status", h.SetPaymentStatus)

		orders.GET("/:id/payments", h.ListPayments)
		orders.POST("/:id/payments", h.RecordPayment)
		orders.POST("/:id/refunds", h.RecordRefund)
		orders.DELETE("/:id/payments/:paymentId", h.DeletePayment)
		orders.GET("/:id/payment-summary", h.GetPaymentSummary)

		orders.POST("/:id/stage", h.AdvanceStage)
		orders.GET("/:id/next-milestone", h.GetNextMilestone)
	}
}
