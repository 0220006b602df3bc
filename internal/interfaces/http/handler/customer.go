package handler

import (
	orderingapp "github.com/garmsource/backend/internal/application/ordering"
	partnerapp "github.com/garmsource/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
	orderService    *orderingapp.OrderService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customerService *partnerapp.CustomerService,
	orderService *orderingapp.OrderService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
	}
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID returns a customer by ID
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// List returns a filtered, paginated customer list
func (h *CustomerHandler) List(c *gin.Context) {
	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// Update updates a customer's details
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Activate marks a customer as active
func (h *CustomerHandler) Activate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.Activate(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Deactivate marks a customer as inactive
func (h *CustomerHandler) Deactivate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.Deactivate(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete removes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListOrders returns the customer's orders, newest first
func (h *CustomerHandler) ListOrders(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	orders, err := h.orderService.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.List)
		customers.POST("", h.Create)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.POST("/:id/activate", h.Activate)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.GET("/:id/orders", h.ListOrders)
	}
}
