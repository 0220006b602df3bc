package handler

import (
	financeapp "github.com/garmsource/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExpenseHandler handles operating expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Record records a new expense
func (h *ExpenseHandler) Record(c *gin.Context) {
	var req financeapp.RecordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetByID returns an expense by ID
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// List returns a filtered, paginated expense list
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, expenses, total, page, pageSize)
}

// Update updates an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	var req financeapp.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Categories returns the known expense categories
func (h *ExpenseHandler) Categories(c *gin.Context) {
	h.Success(c, h.expenseService.Categories())
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.List)
		expenses.POST("", h.Record)
		expenses.GET("/categories", h.Categories)
		expenses.GET("/:id", h.GetByID)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}
