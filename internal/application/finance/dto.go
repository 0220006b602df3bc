package finance

import (
	"time"

	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordExpenseRequest represents a request to record an expense
type RecordExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Reference   string          `json:"reference"`
	IncurredAt  *time.Time      `json:"incurred_at"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Reference   *string          `json:"reference"`
	IncurredAt  *time.Time       `json:"incurred_at"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Search    string     `form:"search"`
	Category  *string    `form:"category"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"min=0"`
	PageSize  int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	IncurredAt  time.Time       `json:"incurred_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToExpenseResponse converts an expense to its API representation
func ToExpenseResponse(expense *finance.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Category:    expense.Category.String(),
		Amount:      expense.Amount,
		Description: expense.Description,
		Reference:   expense.Reference,
		IncurredAt:  expense.IncurredAt,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// ToExpenseResponses converts a slice of expenses
func ToExpenseResponses(expenses []finance.ExpenseRecord) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
