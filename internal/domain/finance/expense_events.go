package finance

import (
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeExpense = "ExpenseRecord"

// Event type constants
const (
	EventTypeExpenseRecorded = "ExpenseRecorded"
	EventTypeExpenseUpdated  = "ExpenseUpdated"
	EventTypeExpenseDeleted  = "ExpenseDeleted"
)

// ExpenseRecordedEvent is published when an expense is recorded
type ExpenseRecordedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID       `json:"expense_id"`
	Category  ExpenseCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewExpenseRecordedEvent creates a new ExpenseRecordedEvent
func NewExpenseRecordedEvent(expense *ExpenseRecord) *ExpenseRecordedEvent {
	return &ExpenseRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecorded, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		Category:        expense.Category,
		Amount:          expense.Amount,
	}
}

// ExpenseUpdatedEvent is published when an expense is updated
type ExpenseUpdatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID       `json:"expense_id"`
	Category  ExpenseCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewExpenseUpdatedEvent creates a new ExpenseUpdatedEvent
func NewExpenseUpdatedEvent(expense *ExpenseRecord) *ExpenseUpdatedEvent {
	return &ExpenseUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseUpdated, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		Category:        expense.Category,
		Amount:          expense.Amount,
	}
}

// ExpenseDeletedEvent is published when an expense is deleted
type ExpenseDeletedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID       `json:"expense_id"`
	Category  ExpenseCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// NewExpenseDeletedEvent creates a new ExpenseDeletedEvent
func NewExpenseDeletedEvent(expense *ExpenseRecord) *ExpenseDeletedEvent {
	return &ExpenseDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseDeleted, AggregateTypeExpense, expense.ID),
		ExpenseID:       expense.ID,
		Category:        expense.Category,
		Amount:          expense.Amount,
	}
}
