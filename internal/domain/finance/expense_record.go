package finance

import (
	"strings"
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of an expense
type ExpenseCategory string

const (
	ExpenseCategoryFabric      ExpenseCategory = "FABRIC"
	ExpenseCategoryAccessories ExpenseCategory = "ACCESSORIES"
	ExpenseCategorySampling    ExpenseCategory = "SAMPLING"
	ExpenseCategoryShipping    ExpenseCategory = "SHIPPING"
	ExpenseCategoryInspection  ExpenseCategory = "INSPECTION"
	ExpenseCategorySalary      ExpenseCategory = "SALARY"
	ExpenseCategoryRent        ExpenseCategory = "RENT"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategoryTravel      ExpenseCategory = "TRAVEL"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryFabric, ExpenseCategoryAccessories, ExpenseCategorySampling,
		ExpenseCategoryShipping, ExpenseCategoryInspection, ExpenseCategorySalary,
		ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryTravel,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// AllExpenseCategories returns every valid category in a stable order
func AllExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryFabric, ExpenseCategoryAccessories, ExpenseCategorySampling,
		ExpenseCategoryShipping, ExpenseCategoryInspection, ExpenseCategorySalary,
		ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryTravel,
		ExpenseCategoryOther,
	}
}

// ExpenseRecord represents a single business expense
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	Category    ExpenseCategory
	Amount      decimal.Decimal
	Description string
	Reference   string
	IncurredAt  time.Time
}

// NewExpenseRecord creates a new expense record
func NewExpenseRecord(category ExpenseCategory, amount valueobject.Money, description string, incurredAt time.Time) (*ExpenseRecord, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if incurredAt.IsZero() {
		incurredAt = time.Now()
	}

	expense := &ExpenseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Amount:            amount.Amount(),
		Description:       description,
		IncurredAt:        incurredAt,
	}

	expense.AddDomainEvent(NewExpenseRecordedEvent(expense))

	return expense, nil
}

// Update updates the expense's mutable fields
func (e *ExpenseRecord) Update(category ExpenseCategory, amount valueobject.Money, description, reference string, incurredAt time.Time) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Invalid expense category")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}

	e.Category = category
	e.Amount = amount.Amount()
	e.Description = description
	e.Reference = reference
	if !incurredAt.IsZero() {
		e.IncurredAt = incurredAt
	}
	e.UpdatedAt = time.Now()

	e.AddDomainEvent(NewExpenseUpdatedEvent(e))

	return nil
}

// GetAmountMoney returns the amount as Money
func (e *ExpenseRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoney(e.Amount)
}
