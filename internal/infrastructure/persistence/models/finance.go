package models

import (
	"time"

	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseRecordModel is the persistence model for an ExpenseRecord
type ExpenseRecordModel struct {
	AggregateModel
	Category    string          `gorm:"type:varchar(30);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(500);not null"`
	Reference   string          `gorm:"type:varchar(100)"`
	IncurredAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ExpenseRecordModel) TableName() string {
	return "expense_records"
}

// ToDomain converts the persistence model to a domain ExpenseRecord
func (m *ExpenseRecordModel) ToDomain() *finance.ExpenseRecord {
	return &finance.ExpenseRecord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Category:          finance.ExpenseCategory(m.Category),
		Amount:            m.Amount,
		Description:       m.Description,
		Reference:         m.Reference,
		IncurredAt:        m.IncurredAt,
	}
}

// ExpenseRecordModelFromDomain creates a persistence model from a domain ExpenseRecord
func ExpenseRecordModelFromDomain(expense *finance.ExpenseRecord) *ExpenseRecordModel {
	model := &ExpenseRecordModel{
		Category:    string(expense.Category),
		Amount:      expense.Amount,
		Description: expense.Description,
		Reference:   expense.Reference,
		IncurredAt:  expense.IncurredAt,
	}
	model.FromDomainAggregateRoot(expense.BaseAggregateRoot)
	return model
}
