package finance

import (
	"context"
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)

	// FindAll finds all expenses with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]ExpenseRecord, error)

	// FindByPeriod finds expenses incurred within [start, end)
	FindByPeriod(ctx context.Context, start, end time.Time) ([]ExpenseRecord, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *ExpenseRecord) error

	// Delete deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts expenses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
