package partner

import (
	"context"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll finds all customers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
