package catalog

import (
	"context"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its unique code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds all active products
	FindActive(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a product code is already taken
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
