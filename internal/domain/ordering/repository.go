package ordering

import (
	"context"
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence. An order
// loads and saves as one unit together with its items and payments.
type OrderRepository interface {
	// FindByID finds an order with its items and payments
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its unique number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByCustomer finds all orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Order, error)

	// FindByStatus finds all orders carrying the given lifecycle label
	FindByStatus(ctx context.Context, status OrderStatus) ([]Order, error)

	// FindByPeriod finds orders created inside the half-open interval [from, to)
	FindByPeriod(ctx context.Context, from, to time.Time) ([]Order, error)

	// Save creates or updates the order together with its items and payments
	Save(ctx context.Context, order *Order) error

	// Delete removes the order and cascades to its items and payments
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOrderNumber checks if an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
}
