package audit

import (
	"context"

	"github.com/google/uuid"
)

// Query holds the retrieval filters for the audit trail. Filters are
// passed through to storage untouched; zero values mean "no filter".
type Query struct {
	Limit      int
	Offset     int
	OrderID    *uuid.UUID
	CustomerID *uuid.UUID
	EntityType string
	ActionType ActionType
}

// LogRepository persists the append-only audit trail. Entries are never
// updated; the only mutations are append and reference nulling on
// cascading deletes.
type LogRepository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *LogEntry) error

	// FindRecent returns the newest entries, ordered by createdAt descending
	FindRecent(ctx context.Context, limit int) ([]LogEntry, error)

	// Find returns entries matching the query, ordered by createdAt descending
	Find(ctx context.Context, query Query) ([]LogEntry, error)

	// Count counts entries matching the query
	Count(ctx context.Context, query Query) (int64, error)

	// NullOrderRefs nulls the order reference on every entry pointing at
	// the deleted order, retaining the entries
	NullOrderRefs(ctx context.Context, orderID uuid.UUID) error

	// NullCustomerRefs nulls the customer reference on every entry
	// pointing at the deleted customer
	NullCustomerRefs(ctx context.Context, customerID uuid.UUID) error
}
