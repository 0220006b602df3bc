package audit

import (
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActionType is the closed set of auditable domain actions. Unknown
// labels are rejected at record time so the trail stays queryable.
type ActionType string

const (
	ActionOrderCreated       ActionType = "order_created"
	ActionOrderUpdated       ActionType = "order_updated"
	ActionOrderDeleted       ActionType = "order_deleted"
	ActionOrderStatusChanged ActionType = "order_status_changed"
	ActionStageAdvanced      ActionType = "stage_advanced"
	ActionPaymentReceived    ActionType = "payment_received"
	ActionPaymentRefunded    ActionType = "payment_refunded"
	ActionPaymentDeleted     ActionType = "payment_deleted"
	ActionCustomerCreated    ActionType = "customer_created"
	ActionCustomerUpdated    ActionType = "customer_updated"
	ActionCustomerDeleted    ActionType = "customer_deleted"
	ActionProductCreated     ActionType = "product_created"
	ActionProductUpdated     ActionType = "product_updated"
	ActionProductDeleted     ActionType = "product_deleted"
	ActionExpenseCreated     ActionType = "expense_created"
	ActionExpenseUpdated     ActionType = "expense_updated"
	ActionExpenseDeleted     ActionType = "expense_deleted"
)

// IsValid checks if the action type belongs to the closed set
func (a ActionType) IsValid() bool {
	switch a {
	case ActionOrderCreated, ActionOrderUpdated, ActionOrderDeleted,
		ActionOrderStatusChanged, ActionStageAdvanced,
		ActionPaymentReceived, ActionPaymentRefunded, ActionPaymentDeleted,
		ActionCustomerCreated, ActionCustomerUpdated, ActionCustomerDeleted,
		ActionProductCreated, ActionProductUpdated, ActionProductDeleted,
		ActionExpenseCreated, ActionExpenseUpdated, ActionExpenseDeleted:
		return true
	}
	return false
}

// String returns the string representation of ActionType
func (a ActionType) String() string {
	return string(a)
}

// LogEntry is one append-only line of the audit trail. Entries are never
// mutated; deleting a referenced order or customer nulls the reference
// but keeps the entry.
type LogEntry struct {
	ID          uuid.UUID
	ActionType  ActionType
	EntityType  string
	EntityID    uuid.UUID
	OrderID     *uuid.UUID
	CustomerID  *uuid.UUID
	Description string
	Metadata    map[string]any
	PerformedBy string
	CreatedAt   time.Time
}

// EntryRefs carries the optional order/customer references of an entry
type EntryRefs struct {
	OrderID    *uuid.UUID
	CustomerID *uuid.UUID
}

// NewLogEntry creates an audit entry. Recording is a pure append and
// only fails on an action type outside the closed set or a missing
// subject.
func NewLogEntry(actionType ActionType, entityType string, entityID uuid.UUID, description string, refs EntryRefs) (*LogEntry, error) {
	if !actionType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION_TYPE", "Unknown audit action type")
	}
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Entity type cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}

	return &LogEntry{
		ID:          uuid.New(),
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		OrderID:     refs.OrderID,
		CustomerID:  refs.CustomerID,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// WithMetadata attaches free-form metadata to the entry
func (e *LogEntry) WithMetadata(metadata map[string]any) *LogEntry {
	e.Metadata = metadata
	return e
}

// WithPerformedBy records who performed the action
func (e *LogEntry) WithPerformedBy(performedBy string) *LogEntry {
	e.PerformedBy = performedBy
	return e
}

// ClearOrderRef nulls the order reference after a cascading order
// deletion; the entry itself is retained
func (e *LogEntry) ClearOrderRef() {
	e.OrderID = nil
}

// ClearCustomerRef nulls the customer reference after a cascading
// customer deletion
func (e *LogEntry) ClearCustomerRef() {
	e.CustomerID = nil
}
