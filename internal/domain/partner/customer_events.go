package partner

import (
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated = "CustomerCreated"
	EventTypeCustomerUpdated = "CustomerUpdated"
	EventTypeCustomerDeleted = "CustomerDeleted"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Company    string    `json:"company,omitempty"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Company:         customer.Company,
	}
}

// CustomerUpdatedEvent is published when a customer's details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
	}
}

// CustomerDeletedEvent is published when a customer is deleted
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(customer *Customer) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeleted, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
	}
}
