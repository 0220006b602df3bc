package partner

import (
	"strings"
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
)

// Customer represents a buyer placing sourcing orders
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
	Notes   string
	Active  bool
}

// NewCustomer creates a new customer
func NewCustomer(name, company, email, phone string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Company:           company,
		Email:             email,
		Phone:             phone,
		Active:            true,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact details
func (c *Customer) Update(name, company, email, phone, address, notes string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if email != "" && !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}

	c.Name = name
	c.Company = company
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.Notes = notes
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}
