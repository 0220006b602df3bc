package partner

import (
	"time"

	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Company string `json:"company"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer to its API representation
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Company:   customer.Company,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Notes:     customer.Notes,
		Active:    customer.Active,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
