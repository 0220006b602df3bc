package partner

import (
	"context"

	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer business operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Company, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	customer.Address = req.Address
	customer.Notes = req.Notes

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	if req.Name != nil {
		name = *req.Name
	}
	company := customer.Company
	if req.Company != nil {
		company = *req.Company
	}
	email := customer.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := customer.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := customer.Address
	if req.Address != nil {
		address = *req.Address
	}
	notes := customer.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := customer.Update(name, company, email, phone, address, notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate marks a customer as active
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate marks a customer as inactive. Their orders are untouched;
// each order keeps the customer name it captured at creation.
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *CustomerService) setActive(ctx context.Context, id uuid.UUID, active bool) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		customer.Activate()
	} else {
		customer.Deactivate()
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer. Audit entries that referenced the customer
// keep their text but lose the reference.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	customer.AddDomainEvent(partner.NewCustomerDeletedEvent(customer))
	s.publishEvents(ctx, customer)

	return nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range customer.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	customer.ClearDomainEvents()
}
