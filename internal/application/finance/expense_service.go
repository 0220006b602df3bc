package finance

import (
	"context"
	"time"

	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ExpenseService handles expense business operations
type ExpenseService struct {
	expenseRepo    finance.ExpenseRepository
	clock          shared.Clock
	eventPublisher shared.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, clock shared.Clock) *ExpenseService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &ExpenseService{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *ExpenseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record records a new expense. When no incurred time is given the
// expense is dated now.
func (s *ExpenseService) Record(ctx context.Context, req RecordExpenseRequest) (*ExpenseResponse, error) {
	incurredAt := s.clock.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	expense, err := finance.NewExpenseRecord(finance.ExpenseCategory(req.Category), valueobject.NewMoney(req.Amount), req.Description, incurredAt)
	if err != nil {
		return nil, err
	}
	expense.Reference = req.Reference

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, expense)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense by ID
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses matching the filter
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "incurred_at"
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
	if filter.Category != nil {
		domainFilter.Filters["category"] = *filter.Category
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	expenses, err := s.expenseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToExpenseResponses(expenses), total, nil
}

// ListByPeriod retrieves expenses incurred within [start, end)
func (s *ExpenseService) ListByPeriod(ctx context.Context, start, end time.Time) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return ToExpenseResponses(expenses), nil
}

// Update updates an expense's details
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category := expense.Category
	if req.Category != nil {
		category = finance.ExpenseCategory(*req.Category)
	}
	amount := expense.GetAmountMoney()
	if req.Amount != nil {
		amount = valueobject.NewMoney(*req.Amount)
	}
	description := expense.Description
	if req.Description != nil {
		description = *req.Description
	}
	reference := expense.Reference
	if req.Reference != nil {
		reference = *req.Reference
	}
	incurredAt := expense.IncurredAt
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	if err := expense.Update(category, amount, description, reference, incurredAt); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, expense)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete deletes an expense
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	expense.AddDomainEvent(finance.NewExpenseDeletedEvent(expense))
	s.publishEvents(ctx, expense)

	return nil
}

// Categories returns every valid expense category in a stable order
func (s *ExpenseService) Categories() []string {
	categories := finance.AllExpenseCategories()
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = category.String()
	}
	return names
}

func (s *ExpenseService) publishEvents(ctx context.Context, expense *finance.ExpenseRecord) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range expense.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	expense.ClearDomainEvents()
}
