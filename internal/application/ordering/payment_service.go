package ordering

import (
	"context"
	"sort"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentService handles the payment ledger of an order. Amount bounds
// and status derivation live in the aggregate; this service loads the
// order, applies the ledger mutation and persists the result atomically.
type PaymentService struct {
	orderRepo      ordering.OrderRepository
	clock          shared.Clock
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(orderRepo ordering.OrderRepository, clock shared.Clock) *PaymentService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &PaymentService{
		orderRepo: orderRepo,
		clock:     clock,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPayment records a pay-direction ledger entry against the order
func (s *PaymentService) RecordPayment(ctx context.Context, orderID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	return s.record(ctx, orderID, req, ordering.PaymentDirectionPay)
}

// RecordRefund records a refund-direction ledger entry against the order
func (s *PaymentService) RecordRefund(ctx context.Context, orderID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	return s.record(ctx, orderID, req, ordering.PaymentDirectionRefund)
}

func (s *PaymentService) record(ctx context.Context, orderID uuid.UUID, req RecordPaymentRequest, direction ordering.PaymentDirection) (*PaymentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paidAt := s.clock.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	amount := valueobject.NewMoney(req.Amount)
	method := ordering.PaymentMethod(req.Method)

	var payment *ordering.Payment
	if direction == ordering.PaymentDirectionRefund {
		payment, err = order.RecordRefund(amount, method, req.Reference, paidAt)
	} else {
		payment, err = order.RecordPayment(amount, method, req.Reference, paidAt)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// DeletePayment hard-removes a ledger entry and persists the recomputed
// summary
func (s *PaymentService) DeletePayment(ctx context.Context, orderID, paymentID uuid.UUID) (*PaymentSummaryResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.DeletePayment(paymentID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToPaymentSummaryResponse(order.Summary())
	return &response, nil
}

// GetSummary returns the derived payment summary of an order
func (s *PaymentService) GetSummary(ctx context.Context, orderID uuid.UUID) (*PaymentSummaryResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentSummaryResponse(order.Summary())
	return &response, nil
}

// ListPayments returns the full ledger of an order, newest first
func (s *PaymentService) ListPayments(ctx context.Context, orderID uuid.UUID) ([]PaymentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(order.Payments))
	for idx := range order.Payments {
		responses[idx] = ToPaymentResponse(&order.Payments[idx])
	}
	// the repository preserves no row order, so sort here; ID breaks
	// ties between entries paid at the same instant
	sort.Slice(responses, func(i, j int) bool {
		if !responses[i].PaidAt.Equal(responses[j].PaidAt) {
			return responses[i].PaidAt.After(responses[j].PaidAt)
		}
		return responses[i].ID.String() < responses[j].ID.String()
	})
	return responses, nil
}

func (s *PaymentService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
