package ordering

import (
	"context"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionService tracks orders through the manufacturing pipeline
type ProductionService struct {
	orderRepo      ordering.OrderRepository
	clock          shared.Clock
	eventPublisher shared.EventPublisher
}

// NewProductionService creates a new ProductionService
func NewProductionService(orderRepo ordering.OrderRepository, clock shared.Clock) *ProductionService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &ProductionService{
		orderRepo: orderRepo,
		clock:     clock,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *ProductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AdvanceStage moves the order to the given pipeline stage, recording
// the milestone timestamp first-write-wins when one is supplied
func (s *ProductionService) AdvanceStage(ctx context.Context, orderID uuid.UUID, req AdvanceStageRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AdvanceStage(ordering.ProductionStage(req.Stage), req.Timestamp); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range order.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		order.ClearDomainEvents()
	}

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// GetNextMilestone returns the order's first upcoming milestone in
// pipeline order, or nil when none is in the future
func (s *ProductionService) GetNextMilestone(ctx context.Context, orderID uuid.UUID) (*MilestoneResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	milestone := order.NextMilestone(s.clock.Now())
	if milestone == nil {
		return nil, nil
	}
	return &MilestoneResponse{Stage: string(milestone.Stage), Date: milestone.Date}, nil
}

// ListStages returns the fixed pipeline in enumeration order
func (s *ProductionService) ListStages() []string {
	stages := ordering.AllProductionStages()
	names := make([]string, len(stages))
	for idx, stage := range stages {
		names[idx] = string(stage)
	}
	return names
}
