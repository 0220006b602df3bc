package audit

import (
	"context"
	"fmt"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/finance"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/garmsource/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventRecorder subscribes to domain events and appends one audit entry
// per event. It is the only writer of the audit trail in normal
// operation; everything else goes through it via the event bus.
type EventRecorder struct {
	logRepo audit.LogRepository
	logger  *zap.Logger
}

// NewEventRecorder creates a new EventRecorder
func NewEventRecorder(logRepo audit.LogRepository, logger *zap.Logger) *EventRecorder {
	return &EventRecorder{
		logRepo: logRepo,
		logger:  logger,
	}
}

// EventTypes returns an empty slice: the recorder observes every event
// and decides per event whether it maps to an audit action
func (r *EventRecorder) EventTypes() []string {
	return nil
}

// Handle maps a domain event to an audit entry and appends it. Events
// with no audit mapping are skipped silently. Deletion events first
// null the dangling references on older entries; the entries themselves
// are retained.
func (r *EventRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ordering.OrderDeletedEvent:
		if err := r.logRepo.NullOrderRefs(ctx, e.OrderID); err != nil {
			r.logger.Error("failed to null order refs on audit entries",
				zap.String("order_id", e.OrderID.String()),
				zap.Error(err),
			)
		}
	case *partner.CustomerDeletedEvent:
		if err := r.logRepo.NullCustomerRefs(ctx, e.CustomerID); err != nil {
			r.logger.Error("failed to null customer refs on audit entries",
				zap.String("customer_id", e.CustomerID.String()),
				zap.Error(err),
			)
		}
	}

	entry, err := r.entryFor(event)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	if err := r.logRepo.Append(ctx, entry); err != nil {
		r.logger.Error("failed to append audit entry",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *EventRecorder) entryFor(event shared.DomainEvent) (*audit.LogEntry, error) {
	switch e := event.(type) {
	case *ordering.OrderCreatedEvent:
		return audit.NewLogEntry(audit.ActionOrderCreated, "Order", e.OrderID,
			fmt.Sprintf("Order %s created for %s", e.OrderNumber, e.CustomerName),
			audit.EntryRefs{OrderID: &e.OrderID, CustomerID: &e.CustomerID})

	case *ordering.OrderUpdatedEvent:
		return audit.NewLogEntry(audit.ActionOrderUpdated, "Order", e.OrderID,
			fmt.Sprintf("Order %s updated, grand total %s", e.OrderNumber, e.GrandTotal.StringFixed(2)),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.OrderDeletedEvent:
		// no order ref: the order row is gone
		return audit.NewLogEntry(audit.ActionOrderDeleted, "Order", e.OrderID,
			fmt.Sprintf("Order %s deleted", e.OrderNumber),
			audit.EntryRefs{CustomerID: &e.CustomerID})

	case *ordering.OrderStatusChangedEvent:
		return audit.NewLogEntry(audit.ActionOrderStatusChanged, "Order", e.OrderID,
			fmt.Sprintf("Order %s moved from %s to %s", e.OrderNumber, e.OldStatus, e.NewStatus),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.OrderItemAddedEvent:
		return audit.NewLogEntry(audit.ActionOrderUpdated, "Order", e.OrderID,
			fmt.Sprintf("Added %d x %s", e.Quantity, e.ProductName),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.OrderItemRemovedEvent:
		return audit.NewLogEntry(audit.ActionOrderUpdated, "Order", e.OrderID,
			"Order item removed",
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.PaymentReceivedEvent:
		return audit.NewLogEntry(audit.ActionPaymentReceived, "Order", e.OrderID,
			fmt.Sprintf("Payment of %s received for order %s (%s)", e.Amount.StringFixed(2), e.OrderNumber, e.Method),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.PaymentRefundedEvent:
		return audit.NewLogEntry(audit.ActionPaymentRefunded, "Order", e.OrderID,
			fmt.Sprintf("Refund of %s issued for order %s (%s)", e.Amount.StringFixed(2), e.OrderNumber, e.Method),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.PaymentDeletedEvent:
		return audit.NewLogEntry(audit.ActionPaymentDeleted, "Order", e.OrderID,
			"Payment entry deleted",
			audit.EntryRefs{OrderID: &e.OrderID})

	case *ordering.ProductionStageAdvancedEvent:
		return audit.NewLogEntry(audit.ActionStageAdvanced, "Order", e.OrderID,
			fmt.Sprintf("Order %s moved from stage %s to %s", e.OrderNumber, e.OldStage, e.NewStage),
			audit.EntryRefs{OrderID: &e.OrderID})

	case *partner.CustomerCreatedEvent:
		return audit.NewLogEntry(audit.ActionCustomerCreated, "Customer", e.CustomerID,
			fmt.Sprintf("Customer %s created", e.Name),
			audit.EntryRefs{CustomerID: &e.CustomerID})

	case *partner.CustomerUpdatedEvent:
		return audit.NewLogEntry(audit.ActionCustomerUpdated, "Customer", e.CustomerID,
			fmt.Sprintf("Customer %s updated", e.Name),
			audit.EntryRefs{CustomerID: &e.CustomerID})

	case *partner.CustomerDeletedEvent:
		return audit.NewLogEntry(audit.ActionCustomerDeleted, "Customer", e.CustomerID,
			fmt.Sprintf("Customer %s deleted", e.Name),
			audit.EntryRefs{})

	case *catalog.ProductCreatedEvent:
		return audit.NewLogEntry(audit.ActionProductCreated, "Product", e.ProductID,
			fmt.Sprintf("Product %s (%s) created", e.Name, e.Code),
			audit.EntryRefs{})

	case *catalog.ProductUpdatedEvent:
		return audit.NewLogEntry(audit.ActionProductUpdated, "Product", e.ProductID,
			fmt.Sprintf("Product %s (%s) updated", e.Name, e.Code),
			audit.EntryRefs{})

	case *catalog.ProductPriceChangedEvent:
		return audit.NewLogEntry(audit.ActionProductUpdated, "Product", e.ProductID,
			fmt.Sprintf("Product %s repriced to %s", e.Code, e.UnitPrice.StringFixed(2)),
			audit.EntryRefs{})

	case *catalog.ProductDeletedEvent:
		return audit.NewLogEntry(audit.ActionProductDeleted, "Product", e.ProductID,
			fmt.Sprintf("Product %s (%s) deleted", e.Name, e.Code),
			audit.EntryRefs{})

	case *finance.ExpenseRecordedEvent:
		return audit.NewLogEntry(audit.ActionExpenseCreated, "Expense", e.ExpenseID,
			fmt.Sprintf("Expense of %s recorded under %s", e.Amount.StringFixed(2), e.Category),
			audit.EntryRefs{})

	case *finance.ExpenseUpdatedEvent:
		return audit.NewLogEntry(audit.ActionExpenseUpdated, "Expense", e.ExpenseID,
			fmt.Sprintf("Expense under %s updated", e.Category),
			audit.EntryRefs{})

	case *finance.ExpenseDeletedEvent:
		return audit.NewLogEntry(audit.ActionExpenseDeleted, "Expense", e.ExpenseID,
			"Expense deleted",
			audit.EntryRefs{})
	}

	return nil, nil
}
