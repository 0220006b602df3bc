package audit

import (
	"context"
	"testing"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventRecorder_Handle(t *testing.T) {
	t.Run("order created maps to an audit entry", func(t *testing.T) {
		logRepo := new(MockLogRepository)
		recorder := NewEventRecorder(logRepo, zap.NewNop())

		order, err := ordering.NewOrder("ORD-9", uuid.New(), "Acme Apparel")
		require.NoError(t, err)
		event := order.GetDomainEvents()[0]

		var appended *audit.LogEntry
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.LogEntry")).
			Run(func(args mock.Arguments) {
				appended = args.Get(1).(*audit.LogEntry)
			}).Return(nil)

		require.NoError(t, recorder.Handle(context.Background(), event))

		require.NotNil(t, appended)
		assert.Equal(t, audit.ActionOrderCreated, appended.ActionType)
		assert.Equal(t, "Order", appended.EntityType)
		assert.Equal(t, order.ID, appended.EntityID)
		assert.Equal(t, order.ID, *appended.OrderID)
		assert.Contains(t, appended.Description, "ORD-9")
	})

	t.Run("stage advance maps to stage_advanced", func(t *testing.T) {
		logRepo := new(MockLogRepository)
		recorder := NewEventRecorder(logRepo, zap.NewNop())

		order, err := ordering.NewOrder("ORD-9", uuid.New(), "Acme Apparel")
		require.NoError(t, err)
		order.ClearDomainEvents()
		require.NoError(t, order.AdvanceStage(ordering.StageSewingStart, nil))

		var appended *audit.LogEntry
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.LogEntry")).
			Run(func(args mock.Arguments) {
				appended = args.Get(1).(*audit.LogEntry)
			}).Return(nil)

		require.NoError(t, recorder.Handle(context.Background(), order.GetDomainEvents()[0]))
		require.NotNil(t, appended)
		assert.Equal(t, audit.ActionStageAdvanced, appended.ActionType)
		assert.Contains(t, appended.Description, "sewing_start")
	})

	t.Run("order deletion nulls older refs and keeps the entries", func(t *testing.T) {
		logRepo := new(MockLogRepository)
		recorder := NewEventRecorder(logRepo, zap.NewNop())

		customerID := uuid.New()
		order, err := ordering.NewOrder("ORD-9", customerID, "Acme Apparel")
		require.NoError(t, err)
		order.ClearDomainEvents()
		event := ordering.NewOrderDeletedEvent(order)

		logRepo.On("NullOrderRefs", mock.Anything, order.ID).Return(nil)

		var appended *audit.LogEntry
		logRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.LogEntry")).
			Run(func(args mock.Arguments) {
				appended = args.Get(1).(*audit.LogEntry)
			}).Return(nil)

		require.NoError(t, recorder.Handle(context.Background(), event))

		logRepo.AssertCalled(t, "NullOrderRefs", mock.Anything, order.ID)
		require.NotNil(t, appended)
		assert.Equal(t, audit.ActionOrderDeleted, appended.ActionType)
		assert.Nil(t, appended.OrderID)
		assert.Equal(t, customerID, *appended.CustomerID)
	})

	t.Run("unmapped events are skipped", func(t *testing.T) {
		logRepo := new(MockLogRepository)
		recorder := NewEventRecorder(logRepo, zap.NewNop())

		event := shared.NewBaseDomainEvent("SomethingElse", "Other", uuid.New())
		require.NoError(t, recorder.Handle(context.Background(), &event))
		logRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}
