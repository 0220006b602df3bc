package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogEntry(t *testing.T) {
	t.Run("creates entry with references", func(t *testing.T) {
		orderID := uuid.New()
		customerID := uuid.New()

		entry, err := NewLogEntry(ActionPaymentReceived, "Order", orderID, "Payment of 189.00 received", EntryRefs{
			OrderID:    &orderID,
			CustomerID: &customerID,
		})
		require.NoError(t, err)

		assert.Equal(t, ActionPaymentReceived, entry.ActionType)
		assert.Equal(t, "Order", entry.EntityType)
		assert.Equal(t, orderID, entry.EntityID)
		assert.Equal(t, orderID, *entry.OrderID)
		assert.Equal(t, customerID, *entry.CustomerID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("rejects action type outside the closed set", func(t *testing.T) {
		_, err := NewLogEntry(ActionType("order_archived"), "Order", uuid.New(), "", EntryRefs{})
		assert.Error(t, err)
	})

	t.Run("rejects missing subject", func(t *testing.T) {
		_, err := NewLogEntry(ActionOrderCreated, "", uuid.New(), "", EntryRefs{})
		assert.Error(t, err)

		_, err = NewLogEntry(ActionOrderCreated, "Order", uuid.Nil, "", EntryRefs{})
		assert.Error(t, err)
	})
}

func TestLogEntry_ClearRefs(t *testing.T) {
	orderID := uuid.New()
	customerID := uuid.New()

	entry, err := NewLogEntry(ActionOrderDeleted, "Order", orderID, "Order deleted", EntryRefs{
		OrderID:    &orderID,
		CustomerID: &customerID,
	})
	require.NoError(t, err)

	entry.ClearOrderRef()
	assert.Nil(t, entry.OrderID)
	assert.NotNil(t, entry.CustomerID)

	entry.ClearCustomerRef()
	assert.Nil(t, entry.CustomerID)
}

func TestActionType_IsValid(t *testing.T) {
	assert.True(t, ActionOrderCreated.IsValid())
	assert.True(t, ActionExpenseDeleted.IsValid())
	assert.False(t, ActionType("login").IsValid())
}
