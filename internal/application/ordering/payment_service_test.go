package ordering

import (
	"context"
	"testing"
	"time"

	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newLedgerOrder builds an order with grandTotal=189 for ledger tests
func newLedgerOrder(t *testing.T) *ordering.Order {
	order, err := ordering.NewOrder("ORD-1", uuid.New(), "Acme")
	require.NoError(t, err)
	_, err = order.AddItem(testProduct(t, 50).Snapshot(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.Equal(t, "189", order.GrandTotal.String())
	return order
}

func TestPaymentService_RecordPayment(t *testing.T) {
	t.Run("records payment and derives status", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewPaymentService(orderRepo, shared.FixedClock(testNow))
		order := newLedgerOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		response, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(189),
			Method: "bank_transfer",
		})
		require.NoError(t, err)

		assert.Equal(t, "pay", response.Direction)
		assert.Equal(t, testNow, response.PaidAt)
		assert.Equal(t, ordering.PaymentStatusPaid, order.PaymentStatus)
	})

	t.Run("overpayment is rejected without saving", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewPaymentService(orderRepo, shared.FixedClock(testNow))
		order := newLedgerOrder(t)

		orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		_, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(200),
			Method: "cash",
		})
		require.Error(t, err)
		assert.Equal(t, shared.ErrInvalidAmount, err)
		assert.Empty(t, order.Payments)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_RecordRefund(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewPaymentService(orderRepo, shared.FixedClock(testNow))
	order := newLedgerOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	_, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(189),
		Method: "card",
	})
	require.NoError(t, err)

	response, err := service.RecordRefund(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(50),
		Method: "card",
	})
	require.NoError(t, err)
	assert.Equal(t, "refund", response.Direction)
	assert.Equal(t, ordering.PaymentStatusRefunded, order.PaymentStatus)

	// refund beyond the net paid amount
	_, err = service.RecordRefund(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(200),
		Method: "card",
	})
	assert.Equal(t, shared.ErrInvalidAmount, err)
}

func TestPaymentService_DeletePayment(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewPaymentService(orderRepo, shared.FixedClock(testNow))
	order := newLedgerOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	payment, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: "cash",
	})
	require.NoError(t, err)

	summary, err := service.DeletePayment(context.Background(), order.ID, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.PaymentCount)
	assert.Equal(t, "unpaid", summary.Status)

	_, err = service.DeletePayment(context.Background(), order.ID, uuid.New())
	assert.Error(t, err)
}

func TestPaymentService_ListPayments(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewPaymentService(orderRepo, shared.FixedClock(testNow))
	order := newLedgerOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	earlier := testNow.Add(-48 * time.Hour)
	later := testNow.Add(-1 * time.Hour)
	first, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(100), Method: "cash", PaidAt: &later,
	})
	require.NoError(t, err)
	second, err := service.RecordPayment(context.Background(), order.ID, RecordPaymentRequest{
		Amount: decimal.NewFromInt(89), Method: "cash", PaidAt: &earlier,
	})
	require.NoError(t, err)

	// newest paid_at first, regardless of the order entries were recorded in
	payments, err := service.ListPayments(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, first.ID, payments[0].ID)
	assert.Equal(t, second.ID, payments[1].ID)
}
