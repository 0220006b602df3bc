package ordering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestOrderService(t *testing.T) (*OrderService, *MockOrderRepository, *MockProductRepository, *MockCustomerRepository) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	service := NewOrderService(orderRepo, productRepo, customerRepo, shared.FixedClock(testNow))
	return service, orderRepo, productRepo, customerRepo
}

func testCustomer(t *testing.T) *partner.Customer {
	customer, err := partner.NewCustomer("Acme Apparel", "Acme Inc", "buyer@acme.test", "")
	require.NoError(t, err)
	return customer
}

func testProduct(t *testing.T, stock int) *catalog.Product {
	product, err := catalog.NewProduct("TSHIRT-001", "Basic Tee", valueobject.NewMoneyFromFloat(100), decimal.NewFromInt(5), stock)
	require.NoError(t, err)
	return product
}

func TestOrderService_Create(t *testing.T) {
	t.Run("creates order and reserves stock", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestOrderService(t)
		customer := testCustomer(t)
		product := testProduct(t, 50)

		orderRepo.On("ExistsByOrderNumber", mock.Anything, "ORD-1").Return(false, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		response, err := service.Create(context.Background(), CreateOrderRequest{
			OrderNumber: "ORD-1",
			CustomerID:  customer.ID,
			Items: []CreateOrderItemInput{
				{ProductID: product.ID, Quantity: 2, DiscountPercentage: decimal.NewFromInt(10)},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "ORD-1", response.OrderNumber)
		assert.Equal(t, "Acme Apparel", response.CustomerName)
		assert.Equal(t, "189", response.GrandTotal.String())
		assert.Equal(t, "unpaid", response.PaymentStatus)
		assert.Equal(t, 48, product.Stock)
		orderRepo.AssertExpectations(t)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate order number", func(t *testing.T) {
		service, orderRepo, _, _ := newTestOrderService(t)
		orderRepo.On("ExistsByOrderNumber", mock.Anything, "ORD-1").Return(true, nil)

		_, err := service.Create(context.Background(), CreateOrderRequest{
			OrderNumber: "ORD-1",
			CustomerID:  uuid.New(),
			Items:       []CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.Equal(t, "DUPLICATE_ORDER_NUMBER", err.(*shared.DomainError).Code)
	})

	t.Run("out of stock aborts without saving", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestOrderService(t)
		customer := testCustomer(t)
		product := testProduct(t, 5)

		orderRepo.On("ExistsByOrderNumber", mock.Anything, "ORD-1").Return(false, nil)
		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := service.Create(context.Background(), CreateOrderRequest{
			OrderNumber: "ORD-1",
			CustomerID:  customer.ID,
			Items: []CreateOrderItemInput{
				{ProductID: product.ID, Quantity: 6},
			},
		})
		require.Error(t, err)
		assert.Equal(t, shared.ErrOutOfStock, err)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing customer propagates", func(t *testing.T) {
		service, orderRepo, _, customerRepo := newTestOrderService(t)
		customerID := uuid.New()

		orderRepo.On("ExistsByOrderNumber", mock.Anything, "ORD-1").Return(false, nil)
		customerRepo.On("FindByID", mock.Anything, customerID).Return(nil, errors.New("not found"))

		_, err := service.Create(context.Background(), CreateOrderRequest{
			OrderNumber: "ORD-1",
			CustomerID:  customerID,
			Items:       []CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		assert.Error(t, err)
	})
}

func TestOrderService_AddItem(t *testing.T) {
	service, orderRepo, productRepo, _ := newTestOrderService(t)
	customer := testCustomer(t)
	first := testProduct(t, 50)

	order, err := ordering.NewOrder("ORD-1", customer.ID, customer.Name)
	require.NoError(t, err)
	_, err = order.AddItem(first.Snapshot(), 1, decimal.Zero)
	require.NoError(t, err)

	second, err := catalog.NewProduct("HOODIE-002", "Zip Hoodie", valueobject.NewMoneyFromFloat(40), decimal.Zero, 10)
	require.NoError(t, err)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	productRepo.On("FindByID", mock.Anything, second.ID).Return(second, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	productRepo.On("Save", mock.Anything, second).Return(nil)

	response, err := service.AddItem(context.Background(), order.ID, AddOrderItemRequest{
		ProductID: second.ID,
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Len(t, response.Items, 2)
	assert.Equal(t, "225", response.GrandTotal.String())
	assert.Equal(t, 7, second.Stock)
}

func TestOrderService_UpdateItem(t *testing.T) {
	service, orderRepo, productRepo, _ := newTestOrderService(t)
	product := testProduct(t, 10)

	order, err := ordering.NewOrder("ORD-1", uuid.New(), "Acme")
	require.NoError(t, err)
	item, err := order.AddItem(product.Snapshot(), 2, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, product.AdjustStock(-2))

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	quantity := 5
	response, err := service.UpdateItem(context.Background(), order.ID, item.ID, UpdateOrderItemRequest{
		Quantity: &quantity,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, response.Items[0].Quantity)
	assert.Equal(t, 5, product.Stock)

	// the item's own reservation counts: 5 in stock + 5 reserved = 10
	quantity = 10
	_, err = service.UpdateItem(context.Background(), order.ID, item.ID, UpdateOrderItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)

	quantity = 11
	_, err = service.UpdateItem(context.Background(), order.ID, item.ID, UpdateOrderItemRequest{Quantity: &quantity})
	require.Error(t, err)
	assert.Equal(t, shared.ErrOutOfStock, err)
}

func TestOrderService_SetStatus(t *testing.T) {
	service, orderRepo, _, _ := newTestOrderService(t)

	order, err := ordering.NewOrder("ORD-1", uuid.New(), "Acme")
	require.NoError(t, err)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, order).Return(nil)

	response, err := service.SetStatus(context.Background(), order.ID, SetOrderStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", response.Status)

	_, err = service.SetStatus(context.Background(), order.ID, SetOrderStatusRequest{Status: "archived"})
	assert.Error(t, err)
}

func TestOrderService_List(t *testing.T) {
	service, orderRepo, _, _ := newTestOrderService(t)

	order, err := ordering.NewOrder("ORD-1", uuid.New(), "Acme")
	require.NoError(t, err)
	_, err = order.AddItem(testProduct(t, 10).Snapshot(), 1, decimal.Zero)
	require.NoError(t, err)

	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]ordering.Order{*order}, nil)
	orderRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	rows, total, err := service.List(context.Background(), OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "ORD-1", rows[0].OrderNumber)
	assert.Equal(t, 1, rows[0].ItemCount)

	// filter defaults were applied
	filter := orderRepo.Calls[0].Arguments.Get(1).(shared.Filter)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.PageSize)
	assert.Equal(t, "created_at", filter.OrderBy)
}

func TestOrderService_Delete(t *testing.T) {
	service, orderRepo, productRepo, _ := newTestOrderService(t)
	product := testProduct(t, 10)

	order, err := ordering.NewOrder("ORD-1", uuid.New(), "Acme")
	require.NoError(t, err)
	_, err = order.AddItem(product.Snapshot(), 4, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, product.AdjustStock(-4))

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)
	orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

	require.NoError(t, service.Delete(context.Background(), order.ID))
	assert.Equal(t, 10, product.Stock)
	orderRepo.AssertExpectations(t)
}
