package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	orderingapp "github.com/garmsource/backend/internal/application/ordering"
	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Maya Chen", "Chen Imports", "maya@chenimports.example", "+8613700000000")
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("TSH-001", "Cotton crew tee", valueobject.NewMoneyFromFloat(12.50), decimal.NewFromInt(10), 100)
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T, customer *partner.Customer, product *catalog.Product) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder("SO-1001", customer.ID, customer.Name)
	require.NoError(t, err)
	_, err = order.AddItem(product.Snapshot(), 3, decimal.Zero)
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func setupOrderRouter(orderRepo *MockOrderRepository, productRepo *MockProductRepository, customerRepo *MockCustomerRepository) *gin.Engine {
	orderService := orderingapp.NewOrderService(orderRepo, productRepo, customerRepo, nil)
	paymentService := orderingapp.NewPaymentService(orderRepo, nil)
	productionService := orderingapp.NewProductionService(orderRepo, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewOrderHandler(orderService, paymentService, productionService).RegisterRoutes(api)
	return engine
}

func decodeResponse(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(body.Bytes(), &payload))
	return payload
}

func TestOrderHandler_Create(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	engine := setupOrderRouter(orderRepo, productRepo, customerRepo)

	customer := newTestCustomer(t)
	product := newTestProduct(t)

	orderRepo.On("ExistsByOrderNumber", mock.Anything, "SO-2001").Return(false, nil)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	body := map[string]any{
		"order_number": "SO-2001",
		"customer_id":  customer.ID,
		"items": []map[string]any{
			{"product_id": product.ID, "quantity": 5},
		},
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	payload := decodeResponse(t, w.Body)
	assert.Equal(t, true, payload["success"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, "SO-2001", data["order_number"])
	assert.Equal(t, customer.Name, data["customer_name"])
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestOrderHandler_Create_DuplicateNumber(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	orderRepo.On("ExistsByOrderNumber", mock.Anything, "SO-2001").Return(true, nil)

	body := map[string]any{
		"order_number": "SO-2001",
		"customer_id":  uuid.New(),
		"items": []map[string]any{
			{"product_id": uuid.New(), "quantity": 1},
		},
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	payload := decodeResponse(t, w.Body)
	errInfo := payload["error"].(map[string]any)
	assert.Equal(t, "ERR_ALREADY_EXISTS", errInfo["code"])
}

func TestOrderHandler_Create_MissingItems(t *testing.T) {
	engine := setupOrderRouter(new(MockOrderRepository), new(MockProductRepository), new(MockCustomerRepository))

	body := map[string]any{
		"order_number": "SO-2001",
		"customer_id":  uuid.New(),
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByID(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	product := newTestProduct(t)
	order := newTestOrder(t, customer, product)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "SO-1001", data["order_number"])
	assert.NotNil(t, data["payment_summary"])
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	missing := uuid.New()
	orderRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+missing.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeResponse(t, w.Body)
	errInfo := payload["error"].(map[string]any)
	assert.Equal(t, "ERR_NOT_FOUND", errInfo["code"])
}

func TestOrderHandler_GetByID_InvalidID(t *testing.T) {
	engine := setupOrderRouter(new(MockOrderRepository), new(MockProductRepository), new(MockCustomerRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_GetByNumber(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))
	orderRepo.On("FindByOrderNumber", mock.Anything, "SO-1001").Return(order, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/number/SO-1001", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderHandler_List(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))

	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]ordering.Order{*order}, nil)
	orderRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=pending&page=1&page_size=10", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	meta := payload["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
	assert.Equal(t, float64(10), meta["page_size"])
}

func TestOrderHandler_RecordPayment(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	body := map[string]any{
		"amount": "20.00",
		"method": "bank_transfer",
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/payments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "pay", data["direction"])
	assert.Equal(t, "bank_transfer", data["method"])
}

func TestOrderHandler_RecordPayment_InvalidMethod(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	body := map[string]any{
		"amount": "20.00",
		"method": "barter",
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/payments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderHandler_GetPaymentSummary(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String()+"/payment-summary", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "unpaid", data["status"])
	assert.Equal(t, float64(0), data["payment_count"])
}

func TestOrderHandler_AdvanceStage(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Order")).Return(nil)

	body := map[string]any{"stage": "accessories_inhouse"}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/stage", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "accessories_inhouse", data["production_stage"])
}

func TestOrderHandler_AdvanceStage_UnknownStage(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupOrderRouter(orderRepo, new(MockProductRepository), new(MockCustomerRepository))

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	body := map[string]any{"stage": "warp_drive"}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/stage", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderHandler_ListStages(t *testing.T) {
	engine := setupOrderRouter(new(MockOrderRepository), new(MockProductRepository), new(MockCustomerRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/stages", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	stages := payload["data"].([]any)
	assert.Equal(t, "confirmed", stages[0])
	assert.Equal(t, "port_handover", stages[len(stages)-1])
}

func TestOrderHandler_Delete(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	engine := setupOrderRouter(orderRepo, productRepo, new(MockCustomerRepository))

	customer := newTestCustomer(t)
	product := newTestProduct(t)
	order := newTestOrder(t, customer, product)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	// Stock reserved by the line items goes back on delete
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+order.ID.String(), nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	orderRepo.AssertExpectations(t)
}
