package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	orderingapp "github.com/garmsource/backend/internal/application/ordering"
	partnerapp "github.com/garmsource/backend/internal/application/partner"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupCustomerRouter(customerRepo *MockCustomerRepository, orderRepo *MockOrderRepository) *gin.Engine {
	customerService := partnerapp.NewCustomerService(customerRepo)
	orderService := orderingapp.NewOrderService(orderRepo, new(MockProductRepository), customerRepo, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewCustomerHandler(customerService, orderService).RegisterRoutes(api)
	return engine
}

func TestCustomerHandler_Create(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	engine := setupCustomerRouter(customerRepo, new(MockOrderRepository))

	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	body := map[string]any{
		"name":    "Leila Haddad",
		"company": "Haddad Trading",
		"email":   "leila@haddad.example",
	}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "Leila Haddad", data["name"])
	assert.Equal(t, true, data["active"])
	customerRepo.AssertExpectations(t)
}

func TestCustomerHandler_Create_MissingName(t *testing.T) {
	engine := setupCustomerRouter(new(MockCustomerRepository), new(MockOrderRepository))

	body := map[string]any{"company": "Haddad Trading"}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_Update(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	engine := setupCustomerRouter(customerRepo, new(MockOrderRepository))

	customer := newTestCustomer(t)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	body := map[string]any{"phone": "+8613800000000"}
	raw, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/"+customer.ID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "+8613800000000", data["phone"])
	// Untouched fields survive a partial update
	assert.Equal(t, "Chen Imports", data["company"])
}

func TestCustomerHandler_Deactivate(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	engine := setupCustomerRouter(customerRepo, new(MockOrderRepository))

	customer := newTestCustomer(t)
	customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/deactivate", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	data := payload["data"].(map[string]any)
	assert.Equal(t, false, data["active"])
}

func TestCustomerHandler_List(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	engine := setupCustomerRouter(customerRepo, new(MockOrderRepository))

	customer := newTestCustomer(t)
	customerRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]partner.Customer{*customer}, nil)
	customerRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers?search=chen", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	meta := payload["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total"])
}

func TestCustomerHandler_ListOrders(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	engine := setupCustomerRouter(customerRepo, orderRepo)

	customer := newTestCustomer(t)
	order := newTestOrder(t, customer, newTestProduct(t))
	orderRepo.On("FindByCustomer", mock.Anything, customer.ID).Return([]ordering.Order{*order}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customer.ID.String()+"/orders", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeResponse(t, w.Body)
	rows := payload["data"].([]any)
	assert.Len(t, rows, 1)
	first := rows[0].(map[string]any)
	assert.Equal(t, "SO-1001", first["order_number"])
}
