package ordering

import (
	"context"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/ordering"
	"github.com/garmsource/backend/internal/domain/partner"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// OrderService handles order business operations: line item edits,
// status moves, the payment ledger and the production pipeline. Every
// mutation validates the reconciled aggregate before saving and nothing
// is persisted when validation collects violations.
type OrderService struct {
	orderRepo      ordering.OrderRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	clock          shared.Clock
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository, clock shared.Clock) *OrderService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		clock:        clock,
	}
}

// SetEventPublisher sets the event publisher for the audit trail
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new order with its items, pricing each line from the
// product's current price and tax. Stock is reserved for every line.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	taken, err := s.orderRepo.ExistsByOrderNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("DUPLICATE_ORDER_NUMBER", "Order number is already taken")
	}

	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(req.OrderNumber, customer.ID, customer.Name)
	if err != nil {
		return nil, err
	}

	reserved := make(map[uuid.UUID]*catalog.Product, len(req.Items))
	for _, input := range req.Items {
		product, ok := reserved[input.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, input.ProductID)
			if err != nil {
				return nil, err
			}
			reserved[input.ProductID] = product
		}

		if _, err := order.AddItem(product.Snapshot(), input.Quantity, input.DiscountPercentage); err != nil {
			return nil, err
		}
		if err := product.AdjustStock(-input.Quantity); err != nil {
			return nil, err
		}
	}

	if req.Discount != nil {
		if err := order.SetDiscount(valueobject.NewMoney(*req.Discount)); err != nil {
			return nil, err
		}
	}
	if req.Shipping != nil {
		if err := order.SetShipping(valueobject.NewMoney(*req.Shipping)); err != nil {
			return nil, err
		}
	}
	if req.PaymentMethod != "" {
		if err := order.SetPaymentMethod(ordering.PaymentMethod(req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if violations := order.Validate(); violations.HasViolations() {
		return nil, violations
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	for _, product := range reserved {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// GetByOrderNumber retrieves an order by its number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
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
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}
	if filter.Stage != nil {
		domainFilter.Filters["production_stage"] = *filter.Stage
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// ListByCustomer retrieves all orders for a customer
func (s *OrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderListItemResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return ToOrderListItemResponses(orders), nil
}

// Update updates an order's header fields
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Discount != nil {
		if err := order.SetDiscount(valueobject.NewMoney(*req.Discount)); err != nil {
			return nil, err
		}
	}
	if req.Shipping != nil {
		if err := order.SetShipping(valueobject.NewMoney(*req.Shipping)); err != nil {
			return nil, err
		}
	}
	if req.PaymentMethod != nil {
		if err := order.SetPaymentMethod(ordering.PaymentMethod(*req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if violations := order.Validate(); violations.HasViolations() {
		return nil, violations
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// Delete removes an order and returns its reserved stock
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			continue
		}
		if err := product.AdjustStock(item.Quantity); err == nil {
			_ = s.productRepo.Save(ctx, product)
		}
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	order.AddDomainEvent(ordering.NewOrderDeletedEvent(order))
	s.publishEvents(ctx, order)

	return nil
}

// AddItem adds a line item priced from the product's current price and
// tax, and reserves stock for it
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if _, err := order.AddItem(product.Snapshot(), req.Quantity, req.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := product.AdjustStock(-req.Quantity); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// UpdateItem changes an item's quantity or discount. Quantity changes
// adjust the product's stock reservation by the difference.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := order.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}

	if req.Quantity != nil {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		// the item's own reservation counts as available for its update
		previous := item.Quantity
		available := product.Stock + previous
		if err := order.UpdateItemQuantity(itemID, *req.Quantity, available); err != nil {
			return nil, err
		}
		if err := product.AdjustStock(previous - *req.Quantity); err != nil {
			return nil, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	if req.DiscountPercentage != nil {
		if err := order.UpdateItemDiscount(itemID, *req.DiscountPercentage); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// RemoveItem removes a line item and returns its reserved stock
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	item := order.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}
	quantity := item.Quantity
	productID := item.ProductID

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if product, err := s.productRepo.FindByID(ctx, productID); err == nil {
		if err := product.AdjustStock(quantity); err == nil {
			_ = s.productRepo.Save(ctx, product)
		}
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// SetStatus sets the lifecycle label
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, req SetOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SetStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// SetPaymentStatus sets the payment status label. With a non-empty
// ledger the derived status wins and the request is a no-op.
func (s *OrderService) SetPaymentStatus(ctx context.Context, orderID uuid.UUID, req SetPaymentStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SetPaymentStatus(ordering.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order, s.clock.Now())
	return &response, nil
}

// publishEvents forwards the order's pending events to the audit trail
// and any other subscribers. Event delivery is best-effort after a
// successful save.
func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
