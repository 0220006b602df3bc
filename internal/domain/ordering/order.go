package ordering

import (
	"fmt"
	"time"

	"github.com/garmsource/backend/internal/domain/catalog"
	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a free label describing where the order sits in its
// commercial lifecycle. Any status may follow any other; the business
// routinely moves orders backward (rework, returns), so no transition
// graph is enforced.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// Order is the aggregate root keeping line items, derived totals, the
// payment ledger and the production pipeline stage mutually consistent.
// Every mutation re-derives the stored totals and the payment status
// from the source-of-truth collections; nothing is patched
// incrementally.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string
	CustomerID      uuid.UUID
	CustomerName    string
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod
	Items           []OrderItem
	Payments        []Payment
	ItemsTotal      decimal.Decimal
	ItemsTaxTotal   decimal.Decimal
	DiscountTotal   decimal.Decimal
	Shipping        decimal.Decimal
	GrandTotal      decimal.Decimal
	ProductionStage ProductionStage
	Milestones      Milestones
	Notes           string
}

// NewOrder creates a new order in pending/unpaid defaults. At least one
// item must be added before the order passes validation.
func NewOrder(orderNumber string, customerID uuid.UUID, customerName string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusUnpaid,
		ProductionStage:   StageConfirmed,
		Items:             make([]OrderItem, 0),
		Payments:          make([]Payment, 0),
		ItemsTotal:        decimal.Zero,
		ItemsTaxTotal:     decimal.Zero,
		DiscountTotal:     decimal.Zero,
		Shipping:          decimal.Zero,
		GrandTotal:        decimal.Zero,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem prices a line item from the product snapshot and appends it,
// re-deriving the order totals. Fails with OUT_OF_STOCK when the
// requested quantity exceeds the snapshot's available stock; the order
// is left untouched on any failure.
func (o *Order) AddItem(product catalog.ProductSnapshot, quantity int, discountPercentage decimal.Decimal) (*OrderItem, error) {
	for _, item := range o.Items {
		if item.ProductID == product.ID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	item, err := NewOrderItem(o.ID, product, quantity, discountPercentage)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.Reconcile()
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderItemAddedEvent(o, item))

	return item, nil
}

// UpdateItemQuantity changes an item's quantity, bounded by the available
// stock, and re-derives the order totals. The order is not mutated when
// the quantity exceeds stock.
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity, availableStock int) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity, availableStock); err != nil {
				return err
			}
			o.Reconcile()
			o.UpdatedAt = time.Now()
			o.AddDomainEvent(NewOrderUpdatedEvent(o))
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// UpdateItemDiscount changes an item's discount percentage and
// re-derives the order totals
func (o *Order) UpdateItemDiscount(itemID uuid.UUID, discountPercentage decimal.Decimal) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateDiscount(discountPercentage); err != nil {
				return err
			}
			o.Reconcile()
			o.UpdatedAt = time.Now()
			o.AddDomainEvent(NewOrderUpdatedEvent(o))
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes an item and re-derives the order totals. An order
// must keep at least one item; deleting the whole order is the way to
// drop the last one.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if len(o.Items) == 1 && o.Items[0].ID == itemID {
		return shared.NewDomainError("LAST_ITEM", "An order must keep at least one item")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.Reconcile()
			o.UpdatedAt = time.Now()
			o.AddDomainEvent(NewOrderItemRemovedEvent(o, itemID))
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetDiscount applies an order-level discount
func (o *Order) SetDiscount(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.Amount().GreaterThan(o.ItemsTotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the items total")
	}

	o.DiscountTotal = discount.Amount()
	o.Reconcile()
	o.UpdatedAt = time.Now()

	return nil
}

// SetShipping sets the shipping charge
func (o *Order) SetShipping(shipping valueobject.Money) error {
	if shipping.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping cannot be negative")
	}

	o.Shipping = shipping.Amount()
	o.Reconcile()
	o.UpdatedAt = time.Now()

	return nil
}

// SetStatus sets the lifecycle label. No transition graph applies.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if status == o.Status {
		return nil
	}

	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old, status))

	return nil
}

// SetPaymentMethod records the preferred payment method label
func (o *Order) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	o.PaymentMethod = method
	o.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-form notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// SetPaymentStatus sets the payment status label directly. Once the
// ledger holds any payment the stored status is no longer authoritative:
// the request is ignored and the derived value reinstated.
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	if len(o.Payments) > 0 {
		o.reconcilePaymentStatus()
		return nil
	}

	o.PaymentStatus = status
	o.UpdatedAt = time.Now()

	return nil
}

// RecordPayment appends a pay-direction ledger entry. The amount must be
// positive and at most the outstanding balance; paying the exact
// remaining balance is allowed, overpaying is not. The ledger is left
// untouched on failure.
func (o *Order) RecordPayment(amount valueobject.Money, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	summary := o.Summary()
	remaining := summary.GrandTotal.Sub(summary.TotalPaid)
	if amount.Amount().GreaterThan(remaining) {
		return nil, shared.ErrInvalidAmount
	}

	payment, err := newPayment(o.ID, o.CustomerID, PaymentDirectionPay, amount, method, reference, paidAt)
	if err != nil {
		return nil, err
	}

	o.Payments = append(o.Payments, *payment)
	o.reconcilePaymentStatus()
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentReceivedEvent(o, payment))

	return payment, nil
}

// RecordRefund appends a refund-direction ledger entry. The amount must
// be positive and at most the net amount paid so far.
func (o *Order) RecordRefund(amount valueobject.Money, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	summary := o.Summary()
	if amount.Amount().GreaterThan(summary.TotalPaid) {
		return nil, shared.ErrInvalidAmount
	}

	payment, err := newPayment(o.ID, o.CustomerID, PaymentDirectionRefund, amount, method, reference, paidAt)
	if err != nil {
		return nil, err
	}

	o.Payments = append(o.Payments, *payment)
	o.reconcilePaymentStatus()
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewPaymentRefundedEvent(o, payment))

	return payment, nil
}

// DeletePayment hard-removes a ledger entry and recomputes the summary
func (o *Order) DeletePayment(paymentID uuid.UUID) error {
	for idx, payment := range o.Payments {
		if payment.ID == paymentID {
			o.Payments = append(o.Payments[:idx], o.Payments[idx+1:]...)
			o.reconcilePaymentStatus()
			o.UpdatedAt = time.Now()
			o.AddDomainEvent(NewPaymentDeletedEvent(o, paymentID))
			return nil
		}
	}

	return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
}

// Summary recomputes the payment summary from the complete payment set
func (o *Order) Summary() PaymentSummary {
	return summarizePayments(o.ID, o.GrandTotal, o.Payments)
}

// AdvanceStage sets the current production stage. Stages may move in any
// direction; when a timestamp is supplied the corresponding milestone is
// recorded first-write-wins.
func (o *Order) AdvanceStage(stage ProductionStage, timestamp *time.Time) error {
	if !stage.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Unknown production stage")
	}

	old := o.ProductionStage
	o.ProductionStage = stage
	if timestamp != nil {
		if err := o.Milestones.Set(stage, *timestamp); err != nil {
			return err
		}
	}
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewProductionStageAdvancedEvent(o, old, stage))

	return nil
}

// NextMilestone returns the earliest future milestone in enumeration
// order, or nil when none qualify
func (o *Order) NextMilestone(now time.Time) *Milestone {
	return o.Milestones.NextMilestone(now)
}

// Reconcile re-derives every stored derived value from the
// source-of-truth collections: each item's amounts from its pricing
// inputs, the order totals from the items, and the payment status from
// the ledger. Reconcile is idempotent; an order whose totals were
// produced by it always validates clean.
func (o *Order) Reconcile() {
	for idx := range o.Items {
		o.Items[idx].recompute()
	}
	o.recalculateTotals()
	o.reconcilePaymentStatus()
}

// Validate recomputes every invariant and collects all violations
// instead of stopping at the first. A non-empty result rejects the whole
// submission; nothing may be partially persisted.
func (o *Order) Validate() shared.ValidationErrors {
	var violations shared.ValidationErrors

	if len(o.Items) == 0 {
		violations.Add("items", "EMPTY_ITEMS", "An order must contain at least one item")
	}
	for idx := range o.Items {
		o.Items[idx].validate(itemField(idx), &violations)
	}

	itemsTotal := decimal.Zero
	itemsTaxTotal := decimal.Zero
	for _, item := range o.Items {
		itemsTotal = itemsTotal.Add(item.SubTotal)
		itemsTaxTotal = itemsTaxTotal.Add(item.TaxAmount)
	}
	itemsTotal = valueobject.Round2(itemsTotal)
	itemsTaxTotal = valueobject.Round2(itemsTaxTotal)

	checkAmount(&violations, "totals.itemsTotal", o.ItemsTotal, itemsTotal)
	checkAmount(&violations, "totals.itemsTaxTotal", o.ItemsTaxTotal, itemsTaxTotal)

	if o.DiscountTotal.IsNegative() {
		violations.Add("totals.discountTotal", "NEGATIVE_AMOUNT", "Discount total cannot be negative")
	}
	if o.Shipping.IsNegative() {
		violations.Add("totals.shipping", "NEGATIVE_AMOUNT", "Shipping cannot be negative")
	}

	grandTotal := valueobject.Round2(itemsTotal.Sub(o.DiscountTotal).Add(itemsTaxTotal).Add(o.Shipping))
	checkAmount(&violations, "totals.grandTotal", o.GrandTotal, grandTotal)
	if o.GrandTotal.IsNegative() {
		violations.Add("totals.grandTotal", "NEGATIVE_AMOUNT", "Grand total cannot be negative")
	}

	if !o.Status.IsValid() {
		violations.Add("status", "INVALID_STATUS", "Unknown order status")
	}
	if !o.PaymentStatus.IsValid() {
		violations.Add("paymentStatus", "INVALID_PAYMENT_STATUS", "Unknown payment status")
	}

	return violations
}

// recalculateTotals re-derives the order-level totals from the items
func (o *Order) recalculateTotals() {
	itemsTotal := decimal.Zero
	itemsTaxTotal := decimal.Zero
	for _, item := range o.Items {
		itemsTotal = itemsTotal.Add(item.SubTotal)
		itemsTaxTotal = itemsTaxTotal.Add(item.TaxAmount)
	}

	o.ItemsTotal = valueobject.Round2(itemsTotal)
	o.ItemsTaxTotal = valueobject.Round2(itemsTaxTotal)

	// Discount set before items shrank must not push the total negative
	if o.DiscountTotal.GreaterThan(o.ItemsTotal) {
		o.DiscountTotal = o.ItemsTotal
	}

	o.GrandTotal = valueobject.Round2(o.ItemsTotal.Sub(o.DiscountTotal).Add(o.ItemsTaxTotal).Add(o.Shipping))
}

// reconcilePaymentStatus re-derives the payment status from the full
// payment set. With an empty ledger the stored label stays authoritative.
func (o *Order) reconcilePaymentStatus() {
	if len(o.Payments) == 0 {
		if !o.PaymentStatus.IsValid() {
			o.PaymentStatus = PaymentStatusUnpaid
		}
		return
	}
	o.PaymentStatus = o.Summary().Status
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// GetPayment returns a payment by its ID
func (o *Order) GetPayment(paymentID uuid.UUID) *Payment {
	for idx := range o.Payments {
		if o.Payments[idx].ID == paymentID {
			return &o.Payments[idx]
		}
	}
	return nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetGrandTotalMoney returns the grand total as Money
func (o *Order) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoney(o.GrandTotal)
}

func itemField(idx int) string {
	return fmt.Sprintf("items[%d]", idx)
}
