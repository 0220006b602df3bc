package ordering

import (
	"time"

	"github.com/garmsource/backend/internal/domain/shared"
	"github.com/garmsource/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the payment set against the grand total.
// It is never directly settable once payments exist.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentDirection distinguishes money received from money returned.
// Refunds are recorded as their own entries, never as deletions of
// payment history.
type PaymentDirection string

const (
	PaymentDirectionPay    PaymentDirection = "pay"
	PaymentDirectionRefund PaymentDirection = "refund"
)

// IsValid checks if the direction is valid
func (d PaymentDirection) IsValid() bool {
	return d == PaymentDirectionPay || d == PaymentDirectionRefund
}

// PaymentMethod represents the method of payment
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard,
		PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment records a single ledger entry against an order
type Payment struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Direction  PaymentDirection
	Amount     decimal.Decimal
	Method     PaymentMethod
	Reference  string
	PaidAt     time.Time
	CreatedAt  time.Time
}

// newPayment creates a ledger entry. Amount bounds are enforced by the
// order aggregate, which knows the current summary.
func newPayment(orderID, customerID uuid.UUID, direction PaymentDirection, amount valueobject.Money, method PaymentMethod, reference string, paidAt time.Time) (*Payment, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Payment direction must be pay or refund")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &Payment{
		ID:         uuid.New(),
		OrderID:    orderID,
		CustomerID: customerID,
		Direction:  direction,
		Amount:     amount.Amount(),
		Method:     method,
		Reference:  reference,
		PaidAt:     paidAt,
		CreatedAt:  time.Now(),
	}, nil
}

// GetAmountMoney returns the amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoney(p.Amount)
}

// SignedAmount returns the amount with refund entries negated
func (p *Payment) SignedAmount() decimal.Decimal {
	if p.Direction == PaymentDirectionRefund {
		return p.Amount.Neg()
	}
	return p.Amount
}

// PaymentSummary is derived from the full payment set of an order. It is
// always recomputed from scratch, never patched incrementally, so that
// concurrent edits cannot leave it drifted from the ledger.
type PaymentSummary struct {
	OrderID       uuid.UUID       `json:"order_id"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalRefunded decimal.Decimal `json:"total_refunded"`
	Balance       decimal.Decimal `json:"balance"`
	PaymentCount  int             `json:"payment_count"`
	Status        PaymentStatus   `json:"status"`
}

// summarizePayments computes the summary from the complete payment set.
// TotalPaid nets refunds against payments; Balance is clamped at zero
// for display.
func summarizePayments(orderID uuid.UUID, grandTotal decimal.Decimal, payments []Payment) PaymentSummary {
	totalPaid := decimal.Zero
	totalRefunded := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.SignedAmount())
		if p.Direction == PaymentDirectionRefund {
			totalRefunded = totalRefunded.Add(p.Amount)
		}
	}
	totalPaid = valueobject.Round2(totalPaid)
	totalRefunded = valueobject.Round2(totalRefunded)

	balance := valueobject.Round2(grandTotal.Sub(totalPaid))
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return PaymentSummary{
		OrderID:       orderID,
		GrandTotal:    grandTotal,
		TotalPaid:     totalPaid,
		TotalRefunded: totalRefunded,
		Balance:       balance,
		PaymentCount:  len(payments),
		Status:        derivePaymentStatus(totalPaid, totalRefunded, grandTotal),
	}
}

// derivePaymentStatus is a pure function of the summed amounts versus the
// grand total. Orders that have been refunded below the grand total report
// refunded; otherwise the paid fraction decides.
func derivePaymentStatus(totalPaid, totalRefunded, grandTotal decimal.Decimal) PaymentStatus {
	if totalRefunded.IsPositive() && totalPaid.LessThan(grandTotal) {
		return PaymentStatusRefunded
	}
	switch {
	case totalPaid.LessThanOrEqual(decimal.Zero):
		return PaymentStatusUnpaid
	case totalPaid.LessThan(grandTotal):
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}
