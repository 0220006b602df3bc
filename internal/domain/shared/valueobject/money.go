package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the single monetary unit used across the system.
// The business operates in one currency; multi-currency is out of scope.
const Currency = "USD"

// Tolerance is the maximum allowed difference between a stored monetary
// value and its recomputed counterpart. Comparisons between derived and
// persisted amounts must use WithinTolerance rather than exact equality.
var Tolerance = decimal.NewFromFloat(0.01)

// Money is an immutable value object representing a monetary amount.
// Every derived amount is rounded to 2 fraction digits at the point it is
// computed, not only at the end of a calculation chain, so that stored
// values and recomputed values agree within Tolerance.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from a decimal amount, rounding to 2 places
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(2)}
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64) Money {
	return NewMoney(decimal.NewFromFloat(amount))
}

// NewMoneyFromString creates Money from a string representation
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d), nil
}

// Zero returns a zero-value Money
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Add returns a new Money with the rounded sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).Round(2)}
}

// Subtract returns a new Money with the rounded difference
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount).Round(2)}
}

// MultiplyByInt returns a new Money multiplied by an integer quantity
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(factor)).Round(2)}
}

// Percentage returns the given percentage of this Money, rounded.
// Percent is expressed in [0, 100].
func (m Money) Percentage(percent decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)}
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns a new Money with the absolute value
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// ClampZero returns this Money, or zero when the amount is negative.
// Used for display-only values such as an outstanding balance; required
// fields must fail validation instead of being clamped.
func (m Money) ClampZero() Money {
	if m.amount.IsNegative() {
		return Zero()
	}
	return m
}

// Equals returns true if both Money values are exactly equal
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// WithinTolerance returns true if the two amounts differ by at most 0.01
func (m Money) WithinTolerance(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(Tolerance)
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// LessThanOrEqual returns true if this Money is at most the other
func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// GreaterThan returns true if this Money is greater than the other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual returns true if this Money is at least the other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// String returns a string representation of the Money
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), Currency)
}

// Float64 returns the amount as a float64 (may lose precision)
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// MarshalJSON implements json.Marshaler, encoding the amount as a string
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.amount.StringFixed(2))
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount.Round(2)
	return nil
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		m.amount = decimal.NewFromFloat(v).Round(2)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount.Round(2)
	return nil
}

// Round2 rounds a raw decimal half-up to 2 fraction digits. All derived
// monetary fields must pass through this boundary.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether two raw decimals differ by at most 0.01
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
