package kernel

import (
	"fmt"

	"flowershop/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount.
// It wraps github.com/shopspring/decimal to avoid floating-point rounding
// in price arithmetic. The zero value represents an amount of zero.
//
// Money is immutable; arithmetic methods return new values.
//
// Example usage:
//
//	price, err := kernel.MoneyFromString("200000")
//	if err != nil {
//	    // handle error
//	}
//	subtotal := price.Mul(3)
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a Money from its decimal string representation.
// Accepts plain decimal notation such as "120" or "99.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MoneyFromFloat creates a Money from a float64 amount.
// Intended for values arriving from JSON payloads; the float is converted
// through decimal.NewFromFloat to preserve the shortest exact representation.
func MoneyFromFloat(f float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(f))
}

// ZeroMoney returns a Money with amount zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for serialization.
// Precision loss is possible for amounts beyond float64 range.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the decimal string representation of the amount.
func (m Money) String() string {
	return m.amount.String()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns the amount multiplied by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}
