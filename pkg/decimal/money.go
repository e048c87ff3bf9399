package decimal

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used by Format
const DefaultCurrency = money.USD

// Money represents a monetary amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents, half away from zero
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// String returns the amount with two decimal places and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount in DefaultCurrency with symbol and thousands grouping
func (m Money) Format() string {
	return m.FormatIn(DefaultCurrency)
}

// FormatIn renders the amount in an ISO 4217 currency. Unknown codes fall back to
// DefaultCurrency.
func (m Money) FormatIn(code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		currency = money.GetCurrency(DefaultCurrency)
	}
	minor := m.Decimal.Round(int32(currency.Fraction)).Shift(int32(currency.Fraction)).IntPart()
	return money.New(minor, currency.Code).Display()
}
