package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX ASSUMPTIONS:
//
// A single flat rate applies to every dollar taken out of the portfolio. There are no
// brackets, deductions or income-type exclusions; the rate exists so spending targets can be
// expressed after tax.

// FlatTaxCalculator grosses withdrawals up for a flat tax rate
type FlatTaxCalculator struct {
	Rate decimal.Decimal
}

// NewFlatTaxCalculator creates a flat tax calculator. A zero rate makes it a pass-through.
func NewFlatTaxCalculator(rate decimal.Decimal) *FlatTaxCalculator {
	return &FlatTaxCalculator{Rate: rate}
}

// GrossUp returns the portfolio debit needed to leave net after tax: net / (1 - rate)
func (ftc *FlatTaxCalculator) GrossUp(net decimal.Decimal) decimal.Decimal {
	if ftc.Rate.IsZero() {
		return net
	}
	return net.Div(one.Sub(ftc.Rate))
}

// NetOf returns what remains of a portfolio debit after tax: gross * (1 - rate)
func (ftc *FlatTaxCalculator) NetOf(gross decimal.Decimal) decimal.Decimal {
	if ftc.Rate.IsZero() {
		return gross
	}
	return gross.Mul(one.Sub(ftc.Rate))
}
