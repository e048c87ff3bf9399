package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/portfolio-survival/pkg/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as grouped USD with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fraction (0.875) as a percentage with 2 decimals (87.50%).
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}

func intToString(i int) string { return strconv.Itoa(i) }
