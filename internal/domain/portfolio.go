package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AssetClass identifies one return series (e.g. large-cap equities, bonds)
type AssetClass string

const (
	AssetClassLargeCap      AssetClass = "large_cap"
	AssetClassSmallCap      AssetClass = "small_cap"
	AssetClassInternational AssetClass = "international"
	AssetClassBonds         AssetClass = "bonds"
	AssetClassStableValue   AssetClass = "stable_value"
)

// Portfolio holds the dollar value invested in each asset class.
// Weights are derived from values, so percentages work just as well as dollars.
type Portfolio struct {
	Holdings map[AssetClass]decimal.Decimal `yaml:"holdings" json:"holdings"`
}

// AssetClassAssumption parameterizes the normal distribution used in parametric mode
type AssetClassAssumption struct {
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expected_return"`
	Volatility     decimal.Decimal `yaml:"volatility" json:"volatility"`
}

// DefaultAssetClassAssumptions are long-run nominal statistics for the built-in asset classes
var DefaultAssetClassAssumptions = map[AssetClass]AssetClassAssumption{
	AssetClassLargeCap:      {ExpectedReturn: decimal.NewFromFloat(0.1125), Volatility: decimal.NewFromFloat(0.1744)},
	AssetClassSmallCap:      {ExpectedReturn: decimal.NewFromFloat(0.1117), Volatility: decimal.NewFromFloat(0.1933)},
	AssetClassInternational: {ExpectedReturn: decimal.NewFromFloat(0.0634), Volatility: decimal.NewFromFloat(0.1863)},
	AssetClassBonds:         {ExpectedReturn: decimal.NewFromFloat(0.0532), Volatility: decimal.NewFromFloat(0.0565)},
	AssetClassStableValue:   {ExpectedReturn: decimal.NewFromFloat(0.0493), Volatility: decimal.NewFromFloat(0.0165)},
}

// IsEmpty reports whether the portfolio has no assets at all
func (p Portfolio) IsEmpty() bool {
	return len(p.Holdings) == 0
}

// AssetClasses returns the held asset classes in a stable order
func (p Portfolio) AssetClasses() []AssetClass {
	classes := make([]AssetClass, 0, len(p.Holdings))
	for class := range p.Holdings {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// TotalValue sums all holdings
func (p Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, value := range p.Holdings {
		total = total.Add(value)
	}
	return total
}

// Weights returns each asset class's share of total value.
// A zero-value portfolio returns nil.
func (p Portfolio) Weights() map[AssetClass]decimal.Decimal {
	total := p.TotalValue()
	if total.IsZero() {
		return nil
	}
	weights := make(map[AssetClass]decimal.Decimal, len(p.Holdings))
	for class, value := range p.Holdings {
		weights[class] = value.Div(total)
	}
	return weights
}
