package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WithdrawalStrategy selects how the gross withdrawal for a retirement year is computed
type WithdrawalStrategy string

const (
	StrategyFixedPercentage   WithdrawalStrategy = "fixed_percentage"
	StrategyDynamicPercentage WithdrawalStrategy = "dynamic_percentage"
	StrategyGuardrails        WithdrawalStrategy = "guardrails"
	StrategyRMD               WithdrawalStrategy = "rmd"
	StrategyFixedDollar       WithdrawalStrategy = "fixed_dollar"
	StrategyCustom            WithdrawalStrategy = "custom"
)

// WithdrawalStrategies lists every supported strategy
var WithdrawalStrategies = []WithdrawalStrategy{
	StrategyFixedPercentage,
	StrategyDynamicPercentage,
	StrategyGuardrails,
	StrategyRMD,
	StrategyFixedDollar,
	StrategyCustom,
}

// Valid reports whether s is one of the supported strategies
func (s WithdrawalStrategy) Valid() bool {
	for _, known := range WithdrawalStrategies {
		if s == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown strategy names at decode time
func (s *WithdrawalStrategy) UnmarshalText(text []byte) error {
	candidate := WithdrawalStrategy(text)
	if !candidate.Valid() {
		return fmt.Errorf("unknown withdrawal strategy %q", string(text))
	}
	*s = candidate
	return nil
}

// GuardrailSettings holds the Guyton-Klinger bounds. Nil fields fall back to defaults
// derived from the withdrawal rate.
type GuardrailSettings struct {
	UpperBound          *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	LowerBound          *decimal.Decimal `yaml:"lower_bound,omitempty" json:"lower_bound,omitempty"`
	AdjustmentMagnitude *decimal.Decimal `yaml:"adjustment_magnitude,omitempty" json:"adjustment_magnitude,omitempty"`
}

// WithdrawalConfiguration is the immutable strategy configuration. Each strategy reads only
// the fields it needs.
type WithdrawalConfiguration struct {
	Strategy WithdrawalStrategy `yaml:"strategy" json:"strategy"`
	Rate     decimal.Decimal    `yaml:"rate" json:"rate"`

	// dynamic_percentage: fractions of the initial balance
	FloorPercent   *decimal.Decimal `yaml:"floor_percent,omitempty" json:"floor_percent,omitempty"`
	CeilingPercent *decimal.Decimal `yaml:"ceiling_percent,omitempty" json:"ceiling_percent,omitempty"`

	Guardrails *GuardrailSettings `yaml:"guardrails,omitempty" json:"guardrails,omitempty"`

	// fixed_dollar
	FixedAmount       *decimal.Decimal `yaml:"fixed_amount,omitempty" json:"fixed_amount,omitempty"`
	InflationAdjusted bool             `yaml:"inflation_adjusted,omitempty" json:"inflation_adjusted,omitempty"`

	// rmd: age in the first retirement year
	CurrentAge *int `yaml:"current_age,omitempty" json:"current_age,omitempty"`

	// Legacy flat income override, used only when no scheduled income applies
	FixedIncome *decimal.Decimal `yaml:"fixed_income,omitempty" json:"fixed_income,omitempty"`

	// Flat tax placeholder applied to the portfolio debit
	FlatTaxRate decimal.Decimal `yaml:"flat_tax_rate,omitempty" json:"flat_tax_rate,omitempty"`
}
