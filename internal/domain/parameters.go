package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InflationStrategy selects how inflation pairs with the generated return
type InflationStrategy string

const (
	// InflationHistoricalCorrelated draws inflation from the same historical year as the return
	InflationHistoricalCorrelated InflationStrategy = "historical_correlated"
	// InflationConstantReal deflates nominal returns by the constant inflation rate
	InflationConstantReal InflationStrategy = "constant_real"
	// InflationConstantNominal compounds nominal returns unchanged
	InflationConstantNominal InflationStrategy = "constant_nominal"
)

// Valid reports whether s is a supported inflation strategy
func (s InflationStrategy) Valid() bool {
	switch s {
	case InflationHistoricalCorrelated, InflationConstantReal, InflationConstantNominal:
		return true
	}
	return false
}

// UnmarshalText rejects unknown inflation strategies at decode time
func (s *InflationStrategy) UnmarshalText(text []byte) error {
	candidate := InflationStrategy(text)
	if !candidate.Valid() {
		return fmt.Errorf("unknown inflation strategy %q", string(text))
	}
	*s = candidate
	return nil
}

// ScheduledIncome is an income stream (pension, annuity, Social Security) that starts at an age
type ScheduledIncome struct {
	ID                uuid.UUID       `yaml:"id,omitempty" json:"id"`
	Name              string          `yaml:"name" json:"name"`
	AnnualAmount      decimal.Decimal `yaml:"annual_amount" json:"annual_amount"`
	StartAge          int             `yaml:"start_age" json:"start_age"`
	EndAge            *int            `yaml:"end_age,omitempty" json:"end_age,omitempty"`
	InflationAdjusted bool            `yaml:"inflation_adjusted" json:"inflation_adjusted"`
}

// LegacyIncome holds flat annual income amounts from configurations that predate ScheduledIncome
type LegacyIncome struct {
	SocialSecurity decimal.Decimal `yaml:"social_security,omitempty" json:"social_security,omitempty"`
	Pension        decimal.Decimal `yaml:"pension,omitempty" json:"pension,omitempty"`
	Other          decimal.Decimal `yaml:"other,omitempty" json:"other,omitempty"`
}

// Total sums the legacy income sources
func (li LegacyIncome) Total() decimal.Decimal {
	return li.SocialSecurity.Add(li.Pension).Add(li.Other)
}

// SimulationParameters is shared read-only by every run of a simulation request
type SimulationParameters struct {
	NumRuns               int               `yaml:"runs" json:"runs"`
	TotalYears            int               `yaml:"total_years" json:"total_years"`
	YearsUntilRetirement  int               `yaml:"years_until_retirement" json:"years_until_retirement"`
	InflationRate         decimal.Decimal   `yaml:"inflation_rate" json:"inflation_rate"`
	InflationVolatility   decimal.Decimal   `yaml:"inflation_volatility,omitempty" json:"inflation_volatility,omitempty"`
	InflationStrategy     InflationStrategy `yaml:"inflation_strategy" json:"inflation_strategy"`
	UseBootstrap          bool              `yaml:"use_bootstrap" json:"use_bootstrap"`
	InitialPortfolioValue decimal.Decimal   `yaml:"initial_portfolio_value" json:"initial_portfolio_value"`
	MonthlyContribution   decimal.Decimal   `yaml:"monthly_contribution,omitempty" json:"monthly_contribution,omitempty"`
	RetirementAge         *int              `yaml:"retirement_age,omitempty" json:"retirement_age,omitempty"`
	Seed                  int64             `yaml:"seed,omitempty" json:"seed,omitempty"`

	Portfolio        Portfolio                           `yaml:"portfolio" json:"portfolio"`
	Assumptions      map[AssetClass]AssetClassAssumption `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
	ScheduledIncomes []ScheduledIncome                   `yaml:"scheduled_income,omitempty" json:"scheduled_income,omitempty"`
	LegacyIncome     *LegacyIncome                       `yaml:"legacy_income,omitempty" json:"legacy_income,omitempty"`
	Withdrawal       WithdrawalConfiguration             `yaml:"withdrawal" json:"withdrawal"`
}

// RetirementYears is the length of the retirement horizon
func (p SimulationParameters) RetirementYears() int {
	return p.TotalYears - p.YearsUntilRetirement
}

// AssumptionFor returns the parametric assumption for an asset class, preferring configured values
func (p SimulationParameters) AssumptionFor(class AssetClass) (AssetClassAssumption, bool) {
	if a, ok := p.Assumptions[class]; ok {
		return a, true
	}
	a, ok := DefaultAssetClassAssumptions[class]
	return a, ok
}

// Configuration is the top-level input file
type Configuration struct {
	Simulation         SimulationParameters `yaml:"simulation" json:"simulation"`
	BirthDate          *time.Time           `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	HistoricalDataPath string               `yaml:"historical_data_path,omitempty" json:"historical_data_path,omitempty"`
	ReturnBasis        ReturnBasis          `yaml:"return_basis,omitempty" json:"return_basis,omitempty"`
}
