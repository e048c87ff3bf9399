package calculation

import (
	"fmt"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

var minusOne = decimal.NewFromInt(-1)

// ValidateParameters checks a request before any run starts. It returns nil or an
// *domain.InvalidParametersError listing every violation found.
func ValidateParameters(params domain.SimulationParameters) error {
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if params.NumRuns <= 0 {
		add("number of runs must be positive, got %d", params.NumRuns)
	}
	if params.TotalYears <= 0 {
		add("total years must be positive, got %d", params.TotalYears)
	}
	if params.YearsUntilRetirement < 0 {
		add("years until retirement cannot be negative, got %d", params.YearsUntilRetirement)
	} else if params.TotalYears > 0 && params.YearsUntilRetirement >= params.TotalYears {
		add("years until retirement (%d) must be less than total years (%d)", params.YearsUntilRetirement, params.TotalYears)
	}
	if params.InflationRate.LessThanOrEqual(minusOne) {
		add("inflation rate must be greater than -100%%")
	}
	if params.InflationVolatility.IsNegative() {
		add("inflation volatility cannot be negative")
	}
	if params.InflationStrategy != "" && !params.InflationStrategy.Valid() {
		add("unknown inflation strategy %q", params.InflationStrategy)
	}
	if params.InitialPortfolioValue.IsNegative() {
		add("initial portfolio value cannot be negative")
	}
	if params.MonthlyContribution.IsNegative() {
		add("monthly contribution cannot be negative")
	}
	if params.RetirementAge != nil && *params.RetirementAge < 0 {
		add("retirement age cannot be negative")
	}

	for _, class := range params.Portfolio.AssetClasses() {
		if params.Portfolio.Holdings[class].IsNegative() {
			add("holding for asset class %s cannot be negative", class)
		}
	}
	if !params.UseBootstrap {
		for _, class := range params.Portfolio.AssetClasses() {
			assumption, ok := params.AssumptionFor(class)
			if !ok {
				add("asset class %s needs an expected return and volatility for parametric mode", class)
				continue
			}
			if assumption.Volatility.IsNegative() {
				add("volatility for asset class %s cannot be negative", class)
			}
		}
	}

	violations = append(violations, validateWithdrawal(params.Withdrawal)...)
	violations = append(violations, validateScheduledIncome(params.ScheduledIncomes)...)

	if params.LegacyIncome != nil && params.LegacyIncome.Total().IsNegative() {
		add("legacy income cannot be negative")
	}

	if len(violations) > 0 {
		return &domain.InvalidParametersError{Violations: violations}
	}
	return nil
}

func validateWithdrawal(cfg domain.WithdrawalConfiguration) []string {
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if !cfg.Strategy.Valid() {
		add("unknown withdrawal strategy %q", cfg.Strategy)
	}
	if cfg.Rate.IsNegative() || cfg.Rate.GreaterThan(one) {
		add("withdrawal rate must be between 0 and 100%%, got %s", cfg.Rate.String())
	}
	if cfg.FloorPercent != nil && cfg.FloorPercent.IsNegative() {
		add("withdrawal floor cannot be negative")
	}
	if cfg.CeilingPercent != nil && cfg.CeilingPercent.IsNegative() {
		add("withdrawal ceiling cannot be negative")
	}
	if cfg.FloorPercent != nil && cfg.CeilingPercent != nil && cfg.FloorPercent.GreaterThan(*cfg.CeilingPercent) {
		add("withdrawal floor (%s) cannot exceed ceiling (%s)", cfg.FloorPercent.String(), cfg.CeilingPercent.String())
	}
	if cfg.Strategy == domain.StrategyGuardrails {
		upper, lower, adjustment := guardrailBounds(cfg)
		if lower.GreaterThanOrEqual(upper) && !cfg.Rate.IsZero() {
			add("guardrail lower bound (%s) must be below upper bound (%s)", lower.String(), upper.String())
		}
		if !adjustment.IsPositive() || adjustment.GreaterThanOrEqual(one) {
			add("guardrail adjustment must be between 0 and 100%% exclusive")
		}
	}
	if cfg.Strategy == domain.StrategyFixedDollar {
		if cfg.FixedAmount == nil {
			add("fixed_dollar strategy requires a fixed amount")
		} else if cfg.FixedAmount.IsNegative() {
			add("fixed withdrawal amount cannot be negative")
		}
	}
	if cfg.CurrentAge != nil && *cfg.CurrentAge < 0 {
		add("current age cannot be negative")
	}
	if cfg.FixedIncome != nil && cfg.FixedIncome.IsNegative() {
		add("fixed income cannot be negative")
	}
	if cfg.FlatTaxRate.IsNegative() || cfg.FlatTaxRate.GreaterThanOrEqual(one) {
		add("flat tax rate must be at least 0 and below 100%%")
	}
	return violations
}

func validateScheduledIncome(sources []domain.ScheduledIncome) []string {
	var violations []string
	for i, source := range sources {
		label := source.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if source.AnnualAmount.IsNegative() {
			violations = append(violations, fmt.Sprintf("scheduled income %s: annual amount cannot be negative", label))
		}
		if source.EndAge != nil && *source.EndAge < source.StartAge {
			violations = append(violations, fmt.Sprintf("scheduled income %s: end age %d is before start age %d", label, *source.EndAge, source.StartAge))
		}
	}
	return violations
}
