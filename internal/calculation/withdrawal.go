package calculation

import (
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	defaultGuardrailUpperFactor = decimal.NewFromFloat(1.25)
	defaultGuardrailLowerFactor = decimal.NewFromFloat(0.80)
	defaultGuardrailAdjustment  = decimal.NewFromFloat(0.10)
)

// WithdrawalState is the strategy state the simulator threads from year to year
type WithdrawalState struct {
	Baseline decimal.Decimal // first retirement year's gross withdrawal
	Prior    decimal.Decimal // last year's gross withdrawal
}

// Advance records the gross withdrawal of a retirement year
func (s WithdrawalState) Advance(yearsIntoRetirement int, gross decimal.Decimal) WithdrawalState {
	if yearsIntoRetirement == 1 {
		s.Baseline = gross
	}
	s.Prior = gross
	return s
}

// WithdrawalInput is everything the calculator needs for one retirement year
type WithdrawalInput struct {
	CurrentBalance      decimal.Decimal
	InitialBalance      decimal.Decimal // balance at the start of retirement
	YearsIntoRetirement int             // 1-based
	InflationRate       decimal.Decimal
	State               WithdrawalState
	// ScheduledIncome is the year's scheduled-income total; nil when that model does not apply
	ScheduledIncome *decimal.Decimal
}

// WithdrawalResult separates the strategy's gross figure from the amount left after income
type WithdrawalResult struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
}

// CalculateWithdrawal is a pure function of the configuration and the input
func CalculateWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) WithdrawalResult {
	gross := grossWithdrawal(cfg, in)
	return WithdrawalResult{Gross: gross, Net: netOfIncome(cfg, in, gross)}
}

func grossWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	switch cfg.Strategy {
	case domain.StrategyDynamicPercentage:
		return dynamicPercentageWithdrawal(cfg, in)
	case domain.StrategyGuardrails:
		return guardrailsWithdrawal(cfg, in)
	case domain.StrategyRMD:
		return rmdWithdrawal(cfg, in)
	case domain.StrategyFixedDollar:
		return fixedDollarWithdrawal(cfg, in)
	default:
		// fixed_percentage, and custom which currently shares its rule
		return fixedPercentageWithdrawal(cfg, in)
	}
}

// fixedPercentageWithdrawal spends rate × initial balance in year one and the same real
// amount every year after
func fixedPercentageWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	if in.YearsIntoRetirement <= 1 {
		return in.InitialBalance.Mul(cfg.Rate)
	}
	return in.State.Baseline
}

// dynamicPercentageWithdrawal spends rate × current balance within floor/ceiling dollar
// thresholds taken from the initial balance
func dynamicPercentageWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	withdrawal := in.CurrentBalance.Mul(cfg.Rate)
	if cfg.FloorPercent != nil {
		withdrawal = decimal.Max(withdrawal, in.InitialBalance.Mul(*cfg.FloorPercent))
	}
	if cfg.CeilingPercent != nil {
		withdrawal = decimal.Min(withdrawal, in.InitialBalance.Mul(*cfg.CeilingPercent))
	}
	return decimal.Min(withdrawal, in.CurrentBalance)
}

// guardrailsWithdrawal applies the Guyton-Klinger capital-preservation and prosperity rules
func guardrailsWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	if !in.CurrentBalance.IsPositive() {
		return decimal.Zero
	}
	if in.YearsIntoRetirement <= 1 {
		return decimal.Min(in.CurrentBalance.Mul(cfg.Rate), in.CurrentBalance)
	}

	upper, lower, adjustment := guardrailBounds(cfg)
	withdrawal := in.State.Prior
	currentRate := withdrawal.Div(in.CurrentBalance)
	switch {
	case currentRate.GreaterThan(upper):
		withdrawal = withdrawal.Mul(one.Sub(adjustment))
	case currentRate.LessThan(lower):
		withdrawal = withdrawal.Mul(one.Add(adjustment))
	}
	return decimal.Min(withdrawal, in.CurrentBalance)
}

// guardrailBounds resolves configured bounds, defaulting to rate×1.25 / rate×0.80 and a 10% step
func guardrailBounds(cfg domain.WithdrawalConfiguration) (upper, lower, adjustment decimal.Decimal) {
	upper = cfg.Rate.Mul(defaultGuardrailUpperFactor)
	lower = cfg.Rate.Mul(defaultGuardrailLowerFactor)
	adjustment = defaultGuardrailAdjustment
	if g := cfg.Guardrails; g != nil {
		if g.UpperBound != nil {
			upper = *g.UpperBound
		}
		if g.LowerBound != nil {
			lower = *g.LowerBound
		}
		if g.AdjustmentMagnitude != nil {
			adjustment = *g.AdjustmentMagnitude
		}
	}
	return upper, lower, adjustment
}

// rmdWithdrawal divides the balance by the distribution period for this year's age
func rmdWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	if cfg.CurrentAge == nil {
		return in.CurrentBalance.Mul(cfg.Rate)
	}
	age := *cfg.CurrentAge + in.YearsIntoRetirement - 1
	return in.CurrentBalance.Div(DistributionPeriod(age))
}

// fixedDollarWithdrawal spends a flat amount, eroded by inflation unless it is indexed
func fixedDollarWithdrawal(cfg domain.WithdrawalConfiguration, in WithdrawalInput) decimal.Decimal {
	if cfg.FixedAmount == nil {
		return decimal.Zero
	}
	amount := *cfg.FixedAmount
	if cfg.InflationAdjusted || in.YearsIntoRetirement <= 1 {
		return amount
	}
	erosion := one.Add(in.InflationRate).Pow(decimal.NewFromInt(int64(in.YearsIntoRetirement - 1)))
	return amount.Div(erosion)
}

// netOfIncome subtracts income from the gross withdrawal. Scheduled income, when present and
// nonzero, wins over the legacy flat figure.
func netOfIncome(cfg domain.WithdrawalConfiguration, in WithdrawalInput, gross decimal.Decimal) decimal.Decimal {
	if in.ScheduledIncome != nil && !in.ScheduledIncome.IsZero() {
		return decimal.Max(decimal.Zero, gross.Sub(*in.ScheduledIncome))
	}
	if cfg.FixedIncome != nil {
		return decimal.Max(decimal.Zero, gross.Sub(*cfg.FixedIncome))
	}
	return gross
}
