package calculation

import (
	"math/rand"

	"github.com/rpgo/portfolio-survival/internal/domain"
	money "github.com/rpgo/portfolio-survival/pkg/decimal"
	"github.com/shopspring/decimal"
)

// simulationPlan is the immutable, precomputed part of a request shared by every run
type simulationPlan struct {
	params             domain.SimulationParameters
	generator          *ReturnGenerator
	tax                *FlatTaxCalculator
	annualContribution decimal.Decimal
	legacyIncome       decimal.Decimal
}

func newSimulationPlan(params domain.SimulationParameters, generator *ReturnGenerator) *simulationPlan {
	plan := &simulationPlan{
		params:             params,
		generator:          generator,
		tax:                NewFlatTaxCalculator(params.Withdrawal.FlatTaxRate),
		annualContribution: money.NewMoneyFromDecimal(params.MonthlyContribution).Annual().Decimal,
	}
	if params.LegacyIncome != nil {
		plan.legacyIncome = params.LegacyIncome.Total()
	}
	return plan
}

// runSingleSimulation drives one lifecycle. It touches only its own buffers and rng.
func (plan *simulationPlan) runSingleSimulation(runNumber int, rng *rand.Rand) domain.SimulationRun {
	params := plan.params
	totalYears := params.TotalYears

	balances := make([]decimal.Decimal, totalYears+1)
	withdrawals := make([]decimal.Decimal, totalYears)
	returns := make([]decimal.Decimal, totalYears)
	inflation := make([]decimal.Decimal, totalYears)

	balance := params.InitialPortfolioValue
	balances[0] = balance

	var (
		state           WithdrawalState
		retirementStart decimal.Decimal
		totalWithdrawn  decimal.Decimal
		ruined          bool
	)
	yearsLasted := params.RetirementYears()

	for year := 1; year <= totalYears; year++ {
		sample := plan.generator.Next(rng)
		returns[year-1] = sample.Applied
		inflation[year-1] = sample.Inflation

		if ruined {
			// a depleted portfolio stays at zero
			balances[year] = decimal.Zero
			withdrawals[year-1] = decimal.Zero
			continue
		}

		if year <= params.YearsUntilRetirement {
			balance = applyReturn(balance, sample.Applied).Add(plan.annualContribution)
			balances[year] = balance
			withdrawals[year-1] = decimal.Zero
			continue
		}

		yearsIntoRetirement := year - params.YearsUntilRetirement
		if yearsIntoRetirement == 1 {
			retirementStart = balance
		}
		balance = applyReturn(balance, sample.Applied)

		in := WithdrawalInput{
			CurrentBalance:      balance,
			InitialBalance:      retirementStart,
			YearsIntoRetirement: yearsIntoRetirement,
			InflationRate:       params.InflationRate,
			State:               state,
		}
		scheduled, hasScheduled := ScheduledIncomeForYear(params, yearsIntoRetirement)
		if hasScheduled {
			in.ScheduledIncome = &scheduled
		}
		result := CalculateWithdrawal(params.Withdrawal, in)
		state = state.Advance(yearsIntoRetirement, result.Gross)

		net := result.Net
		if scheduled.IsZero() && plan.legacyIncome.IsPositive() {
			net = decimal.Max(decimal.Zero, net.Sub(plan.legacyIncome))
		}

		debit := plan.tax.GrossUp(net)
		if debit.GreaterThan(balance) {
			debit = balance
			net = plan.tax.NetOf(balance)
		}
		balance = balance.Sub(debit)
		withdrawals[year-1] = net
		totalWithdrawn = totalWithdrawn.Add(net)

		if !balance.IsPositive() {
			balance = decimal.Zero
			ruined = true
			yearsLasted = yearsIntoRetirement
		}
		balances[year] = balance
	}

	return domain.SimulationRun{
		RunNumber:      runNumber,
		Balances:       balances,
		Withdrawals:    withdrawals,
		Returns:        returns,
		Inflation:      inflation,
		FinalBalance:   balance,
		Success:        !ruined,
		YearsLasted:    yearsLasted,
		MaxDrawdown:    maxDrawdown(balances),
		TotalWithdrawn: totalWithdrawn,
	}
}

// applyReturn compounds one year of growth, never below zero
func applyReturn(balance, rate decimal.Decimal) decimal.Decimal {
	grown := balance.Add(balance.Mul(rate))
	if grown.IsNegative() {
		return decimal.Zero
	}
	return grown
}
