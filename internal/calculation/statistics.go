package calculation

import (
	"sort"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

// Percentile fractions reported for every distribution
var (
	P10 = decimal.NewFromFloat(0.10)
	P25 = decimal.NewFromFloat(0.25)
	P50 = decimal.NewFromFloat(0.50)
	P75 = decimal.NewFromFloat(0.75)
	P90 = decimal.NewFromFloat(0.90)
)

// Percentile selects the nearest-rank value at floor((n-1)*p) from an ascending slice.
// No interpolation, so P50 is the median used everywhere else. Empty input yields zero.
func Percentile(sorted []decimal.Decimal, p decimal.Decimal) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	index := decimal.NewFromInt(int64(len(sorted) - 1)).Mul(p).Floor().IntPart()
	if index < 0 {
		index = 0
	}
	if index >= int64(len(sorted)) {
		index = int64(len(sorted) - 1)
	}
	return sorted[index]
}

// sortDecimals sorts in place, ascending
func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentileRanges sorts a copy of values and extracts the reported percentiles
func percentileRanges(values []decimal.Decimal) domain.PercentileRanges {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sortDecimals(sorted)
	return domain.PercentileRanges{
		P10: Percentile(sorted, P10),
		P25: Percentile(sorted, P25),
		P50: Percentile(sorted, P50),
		P75: Percentile(sorted, P75),
		P90: Percentile(sorted, P90),
	}
}

// maxDrawdown is the largest peak-to-trough decline of a balance trajectory, as a fraction of the peak
func maxDrawdown(balances []decimal.Decimal) decimal.Decimal {
	worst := decimal.Zero
	if len(balances) == 0 {
		return worst
	}
	peak := balances[0]
	for _, balance := range balances {
		if balance.GreaterThan(peak) {
			peak = balance
		}
		if !peak.IsPositive() {
			continue
		}
		drawdown := peak.Sub(balance).Div(peak)
		if drawdown.GreaterThan(worst) {
			worst = drawdown
		}
	}
	return worst
}

// mean divides an exact decimal sum by the count
func mean(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// aggregateResults folds completed runs into summary statistics. Every statistic is a sum,
// a sort or a lookup, so the fold does not depend on run order.
func aggregateResults(params domain.SimulationParameters, seed int64, runs []domain.SimulationRun) *domain.SimulationResult {
	n := len(runs)
	result := &domain.SimulationResult{
		Runs:                 runs,
		Seed:                 seed,
		NumRuns:              n,
		TotalYears:           params.TotalYears,
		YearsUntilRetirement: params.YearsUntilRetirement,
	}

	finals := make([]decimal.Decimal, n)
	var (
		successes     int
		failures      int
		finalSum      decimal.Decimal
		withdrawnSum  decimal.Decimal
		yearsToRuin   int
		worstDrawdown decimal.Decimal
	)
	for i, run := range runs {
		finals[i] = run.FinalBalance
		finalSum = finalSum.Add(run.FinalBalance)
		withdrawnSum = withdrawnSum.Add(run.TotalWithdrawn)
		if run.Success {
			successes++
		} else {
			failures++
			yearsToRuin += run.YearsLasted
		}
		if run.MaxDrawdown.GreaterThan(worstDrawdown) {
			worstDrawdown = run.MaxDrawdown
		}
	}

	result.SuccessRate = mean(decimal.NewFromInt(int64(successes)), n)
	result.ProbabilityOfRuin = mean(decimal.NewFromInt(int64(failures)), n)
	result.MeanFinalBalance = mean(finalSum, n)
	result.FinalBalancePercentiles = percentileRanges(finals)
	result.MedianFinalBalance = result.FinalBalancePercentiles.P50
	result.TotalWithdrawn = withdrawnSum
	result.AverageWithdrawnPerRun = mean(withdrawnSum, n)
	result.MaxDrawdown = worstDrawdown
	if failures > 0 {
		meanYears := mean(decimal.NewFromInt(int64(yearsToRuin)), failures)
		result.MeanYearsToRuin = &meanYears
	}

	result.YearlyBalancePercentiles = yearlyPercentiles(runs, params.TotalYears+1, func(run domain.SimulationRun) []decimal.Decimal { return run.Balances })
	result.YearlyWithdrawalPercentiles = yearlyPercentiles(runs, params.TotalYears, func(run domain.SimulationRun) []decimal.Decimal { return run.Withdrawals })
	return result
}

// yearlyPercentiles takes the cross-run distribution at each year index
func yearlyPercentiles(runs []domain.SimulationRun, years int, series func(domain.SimulationRun) []decimal.Decimal) []domain.PercentileRanges {
	out := make([]domain.PercentileRanges, years)
	column := make([]decimal.Decimal, len(runs))
	for year := 0; year < years; year++ {
		for i, run := range runs {
			column[i] = series(run)[year]
		}
		out[year] = percentileRanges(column)
	}
	return out
}
