package output

import (
	"testing"
	"time"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ranges(p10, p25, p50, p75, p90 string) domain.PercentileRanges {
	return domain.PercentileRanges{P10: d(p10), P25: d(p25), P50: d(p50), P75: d(p75), P90: d(p90)}
}

func buildTestResult() *domain.SimulationResult {
	ruin := d("2.5")
	return &domain.SimulationResult{
		Runs: []domain.SimulationRun{
			{RunNumber: 1, Balances: []decimal.Decimal{d("1000"), d("900"), d("850")}, FinalBalance: d("850"), Success: true, YearsLasted: 2},
		},
		Seed:                    12345,
		NumRuns:                 1000,
		TotalYears:              2,
		YearsUntilRetirement:    1,
		SuccessRate:             d("0.875"),
		ProbabilityOfRuin:       d("0.125"),
		MeanYearsToRuin:         &ruin,
		MeanFinalBalance:        d("1234.5"),
		MedianFinalBalance:      d("1100"),
		FinalBalancePercentiles: ranges("0", "500", "1100", "1500", "2000"),
		YearlyBalancePercentiles: []domain.PercentileRanges{
			ranges("1000", "1000", "1000", "1000", "1000"),
			ranges("950", "1000", "1050", "1100", "1150"),
			ranges("0", "500", "1100", "1500", "2000"),
		},
		YearlyWithdrawalPercentiles: []domain.PercentileRanges{
			ranges("0", "0", "0", "0", "0"),
			ranges("40", "42", "44", "46", "48"),
		},
		TotalWithdrawn:         d("44000"),
		AverageWithdrawnPerRun: d("44"),
		MaxDrawdown:            d("0.4"),
	}
}

func fixNow(t *testing.T, now time.Time) {
	t.Helper()
	previous := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = previous })
}
