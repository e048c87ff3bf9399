package calculation

import (
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

// RealIncome returns the purchasing-power value of one income source at the given age.
//
// Sources pay nothing before StartAge or after EndAge. COLA sources keep their real value.
// Fixed-nominal sources erode from the year they began paying, so the first active year is
// always worth exactly AnnualAmount no matter how far into retirement it starts.
func RealIncome(source domain.ScheduledIncome, age int, inflationRate decimal.Decimal) decimal.Decimal {
	if age < source.StartAge {
		return decimal.Zero
	}
	if source.EndAge != nil && age > *source.EndAge {
		return decimal.Zero
	}
	if source.InflationAdjusted {
		return source.AnnualAmount
	}
	yearsActive := age - source.StartAge
	if yearsActive == 0 {
		return source.AnnualAmount
	}
	erosion := one.Add(inflationRate).Pow(decimal.NewFromInt(int64(yearsActive)))
	return source.AnnualAmount.Div(erosion)
}

// ScheduledIncomeForYear sums RealIncome over every configured source for a retirement year
// (1-based). The bool is false when the scheduled-income model does not apply: no retirement
// age or no sources.
func ScheduledIncomeForYear(params domain.SimulationParameters, yearsIntoRetirement int) (decimal.Decimal, bool) {
	if params.RetirementAge == nil || len(params.ScheduledIncomes) == 0 {
		return decimal.Zero, false
	}
	age := *params.RetirementAge + yearsIntoRetirement - 1
	total := decimal.Zero
	for _, source := range params.ScheduledIncomes {
		total = total.Add(RealIncome(source, age, params.InflationRate))
	}
	return total, true
}
