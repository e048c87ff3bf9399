package calculation

import (
	"testing"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSingleSimulation_ShapeAndNoWithdrawalBeforeRetirement(t *testing.T) {
	params := fixedReturnParams("0.05")
	params.TotalYears = 4
	params.YearsUntilRetirement = 2
	params.InitialPortfolioValue = dec("100000")
	params.MonthlyContribution = dec("1000")

	run := runOnce(t, params, nil)
	require.Len(t, run.Balances, 5)
	require.Len(t, run.Withdrawals, 4)
	require.Len(t, run.Returns, 4)
	require.Len(t, run.Inflation, 4)

	assertDecimal(t, "100000", run.Balances[0])
	assertDecimal(t, "117000", run.Balances[1])
	assertDecimal(t, "134850", run.Balances[2])
	assert.True(t, run.Withdrawals[0].IsZero())
	assert.True(t, run.Withdrawals[1].IsZero())

	// first retirement year: 4% of the balance at retirement start, after that year's growth
	assertDecimal(t, "5394", run.Withdrawals[2])
	assertDecimal(t, "136198.5", run.Balances[3])
	assertDecimal(t, "5394", run.Withdrawals[3])
	assert.True(t, run.Success)
	assert.Equal(t, 2, run.YearsLasted)
}

func TestRunSingleSimulation_RuinIsAbsorbing(t *testing.T) {
	params := fixedReturnParams("0")
	params.InitialPortfolioValue = dec("100")
	params.Withdrawal = domain.WithdrawalConfiguration{
		Strategy:          domain.StrategyFixedDollar,
		FixedAmount:       decPtr("40"),
		InflationAdjusted: true,
	}

	run := runOnce(t, params, nil)
	assert.False(t, run.Success)
	assert.Equal(t, 3, run.YearsLasted)
	assertDecimal(t, "0", run.FinalBalance)
	assertDecimal(t, "100", run.TotalWithdrawn)

	expectedBalances := []string{"100", "60", "20", "0", "0", "0"}
	for i, want := range expectedBalances {
		assertDecimal(t, want, run.Balances[i], "balance %d", i)
	}
	assertDecimal(t, "20", run.Withdrawals[2], "last withdrawal is capped by the balance")
	assert.True(t, run.Withdrawals[3].IsZero())
	assert.True(t, run.Withdrawals[4].IsZero())
	assertDecimal(t, "1", run.MaxDrawdown)
}

func TestRunSingleSimulation_RuinInFirstRetirementYear(t *testing.T) {
	params := fixedReturnParams("0")
	params.InitialPortfolioValue = dec("10")
	params.Withdrawal = domain.WithdrawalConfiguration{
		Strategy:    domain.StrategyFixedDollar,
		FixedAmount: decPtr("40"),
	}

	run := runOnce(t, params, nil)
	assert.False(t, run.Success)
	assert.Equal(t, 1, run.YearsLasted)
}

func TestRunSingleSimulation_ZeroRateCompoundsInitialBalance(t *testing.T) {
	strategies := []domain.WithdrawalConfiguration{
		{Strategy: domain.StrategyFixedPercentage},
		{Strategy: domain.StrategyDynamicPercentage},
		{Strategy: domain.StrategyGuardrails},
		{Strategy: domain.StrategyCustom},
		{Strategy: domain.StrategyFixedDollar, FixedAmount: decPtr("0")},
	}
	for _, cfg := range strategies {
		t.Run(string(cfg.Strategy), func(t *testing.T) {
			params := marketParams()
			params.TotalYears = 25
			params.Withdrawal = cfg

			run := runOnce(t, params, nil)
			assert.True(t, run.Success)
			assert.True(t, run.TotalWithdrawn.IsZero())

			expected := params.InitialPortfolioValue
			for i, r := range run.Returns {
				assert.True(t, run.Withdrawals[i].IsZero())
				expected = applyReturn(expected, r)
			}
			assert.True(t, expected.Equal(run.FinalBalance), "expected %s, got %s", expected, run.FinalBalance)
		})
	}
}

func TestRunSingleSimulation_TaxGrossUp(t *testing.T) {
	params := fixedReturnParams("0")
	params.TotalYears = 1
	params.Withdrawal = domain.WithdrawalConfiguration{
		Strategy:    domain.StrategyFixedDollar,
		FixedAmount: decPtr("30000"),
		FlatTaxRate: dec("0.25"),
	}

	run := runOnce(t, params, nil)
	assertDecimal(t, "30000", run.Withdrawals[0], "withdrawals are recorded net of tax")
	assertDecimal(t, "960000", run.FinalBalance)
}

func TestRunSingleSimulation_IncomeOffsets(t *testing.T) {
	t.Run("legacy income", func(t *testing.T) {
		params := fixedReturnParams("0")
		params.TotalYears = 1
		params.LegacyIncome = &domain.LegacyIncome{SocialSecurity: dec("10000")}

		run := runOnce(t, params, nil)
		assertDecimal(t, "30000", run.Withdrawals[0])
		assertDecimal(t, "970000", run.FinalBalance)
	})

	t.Run("scheduled income takes priority over legacy", func(t *testing.T) {
		params := fixedReturnParams("0")
		params.TotalYears = 1
		params.RetirementAge = intPtr(65)
		params.ScheduledIncomes = []domain.ScheduledIncome{
			{Name: "pension", AnnualAmount: dec("10000"), StartAge: 65, InflationAdjusted: true},
		}
		params.LegacyIncome = &domain.LegacyIncome{Other: dec("5000")}

		run := runOnce(t, params, nil)
		assertDecimal(t, "30000", run.Withdrawals[0])
	})

	t.Run("legacy applies until scheduled income starts", func(t *testing.T) {
		params := fixedReturnParams("0")
		params.TotalYears = 2
		params.RetirementAge = intPtr(65)
		params.ScheduledIncomes = []domain.ScheduledIncome{
			{Name: "pension", AnnualAmount: dec("10000"), StartAge: 66, InflationAdjusted: true},
		}
		params.LegacyIncome = &domain.LegacyIncome{Other: dec("5000")}

		run := runOnce(t, params, nil)
		assertDecimal(t, "35000", run.Withdrawals[0])
		assertDecimal(t, "30000", run.Withdrawals[1])
	})
}

func TestRunSingleSimulation_FixedPercentageUsesRetirementStartBalance(t *testing.T) {
	params := fixedReturnParams("0.10")
	params.TotalYears = 3

	run := runOnce(t, params, nil)
	for i := range run.Withdrawals {
		assertDecimal(t, "40000", run.Withdrawals[i], "year %d", i+1)
	}
	assertDecimal(t, "1060000", run.Balances[1])
}

func TestApplyReturn(t *testing.T) {
	assertDecimal(t, "110", applyReturn(dec("100"), dec("0.1")))
	assertDecimal(t, "0", applyReturn(dec("100"), dec("-1.5")))
	assertDecimal(t, "0", applyReturn(decimal.Zero, dec("0.3")))
}
