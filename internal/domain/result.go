package domain

import "github.com/shopspring/decimal"

// SimulationRun is one completed lifecycle. It is never modified after the simulator returns it.
type SimulationRun struct {
	RunNumber      int               `json:"run_number"`
	Balances       []decimal.Decimal `json:"balances"`    // TotalYears+1 entries, [0] is the initial balance
	Withdrawals    []decimal.Decimal `json:"withdrawals"` // TotalYears entries, zero during accumulation
	Returns        []decimal.Decimal `json:"returns"`     // applied return per year
	Inflation      []decimal.Decimal `json:"inflation"`   // inflation paired with each return
	FinalBalance   decimal.Decimal   `json:"final_balance"`
	Success        bool              `json:"success"`
	YearsLasted    int               `json:"years_lasted"`
	MaxDrawdown    decimal.Decimal   `json:"max_drawdown"`
	TotalWithdrawn decimal.Decimal   `json:"total_withdrawn"`
}

// PercentileRanges holds nearest-rank percentiles of a sample
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SimulationResult is the terminal snapshot of a simulation request
type SimulationResult struct {
	Runs []SimulationRun `json:"runs,omitempty"`

	Seed                 int64 `json:"seed"`
	NumRuns              int   `json:"num_runs"`
	TotalYears           int   `json:"total_years"`
	YearsUntilRetirement int   `json:"years_until_retirement"`

	SuccessRate             decimal.Decimal  `json:"success_rate"`
	MeanFinalBalance        decimal.Decimal  `json:"mean_final_balance"`
	MedianFinalBalance      decimal.Decimal  `json:"median_final_balance"`
	FinalBalancePercentiles PercentileRanges `json:"final_balance_percentiles"`

	// Index i describes year i; balances include year 0, withdrawals start at year 1
	YearlyBalancePercentiles    []PercentileRanges `json:"yearly_balance_percentiles"`
	YearlyWithdrawalPercentiles []PercentileRanges `json:"yearly_withdrawal_percentiles"`

	TotalWithdrawn         decimal.Decimal  `json:"total_withdrawn"`
	AverageWithdrawnPerRun decimal.Decimal  `json:"average_withdrawn_per_run"`
	ProbabilityOfRuin      decimal.Decimal  `json:"probability_of_ruin"`
	MeanYearsToRuin        *decimal.Decimal `json:"mean_years_to_ruin,omitempty"`
	MaxDrawdown            decimal.Decimal  `json:"max_drawdown"`
}
