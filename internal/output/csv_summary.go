package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// CSVSummarizer writes the aggregate statistics as Metric,Value,Description rows.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Value", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	yearsToRuin := "n/a"
	if result.MeanYearsToRuin != nil {
		yearsToRuin = result.MeanYearsToRuin.StringFixed(2)
	}
	p := result.FinalBalancePercentiles
	rows := [][]string{
		{"Number of Simulations", intToString(result.NumRuns), "Total number of simulations run"},
		{"Seed", fmt.Sprintf("%d", result.Seed), "Seed that reproduces these results"},
		{"Total Years", intToString(result.TotalYears), "Simulated years per run"},
		{"Years Until Retirement", intToString(result.YearsUntilRetirement), "Accumulation years before withdrawals start"},
		{"Success Rate", FormatPercentage(result.SuccessRate), "Percentage of runs that never ran out of money"},
		{"Probability of Ruin", FormatPercentage(result.ProbabilityOfRuin), "Percentage of runs that ran out of money"},
		{"Mean Years to Ruin", yearsToRuin, "Average years lasted by failed runs"},
		{"Mean Final Balance", result.MeanFinalBalance.StringFixed(2), "Average ending balance"},
		{"Median Final Balance", result.MedianFinalBalance.StringFixed(2), "Median ending balance"},
		{"10th Percentile Final Balance", p.P10.StringFixed(2), "Worst 10% of scenarios"},
		{"25th Percentile Final Balance", p.P25.StringFixed(2), "Below average scenarios"},
		{"75th Percentile Final Balance", p.P75.StringFixed(2), "Above average scenarios"},
		{"90th Percentile Final Balance", p.P90.StringFixed(2), "Best 10% of scenarios"},
		{"Total Withdrawn", result.TotalWithdrawn.StringFixed(2), "Sum of withdrawals over all runs"},
		{"Average Withdrawn Per Run", result.AverageWithdrawnPerRun.StringFixed(2), "Mean lifetime withdrawals"},
		{"Max Drawdown", FormatPercentage(result.MaxDrawdown), "Largest peak-to-trough decline in any run"},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
