package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// YearlyCSVExporter writes one row per simulated year with balance and withdrawal percentiles.
// Year 0 carries the starting balance and no withdrawal columns.
type YearlyCSVExporter struct{}

func (c YearlyCSVExporter) Name() string { return "yearly-csv" }

func (c YearlyCSVExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "Phase",
		"BalanceP10", "BalanceP25", "BalanceP50", "BalanceP75", "BalanceP90",
		"WithdrawalP10", "WithdrawalP25", "WithdrawalP50", "WithdrawalP75", "WithdrawalP90",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for year, balance := range result.YearlyBalancePercentiles {
		row := []string{intToString(year), phaseOf(result, year)}
		row = append(row, percentileCells(balance)...)
		if year > 0 && year-1 < len(result.YearlyWithdrawalPercentiles) {
			row = append(row, percentileCells(result.YearlyWithdrawalPercentiles[year-1])...)
		} else {
			row = append(row, "", "", "", "", "")
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func percentileCells(p domain.PercentileRanges) []string {
	return []string{p.P10.StringFixed(2), p.P25.StringFixed(2), p.P50.StringFixed(2), p.P75.StringFixed(2), p.P90.StringFixed(2)}
}

func phaseOf(result *domain.SimulationResult, year int) string {
	switch {
	case year == 0:
		return "start"
	case year <= result.YearsUntilRetirement:
		return "accumulation"
	default:
		return "retirement"
	}
}
