package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a styled terminal summary followed by a yearly percentile table.
type ConsoleFormatter struct {
	// YearStep prints every n-th year of the table; zero picks a step that keeps it short.
	YearStep int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, TitleStyle.Render("PORTFOLIO SURVIVAL SIMULATION"))

	metric := func(label, value string, style lipgloss.Style) {
		fmt.Fprintln(&buf, lipgloss.JoinHorizontal(lipgloss.Top, MetricLabelStyle.Render(label), style.Render(value)))
	}

	metric("Simulations", fmt.Sprintf("%d (seed %d)", result.NumRuns, result.Seed), MetricValueStyle)
	metric("Horizon", fmt.Sprintf("%d years, %d until retirement", result.TotalYears, result.YearsUntilRetirement), MetricValueStyle)
	metric("Success Rate", FormatPercentage(result.SuccessRate), successStyle(result.SuccessRate.InexactFloat64()))
	metric("Probability of Ruin", FormatPercentage(result.ProbabilityOfRuin), MetricValueStyle)
	if result.MeanYearsToRuin != nil {
		metric("Mean Years to Ruin", result.MeanYearsToRuin.StringFixed(1), MetricNegativeStyle)
	}
	metric("Median Final Balance", FormatCurrency(result.MedianFinalBalance), MetricValueStyle)
	metric("Mean Final Balance", FormatCurrency(result.MeanFinalBalance), MetricValueStyle)
	metric("Average Withdrawn Per Run", FormatCurrency(result.AverageWithdrawnPerRun), MetricValueStyle)
	metric("Max Drawdown", FormatPercentage(result.MaxDrawdown), MetricValueStyle)

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, SubtitleStyle.Render("Final Balance Percentiles"))
	p := result.FinalBalancePercentiles
	for _, row := range []struct {
		label string
		value decimal.Decimal
	}{
		{"10th", p.P10}, {"25th", p.P25}, {"50th", p.P50}, {"75th", p.P75}, {"90th", p.P90},
	} {
		metric(row.label, FormatCurrency(row.value), MetricValueStyle)
	}

	if len(result.YearlyBalancePercentiles) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, SubtitleStyle.Render("Balance by Year"))
		c.writeYearlyTable(&buf, result)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeYearlyTable(buf *bytes.Buffer, result *domain.SimulationResult) {
	step := c.YearStep
	if step <= 0 {
		step = 1
		if len(result.YearlyBalancePercentiles) > 21 {
			step = 5
		}
	}

	headers := []string{"Year", "P10", "Median", "P90", "Median Draw"}
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = TableHeaderStyle.Render(h)
	}
	fmt.Fprintln(buf, lipgloss.JoinHorizontal(lipgloss.Top, cells...))

	last := len(result.YearlyBalancePercentiles) - 1
	for year := 0; year <= last; year++ {
		if year%step != 0 && year != last {
			continue
		}
		b := result.YearlyBalancePercentiles[year]
		draw := "-"
		if year > 0 && year-1 < len(result.YearlyWithdrawalPercentiles) {
			draw = FormatCurrency(result.YearlyWithdrawalPercentiles[year-1].P50)
		}
		row := []string{
			TableCellStyle.Render(intToString(year)),
			TableCellStyle.Render(FormatCurrency(b.P10)),
			TableCellStyle.Render(FormatCurrency(b.P50)),
			TableCellStyle.Render(FormatCurrency(b.P90)),
			TableCellStyle.Render(draw),
		}
		fmt.Fprintln(buf, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	if step > 1 {
		fmt.Fprintln(buf, MutedStyle.Render(fmt.Sprintf("every %d years shown; use the yearly-csv format for all years", step)))
	}
}
