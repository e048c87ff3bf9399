package main

import (
	"fmt"
	"io"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/output"
	"github.com/spf13/cobra"
)

func newHistoricalCmd() *cobra.Command {
	historicalCmd := &cobra.Command{
		Use:   "historical",
		Short: "Inspect historical return and inflation data",
	}

	loadCmd := &cobra.Command{
		Use:   "load [data-path]",
		Short: "Load historical data and report coverage and quality issues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hdm, err := loadManager(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Historical data loaded from %s\n", args[0])
			for _, class := range hdm.AssetClasses() {
				ds := hdm.Returns[class]
				fmt.Fprintf(out, "  %-14s %d-%d (%d years)\n", class, ds.MinYear, ds.MaxYear, len(ds.DataPoints))
			}
			if hdm.Inflation != nil {
				fmt.Fprintf(out, "  %-14s %d-%d (%d years)\n", "inflation", hdm.Inflation.MinYear, hdm.Inflation.MaxYear, len(hdm.Inflation.DataPoints))
			}
			if minYear, maxYear, err := hdm.GetAvailableYears(); err == nil {
				fmt.Fprintf(out, "Common range: %d-%d\n", minYear, maxYear)
			} else {
				fmt.Fprintf(out, "Common range: none (%v)\n", err)
			}

			issues, err := hdm.ValidateDataQuality()
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				fmt.Fprintln(out, "No data quality issues found")
				return nil
			}
			fmt.Fprintln(out, "Data quality issues:")
			for _, issue := range issues {
				fmt.Fprintf(out, "  - %s\n", issue)
			}
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats [data-path]",
		Short: "Display statistical summaries of historical data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hdm, err := loadManager(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, output.TitleStyle.Render("Historical Data Statistics"))
			for _, class := range hdm.AssetClasses() {
				writeSeriesStats(out, string(class), hdm.Returns[class])
			}
			if hdm.Inflation != nil {
				writeSeriesStats(out, "inflation", hdm.Inflation)
			}
			return nil
		},
	}

	historicalCmd.AddCommand(loadCmd, statsCmd)
	return historicalCmd
}

func loadManager(path string) (*calculation.HistoricalDataManager, error) {
	hdm := calculation.NewHistoricalDataManager(path)
	if err := hdm.LoadAllData(); err != nil {
		return nil, fmt.Errorf("error loading data: %w", err)
	}
	return hdm, nil
}

func writeSeriesStats(out io.Writer, name string, ds *calculation.HistoricalDataSet) {
	stats := ds.Statistics
	fmt.Fprintf(out, "%s:\n", name)
	fmt.Fprintf(out, "  Mean:    %s\n", output.FormatPercentage(stats.Mean))
	fmt.Fprintf(out, "  Median:  %s\n", output.FormatPercentage(stats.Median))
	fmt.Fprintf(out, "  Std Dev: %s\n", output.FormatPercentage(stats.StdDev))
	fmt.Fprintf(out, "  Min:     %s\n", output.FormatPercentage(stats.Min))
	fmt.Fprintf(out, "  Max:     %s\n", output.FormatPercentage(stats.Max))
	fmt.Fprintf(out, "  Years:   %d\n", stats.Count)
	if len(stats.MissingYears) > 0 {
		fmt.Fprintf(out, "  Missing: %v\n", stats.MissingYears)
	}
	fmt.Fprintln(out)
}
