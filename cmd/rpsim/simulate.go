package main

import (
	"fmt"
	"os"

	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/config"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/rpgo/portfolio-survival/internal/output"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Run a Monte Carlo portfolio survival simulation",
		Long: `Run the simulation described by a YAML configuration file.

Examples:
  rpsim simulate config.yaml
  rpsim simulate config.yaml --runs 50000 --seed 42 --format json --output result.json
  rpsim simulate config.yaml --bootstrap --historical-data ./data --report-dir reports --format all
`,
		Args: cobra.ExactArgs(1),
		RunE: runSimulate,
	}
	cmd.Flags().IntP("runs", "n", 0, "Number of simulation runs (overrides the file)")
	cmd.Flags().Int64("seed", 0, "Random seed (overrides the file; 0 picks one)")
	cmd.Flags().String("historical-data", "", "Historical data directory (overrides historical_data_path)")
	cmd.Flags().Bool("bootstrap", false, "Sample historical years instead of parametric returns")
	cmd.Flags().StringP("format", "f", "console", fmt.Sprintf("Output format (%v)", output.AvailableFormatterNames()))
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().String("report-dir", "", "Write timestamped report files to this directory (supports --format all)")
	cmd.Flags().Int("workers", 0, "Concurrent runs per batch (default GOMAXPROCS)")
	cmd.Flags().BoolP("verbose", "v", false, "Debug logging")
	cmd.Flags().Bool("quiet", false, "Suppress progress output")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newCLILogger(cmd.ErrOrStderr(), verbose)

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	if err := applySimulateFlags(cmd, cfg); err != nil {
		return err
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var table *domain.HistoricalData
	if cfg.Simulation.UseBootstrap {
		table, err = loadHistoricalTable(cfg.HistoricalDataPath, cfg.ReturnBasis, logger)
		if err != nil {
			return err
		}
	}

	sim := calculation.NewMonteCarloSimulator(table)
	sim.SetLogger(logger)
	sim.Concurrency, _ = cmd.Flags().GetInt("workers")
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		total := cfg.Simulation.NumRuns
		stderr := cmd.ErrOrStderr()
		sim.Progress = func(completed int) {
			fmt.Fprintf(stderr, "\rsimulated %d/%d runs", completed, total)
			if completed == total {
				fmt.Fprintln(stderr)
			}
		}
	}

	result, err := sim.RunSimulation(cmd.Context(), cfg.Simulation)
	if err != nil {
		return err
	}
	return writeResult(cmd, result)
}

// applySimulateFlags copies explicitly set flags over the loaded configuration
func applySimulateFlags(cmd *cobra.Command, cfg *domain.Configuration) error {
	flags := cmd.Flags()
	if flags.Changed("runs") {
		cfg.Simulation.NumRuns, _ = flags.GetInt("runs")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("historical-data") {
		cfg.HistoricalDataPath, _ = flags.GetString("historical-data")
	}
	if flags.Changed("bootstrap") {
		cfg.Simulation.UseBootstrap, _ = flags.GetBool("bootstrap")
	}
	if cfg.Simulation.UseBootstrap && cfg.HistoricalDataPath == "" {
		return fmt.Errorf("bootstrap needs --historical-data or historical_data_path")
	}
	return nil
}

func loadHistoricalTable(path string, basis domain.ReturnBasis, logger cliLogger) (*domain.HistoricalData, error) {
	hdm := calculation.NewHistoricalDataManager(path)
	if err := hdm.LoadAllData(); err != nil {
		return nil, fmt.Errorf("failed to load historical data from %s: %w", path, err)
	}
	if issues, err := hdm.ValidateDataQuality(); err == nil {
		for _, issue := range issues {
			logger.Debugf("historical data: %s", issue)
		}
	}
	table, err := hdm.Table(basis)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d historical years (%d-%d) for %d asset classes", len(table.Years), table.Years[0], table.Years[len(table.Years)-1], len(table.Returns))
	return table, nil
}

func writeResult(cmd *cobra.Command, result *domain.SimulationResult) error {
	format, _ := cmd.Flags().GetString("format")
	reportDir, _ := cmd.Flags().GetString("report-dir")
	if reportDir != "" {
		files, err := output.GenerateReport(result, format, reportDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
		}
		return nil
	}

	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q (available: %v)", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
	}
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
		return nil
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
