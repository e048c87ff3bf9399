package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/portfolio-survival/internal/calculation"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/rpgo/portfolio-survival/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// nowFunc anchors birth-date derived ages (override in tests)
var nowFunc = time.Now

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, completes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ApplyDefaults fills values the file may leave out: income IDs, the inflation strategy and,
// when a birth date is given, the retirement and withdrawal ages.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	sim := &config.Simulation

	for i := range sim.ScheduledIncomes {
		if sim.ScheduledIncomes[i].ID == uuid.Nil {
			sim.ScheduledIncomes[i].ID = uuid.New()
		}
	}
	if sim.InflationStrategy == "" {
		sim.InflationStrategy = domain.InflationConstantReal
	}
	if config.ReturnBasis == "" {
		config.ReturnBasis = domain.BasisNominal
	}

	if config.BirthDate == nil {
		return
	}
	if sim.RetirementAge == nil {
		age := dateutil.AgeAfterYears(*config.BirthDate, nowFunc(), sim.YearsUntilRetirement)
		sim.RetirementAge = &age
	}
	if sim.Withdrawal.CurrentAge == nil {
		age := *sim.RetirementAge
		sim.Withdrawal.CurrentAge = &age
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.BirthDate != nil && config.BirthDate.After(nowFunc()) {
		return fmt.Errorf("birth date cannot be in the future")
	}
	if config.ReturnBasis != "" && config.ReturnBasis != domain.BasisNominal && config.ReturnBasis != domain.BasisReal {
		return fmt.Errorf("return basis must be 'nominal' or 'real', got %q", config.ReturnBasis)
	}
	if config.ReturnBasis == domain.BasisReal && !config.Simulation.UseBootstrap {
		return fmt.Errorf("return basis 'real' only applies to historical bootstrap")
	}
	return calculation.ValidateParameters(config.Simulation)
}

// Warnings reports settings that are valid but probably not intended
func (ip *InputParser) Warnings(config *domain.Configuration) []string {
	var warnings []string
	sim := config.Simulation

	if len(sim.ScheduledIncomes) > 0 && sim.RetirementAge == nil {
		warnings = append(warnings, "scheduled_income is ignored without retirement_age or birth_date")
	}
	if sim.Withdrawal.Strategy == domain.StrategyRMD {
		if sim.Withdrawal.CurrentAge == nil {
			warnings = append(warnings, "rmd strategy without current_age falls back to the withdrawal rate")
		} else if config.BirthDate != nil {
			rmdAge := dateutil.GetRMDAge(config.BirthDate.Year())
			if *sim.Withdrawal.CurrentAge < rmdAge {
				warnings = append(warnings, fmt.Sprintf("rmd strategy starts at age %d, before required distributions begin at %d", *sim.Withdrawal.CurrentAge, rmdAge))
			}
		}
	}
	if sim.UseBootstrap && config.HistoricalDataPath == "" {
		warnings = append(warnings, "use_bootstrap is set but historical_data_path is empty")
	}
	return warnings
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	birthDate := time.Date(1966, time.March, 14, 0, 0, 0, 0, time.UTC)
	retirementAge := 62
	pensionEnd := 95

	return &domain.Configuration{
		BirthDate:          &birthDate,
		HistoricalDataPath: "data",
		ReturnBasis:        domain.BasisNominal,
		Simulation: domain.SimulationParameters{
			NumRuns:               10000,
			TotalYears:            35,
			YearsUntilRetirement:  3,
			InflationRate:         decimal.NewFromFloat(0.025),
			InflationStrategy:     domain.InflationConstantReal,
			InitialPortfolioValue: decimal.NewFromInt(850000),
			MonthlyContribution:   decimal.NewFromInt(2000),
			RetirementAge:         &retirementAge,
			Portfolio: domain.Portfolio{Holdings: map[domain.AssetClass]decimal.Decimal{
				domain.AssetClassLargeCap:      decimal.NewFromInt(45),
				domain.AssetClassSmallCap:      decimal.NewFromInt(10),
				domain.AssetClassInternational: decimal.NewFromInt(15),
				domain.AssetClassBonds:         decimal.NewFromInt(30),
			}},
			ScheduledIncomes: []domain.ScheduledIncome{
				{
					ID:                uuid.MustParse("6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"),
					Name:              "Social Security",
					AnnualAmount:      decimal.NewFromInt(28800),
					StartAge:          67,
					InflationAdjusted: true,
				},
				{
					ID:           uuid.MustParse("0a9b8c7d-6e5f-4a3b-2c1d-0e9f8a7b6c5d"),
					Name:         "Pension",
					AnnualAmount: decimal.NewFromInt(18000),
					StartAge:     62,
					EndAge:       &pensionEnd,
				},
			},
			Withdrawal: domain.WithdrawalConfiguration{
				Strategy: domain.StrategyGuardrails,
				Rate:     decimal.NewFromFloat(0.045),
			},
		},
	}
}

// SaveConfiguration writes a configuration back to YAML
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration to %s: %w", filename, err)
	}
	return nil
}
