package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixNow(t *testing.T, now time.Time) {
	t.Helper()
	previous := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = previous })
}

const minimalConfig = `simulation:
  runs: 1000
  total_years: 30
  years_until_retirement: 0
  inflation_rate: 0.03
  initial_portfolio_value: 1000000
  portfolio:
    holdings:
      large_cap: 60
      bonds: 40
  withdrawal:
    strategy: fixed_percentage
    rate: 0.04
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	assert.NotNil(t, NewInputParser())
}

func TestLoadFromFile_Success(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	sim := config.Simulation
	assert.Equal(t, 1000, sim.NumRuns)
	assert.Equal(t, 30, sim.TotalYears)
	assert.True(t, sim.InflationRate.Equal(decimal.NewFromFloat(0.03)))
	assert.True(t, sim.InitialPortfolioValue.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, sim.Portfolio.Holdings[domain.AssetClassLargeCap].Equal(decimal.NewFromInt(60)))
	assert.Equal(t, domain.StrategyFixedPercentage, sim.Withdrawal.Strategy)
	assert.True(t, sim.Withdrawal.Rate.Equal(decimal.NewFromFloat(0.04)))

	// defaults
	assert.Equal(t, domain.InflationConstantReal, sim.InflationStrategy)
	assert.Equal(t, domain.BasisNominal, config.ReturnBasis)
	assert.Nil(t, sim.RetirementAge)
}

func TestLoadFromFile_FullDocument(t *testing.T) {
	fixNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	content := `birth_date: 1966-03-14
historical_data_path: data
simulation:
  runs: 500
  total_years: 35
  years_until_retirement: 3
  inflation_rate: 0.025
  inflation_strategy: historical_correlated
  use_bootstrap: true
  initial_portfolio_value: 850000
  monthly_contribution: 2000
  seed: 77
  portfolio:
    holdings:
      large_cap: 70
      bonds: 30
  scheduled_income:
    - name: Social Security
      annual_amount: 28800
      start_age: 67
      inflation_adjusted: true
    - id: 0a9b8c7d-6e5f-4a3b-2c1d-0e9f8a7b6c5d
      name: Pension
      annual_amount: 18000
      start_age: 62
      end_age: 90
  legacy_income:
    other: 1200
  withdrawal:
    strategy: guardrails
    rate: 0.045
    guardrails:
      upper_bound: 0.06
      lower_bound: 0.035
    flat_tax_rate: 0.15
`
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, content))
	require.NoError(t, err)

	sim := config.Simulation
	assert.Equal(t, int64(77), sim.Seed)
	assert.True(t, sim.UseBootstrap)
	assert.Equal(t, domain.InflationHistoricalCorrelated, sim.InflationStrategy)
	assert.Equal(t, "data", config.HistoricalDataPath)

	// 59 on 2026-01-01, 62 three years later
	require.NotNil(t, sim.RetirementAge)
	assert.Equal(t, 62, *sim.RetirementAge)
	require.NotNil(t, sim.Withdrawal.CurrentAge)
	assert.Equal(t, 62, *sim.Withdrawal.CurrentAge)

	require.Len(t, sim.ScheduledIncomes, 2)
	assert.NotEqual(t, uuid.Nil, sim.ScheduledIncomes[0].ID, "missing IDs are generated")
	assert.Equal(t, uuid.MustParse("0a9b8c7d-6e5f-4a3b-2c1d-0e9f8a7b6c5d"), sim.ScheduledIncomes[1].ID)
	require.NotNil(t, sim.ScheduledIncomes[1].EndAge)
	assert.Equal(t, 90, *sim.ScheduledIncomes[1].EndAge)

	require.NotNil(t, sim.LegacyIncome)
	assert.True(t, sim.LegacyIncome.Total().Equal(decimal.NewFromInt(1200)))
	require.NotNil(t, sim.Withdrawal.Guardrails)
	assert.True(t, sim.Withdrawal.Guardrails.UpperBound.Equal(decimal.NewFromFloat(0.06)))
	assert.Nil(t, sim.Withdrawal.Guardrails.AdjustmentMagnitude)
	assert.True(t, sim.Withdrawal.FlatTaxRate.Equal(decimal.NewFromFloat(0.15)))

	assert.Empty(t, parser.Warnings(config))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("nonexistent.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(writeConfig(t, "simulation: [unclosed\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_UnknownStrategy(t *testing.T) {
	content := `simulation:
  withdrawal:
    strategy: four_percent_forever
`
	_, err := NewInputParser().LoadFromFile(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown withdrawal strategy")
}

func TestLoadFromFile_UnknownInflationStrategy(t *testing.T) {
	content := `simulation:
  inflation_strategy: hyper
`
	_, err := NewInputParser().LoadFromFile(writeConfig(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown inflation strategy")
}

func TestLoadFromFile_InvalidParameters(t *testing.T) {
	content := `simulation:
  runs: 0
  total_years: 10
  withdrawal:
    strategy: fixed_percentage
    rate: 2
`
	_, err := NewInputParser().LoadFromFile(writeConfig(t, content))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)

	var invalid *domain.InvalidParametersError
	require.True(t, errors.As(err, &invalid))
	assert.GreaterOrEqual(t, len(invalid.Violations), 2)
}

func TestValidateConfiguration_Success(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestValidateConfiguration_FutureBirthDate(t *testing.T) {
	fixNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	config.BirthDate = &future

	err := parser.ValidateConfiguration(config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "birth date")
}

func TestValidateConfiguration_ReturnBasis(t *testing.T) {
	parser := NewInputParser()

	config := parser.CreateExampleConfiguration()
	config.ReturnBasis = "imaginary"
	assert.Error(t, parser.ValidateConfiguration(config))

	config.ReturnBasis = domain.BasisReal
	config.Simulation.UseBootstrap = false
	assert.Error(t, parser.ValidateConfiguration(config), "real basis needs bootstrap")

	config.Simulation.UseBootstrap = true
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestApplyDefaults_KeepsExplicitAges(t *testing.T) {
	fixNow(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	birth := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	retirementAge := 70
	currentAge := 73
	config := &domain.Configuration{
		BirthDate: &birth,
		Simulation: domain.SimulationParameters{
			RetirementAge: &retirementAge,
			Withdrawal:    domain.WithdrawalConfiguration{CurrentAge: &currentAge},
		},
	}

	NewInputParser().ApplyDefaults(config)
	assert.Equal(t, 70, *config.Simulation.RetirementAge)
	assert.Equal(t, 73, *config.Simulation.Withdrawal.CurrentAge)
}

func TestWarnings(t *testing.T) {
	parser := NewInputParser()
	birth := time.Date(1965, 5, 5, 0, 0, 0, 0, time.UTC)
	age := 65
	config := &domain.Configuration{
		BirthDate: &birth,
		Simulation: domain.SimulationParameters{
			UseBootstrap:     true,
			ScheduledIncomes: []domain.ScheduledIncome{{AnnualAmount: decimal.NewFromInt(1)}},
			Withdrawal:       domain.WithdrawalConfiguration{Strategy: domain.StrategyRMD, CurrentAge: &age},
		},
	}

	warnings := parser.Warnings(config)
	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings, "rmd strategy starts at age 65, before required distributions begin at 75")
	assert.Contains(t, warnings, "use_bootstrap is set but historical_data_path is empty")
}

func TestCreateExampleConfiguration(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()
	require.NotNil(t, config)
	assert.Equal(t, 10000, config.Simulation.NumRuns)
	assert.Len(t, config.Simulation.ScheduledIncomes, 2)
	assert.False(t, config.Simulation.Portfolio.IsEmpty())
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	fixNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SaveConfiguration(example, path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, example.Simulation.NumRuns, loaded.Simulation.NumRuns)
	assert.Equal(t, example.Simulation.Withdrawal.Strategy, loaded.Simulation.Withdrawal.Strategy)
	assert.True(t, example.Simulation.InitialPortfolioValue.Equal(loaded.Simulation.InitialPortfolioValue))
	assert.Equal(t, example.Simulation.ScheduledIncomes[0].ID, loaded.Simulation.ScheduledIncomes[0].ID)
	assert.True(t, example.BirthDate.Equal(*loaded.BirthDate))
}
