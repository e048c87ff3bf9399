package calculation

import (
	"testing"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int { return &i }

// assertDecimal compares by value, so 1.50 equals 1.5
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

// fixedReturnParams builds a request whose single asset class returns exactly rate every year,
// compounded nominally, so balances can be checked by hand.
func fixedReturnParams(rate string) domain.SimulationParameters {
	return domain.SimulationParameters{
		NumRuns:               1,
		TotalYears:            5,
		InflationRate:         dec("0.03"),
		InflationStrategy:     domain.InflationConstantNominal,
		InitialPortfolioValue: dec("1000000"),
		Portfolio: domain.Portfolio{Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetClassLargeCap: dec("1"),
		}},
		Assumptions: map[domain.AssetClass]domain.AssetClassAssumption{
			domain.AssetClassLargeCap: {ExpectedReturn: dec(rate), Volatility: decimal.Zero},
		},
		Withdrawal: domain.WithdrawalConfiguration{
			Strategy: domain.StrategyFixedPercentage,
			Rate:     dec("0.04"),
		},
	}
}

// marketParams builds a volatile two-asset request using the built-in assumptions
func marketParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		NumRuns:               500,
		TotalYears:            30,
		InflationRate:         dec("0.025"),
		InflationStrategy:     domain.InflationConstantReal,
		InitialPortfolioValue: dec("1000000"),
		Seed:                  12345,
		Portfolio: domain.Portfolio{Holdings: map[domain.AssetClass]decimal.Decimal{
			domain.AssetClassLargeCap: dec("600000"),
			domain.AssetClassBonds:    dec("400000"),
		}},
		Withdrawal: domain.WithdrawalConfiguration{
			Strategy: domain.StrategyFixedPercentage,
			Rate:     dec("0.04"),
		},
	}
}

// threeYearHistory is a small aligned table for bootstrap tests
func threeYearHistory() *domain.HistoricalData {
	return &domain.HistoricalData{
		Years: []int{2001, 2002, 2003},
		Returns: map[domain.AssetClass][]decimal.Decimal{
			domain.AssetClassLargeCap: {dec("0.10"), dec("-0.20"), dec("0.30")},
			domain.AssetClassBonds:    {dec("0.01"), dec("0.02"), dec("0.03")},
		},
		Inflation: []decimal.Decimal{dec("0.015"), dec("0.025"), dec("0.035")},
		Basis:     domain.BasisNominal,
	}
}

// runOnce drives a single lifecycle through the same plan RunSimulation uses
func runOnce(t *testing.T, params domain.SimulationParameters, history *domain.HistoricalData) domain.SimulationRun {
	t.Helper()
	gen, err := NewReturnGenerator(params, history)
	if err != nil {
		t.Fatalf("NewReturnGenerator: %v", err)
	}
	return newSimulationPlan(params, gen).runSingleSimulation(1, newRunRand(7, 0))
}

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {}
func (l *recordingLogger) Infof(format string, args ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, format)
}
func (l *recordingLogger) Errorf(format string, args ...any) {}
