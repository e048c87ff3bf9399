package calculation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultInflationVolatility is the CPI-U standard deviation used when parametric mode
// has to draw its own inflation.
var defaultInflationVolatility = decimal.NewFromFloat(0.0137)

var one = decimal.NewFromInt(1)

// ReturnSample is one simulated year of market conditions
type ReturnSample struct {
	Nominal   decimal.Decimal // portfolio nominal return
	Real      decimal.Decimal // Fisher real return at Inflation
	Inflation decimal.Decimal // inflation paired with the return
	Applied   decimal.Decimal // the return the simulator compounds, per inflation strategy
	Index     int             // historical index drawn, -1 in parametric mode
}

// RealReturn converts a nominal return to a real one: (1+real) = (1+nominal)/(1+inflation)
func RealReturn(nominal, inflation decimal.Decimal) decimal.Decimal {
	return one.Add(nominal).Div(one.Add(inflation)).Sub(one)
}

// NominalReturn is the inverse of RealReturn: (1+nominal) = (1+real)*(1+inflation)
func NominalReturn(real, inflation decimal.Decimal) decimal.Decimal {
	return one.Add(real).Mul(one.Add(inflation)).Sub(one)
}

// ReturnGenerator produces annual portfolio returns. It holds only immutable inputs and is
// shared by all runs; randomness comes from the *rand.Rand each run passes in.
type ReturnGenerator struct {
	weights   map[domain.AssetClass]decimal.Decimal
	classes   []domain.AssetClass
	history   *domain.HistoricalData
	bootstrap bool
	sampleLen int

	strategy            domain.InflationStrategy
	inflationRate       decimal.Decimal
	inflationVolatility decimal.Decimal

	expected   decimal.Decimal
	volatility decimal.Decimal
}

// NewReturnGenerator prepares a generator for the portfolio in params. It fails with
// ErrEmptyPortfolio when there are no holdings and with ErrMissingHistoricalData when bootstrap
// mode cannot sample every held asset class from one shared index.
func NewReturnGenerator(params domain.SimulationParameters, history *domain.HistoricalData) (*ReturnGenerator, error) {
	if params.Portfolio.IsEmpty() {
		return nil, domain.ErrEmptyPortfolio
	}

	gen := &ReturnGenerator{
		weights:             params.Portfolio.Weights(),
		classes:             params.Portfolio.AssetClasses(),
		history:             history,
		bootstrap:           params.UseBootstrap,
		strategy:            params.InflationStrategy,
		inflationRate:       params.InflationRate,
		inflationVolatility: params.InflationVolatility,
	}
	if gen.strategy == "" {
		gen.strategy = domain.InflationConstantReal
	}
	if gen.inflationVolatility.IsZero() {
		gen.inflationVolatility = defaultInflationVolatility
	}

	if gen.bootstrap {
		n, err := history.CommonLength(gen.classes, gen.needsHistoricalInflation())
		if err != nil {
			return nil, err
		}
		gen.sampleLen = n
		return gen, nil
	}

	for _, class := range gen.classes {
		assumption, ok := params.AssumptionFor(class)
		if !ok {
			return nil, fmt.Errorf("no return assumption for asset class %s", class)
		}
		weight := gen.weights[class]
		gen.expected = gen.expected.Add(weight.Mul(assumption.ExpectedReturn))
		gen.volatility = gen.volatility.Add(weight.Mul(assumption.Volatility))
	}
	return gen, nil
}

// needsHistoricalInflation reports whether bootstrap sampling must read the inflation series
func (g *ReturnGenerator) needsHistoricalInflation() bool {
	return g.strategy == domain.InflationHistoricalCorrelated || g.history.IsReal()
}

// WeightedExpectedReturn is the allocation-weighted mean used in parametric mode
func (g *ReturnGenerator) WeightedExpectedReturn() decimal.Decimal { return g.expected }

// WeightedVolatility is the allocation-weighted standard deviation used in parametric mode
func (g *ReturnGenerator) WeightedVolatility() decimal.Decimal { return g.volatility }

// Next draws one year of market conditions
func (g *ReturnGenerator) Next(rng *rand.Rand) ReturnSample {
	if g.weights == nil {
		// zero-value portfolio: nothing to weight
		return g.finish(ReturnSample{Index: -1, Inflation: g.inflationRate})
	}
	if g.bootstrap {
		return g.finish(g.sampleHistorical(rng))
	}
	return g.finish(g.sampleParametric(rng))
}

// sampleHistorical resamples one calendar year jointly across asset classes and inflation
func (g *ReturnGenerator) sampleHistorical(rng *rand.Rand) ReturnSample {
	index := rng.Intn(g.sampleLen)

	weighted := decimal.Zero
	for _, class := range g.classes {
		series, _ := g.history.Series(class)
		weighted = weighted.Add(series[index].Mul(g.weights[class]))
	}

	sample := ReturnSample{Index: index, Inflation: g.inflationRate}
	if g.needsHistoricalInflation() {
		sample.Inflation = g.history.Inflation[index]
	}

	if g.history.IsReal() {
		historicalInflation := g.history.Inflation[index]
		sample.Nominal = NominalReturn(weighted, historicalInflation)
	} else {
		sample.Nominal = weighted
	}
	return sample
}

// sampleParametric draws from N(expected, volatility)
func (g *ReturnGenerator) sampleParametric(rng *rand.Rand) ReturnSample {
	z := decimal.NewFromFloat(boxMullerTransform(rng))
	sample := ReturnSample{
		Index:     -1,
		Nominal:   g.expected.Add(z.Mul(g.volatility)),
		Inflation: g.inflationRate,
	}
	if g.strategy == domain.InflationHistoricalCorrelated {
		zi := decimal.NewFromFloat(boxMullerTransform(rng))
		sample.Inflation = clampInflation(g.inflationRate.Add(zi.Mul(g.inflationVolatility)))
	}
	return sample
}

var (
	minDrawnInflation = decimal.NewFromFloat(-0.5)
	maxDrawnInflation = decimal.NewFromFloat(0.5)
)

// clampInflation keeps a drawn inflation rate inside bounds where the Fisher relation stays finite
func clampInflation(inflation decimal.Decimal) decimal.Decimal {
	if inflation.LessThan(minDrawnInflation) {
		return minDrawnInflation
	}
	if inflation.GreaterThan(maxDrawnInflation) {
		return maxDrawnInflation
	}
	return inflation
}

// finish fills Real and Applied from Nominal and Inflation
func (g *ReturnGenerator) finish(sample ReturnSample) ReturnSample {
	sample.Real = RealReturn(sample.Nominal, sample.Inflation)
	switch g.strategy {
	case domain.InflationConstantNominal:
		sample.Applied = sample.Nominal
	default:
		sample.Applied = sample.Real
	}
	return sample
}

// boxMullerTransform converts two uniform variates into one standard normal variate
func boxMullerTransform(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64() // (0, 1], keeps the log finite
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
