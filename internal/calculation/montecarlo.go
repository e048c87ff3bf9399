package calculation

import (
	"context"
	"runtime"

	"github.com/rpgo/portfolio-survival/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of runs between progress notifications
const DefaultBatchSize = 1000

// ProgressFunc receives the number of completed runs after each batch
type ProgressFunc func(completed int)

// MonteCarloSimulator runs independent lifecycles and aggregates them
type MonteCarloSimulator struct {
	HistoricalData *domain.HistoricalData
	Concurrency    int // worker limit, defaults to GOMAXPROCS
	BatchSize      int
	Progress       ProgressFunc
	Logger         Logger
}

// NewMonteCarloSimulator creates a simulator over an immutable historical table (nil is fine
// for parametric-only use)
func NewMonteCarloSimulator(historicalData *domain.HistoricalData) *MonteCarloSimulator {
	return &MonteCarloSimulator{
		HistoricalData: historicalData,
		BatchSize:      DefaultBatchSize,
		Logger:         NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	mcs.Logger = loggerOrNop(l)
}

// RunSimulation validates the request, runs every lifecycle and returns the aggregate.
//
// Errors are raised only before the first run: *domain.InvalidParametersError,
// domain.ErrEmptyPortfolio or domain.ErrMissingHistoricalData. The context is consulted
// between batches; a cancelled context stops further batches and returns ctx.Err(), never a
// partial result.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, params domain.SimulationParameters) (*domain.SimulationResult, error) {
	logger := loggerOrNop(mcs.Logger)

	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	generator, err := NewReturnGenerator(params, mcs.HistoricalData)
	if err != nil {
		return nil, err
	}

	if params.Withdrawal.Strategy == domain.StrategyRMD && params.Withdrawal.CurrentAge == nil {
		logger.Warnf("rmd strategy without current_age; falling back to %s of balance", params.Withdrawal.Rate.String())
	}
	if len(params.ScheduledIncomes) > 0 && params.RetirementAge == nil {
		logger.Warnf("%d scheduled income sources ignored: no retirement age", len(params.ScheduledIncomes))
	}

	seed := params.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	plan := newSimulationPlan(params, generator)
	runs := make([]domain.SimulationRun, params.NumRuns)

	batchSize := mcs.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := mcs.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	logger.Debugf("starting %d runs (seed %d, bootstrap %t, %d workers)", params.NumRuns, seed, params.UseBootstrap, concurrency)

	for start := 0; start < params.NumRuns; start += batchSize {
		if err := ctx.Err(); err != nil {
			logger.Infof("simulation stopped after %d of %d runs: %v", start, params.NumRuns, err)
			return nil, err
		}
		end := start + batchSize
		if end > params.NumRuns {
			end = params.NumRuns
		}

		var g errgroup.Group
		g.SetLimit(concurrency)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				runs[i] = plan.runSingleSimulation(i+1, newRunRand(seed, i))
				return nil
			})
		}
		_ = g.Wait() // runs never fail once started

		if mcs.Progress != nil {
			mcs.Progress(end)
		}
	}

	result := aggregateResults(params, seed, runs)
	logger.Infof("completed %d runs: success rate %s", result.NumRuns, result.SuccessRate.StringFixed(4))
	return result, nil
}
