package domain

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidParameters is matched by every *InvalidParametersError
	ErrInvalidParameters = errors.New("invalid simulation parameters")
	// ErrEmptyPortfolio means there is nothing to generate a return for
	ErrEmptyPortfolio = errors.New("portfolio has no assets")
	// ErrMissingHistoricalData means bootstrap mode cannot sample a series the portfolio references
	ErrMissingHistoricalData = errors.New("historical data missing or misaligned")
)

// InvalidParametersError carries every violation found, so they can be reported together
type InvalidParametersError struct {
	Violations []string
}

func (e *InvalidParametersError) Error() string {
	return ErrInvalidParameters.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *InvalidParametersError) Unwrap() error { return ErrInvalidParameters }
