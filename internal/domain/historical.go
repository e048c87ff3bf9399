package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReturnBasis tells whether historical return series are nominal or already inflation-adjusted
type ReturnBasis string

const (
	BasisNominal ReturnBasis = "nominal"
	BasisReal    ReturnBasis = "real"
)

// HistoricalData is an immutable table of annual observations. Index i of every series
// refers to the same calendar year, Years[i].
type HistoricalData struct {
	Years     []int                            `json:"years"`
	Returns   map[AssetClass][]decimal.Decimal `json:"returns"`
	Inflation []decimal.Decimal                `json:"inflation"`
	Basis     ReturnBasis                      `json:"basis"`
}

// IsReal reports whether the return series are real returns
func (h *HistoricalData) IsReal() bool {
	return h != nil && h.Basis == BasisReal
}

// Series returns the return series for an asset class
func (h *HistoricalData) Series(class AssetClass) ([]decimal.Decimal, bool) {
	if h == nil {
		return nil, false
	}
	series, ok := h.Returns[class]
	return series, ok
}

// CommonLength returns the shared length of the series for the given asset classes (and the
// inflation series when requested). Absent, empty or differently sized series are reported as
// ErrMissingHistoricalData.
func (h *HistoricalData) CommonLength(classes []AssetClass, withInflation bool) (int, error) {
	if h == nil {
		return 0, fmt.Errorf("%w: no historical table supplied", ErrMissingHistoricalData)
	}
	length := -1
	for _, class := range classes {
		series, ok := h.Returns[class]
		if !ok || len(series) == 0 {
			return 0, fmt.Errorf("%w: no return series for asset class %s", ErrMissingHistoricalData, class)
		}
		if length >= 0 && len(series) != length {
			return 0, fmt.Errorf("%w: asset class %s has %d observations, expected %d", ErrMissingHistoricalData, class, len(series), length)
		}
		length = len(series)
	}
	if withInflation {
		if len(h.Inflation) == 0 {
			return 0, fmt.Errorf("%w: no inflation series", ErrMissingHistoricalData)
		}
		if length >= 0 && len(h.Inflation) != length {
			return 0, fmt.Errorf("%w: inflation has %d observations, expected %d", ErrMissingHistoricalData, len(h.Inflation), length)
		}
		length = len(h.Inflation)
	}
	if length <= 0 {
		return 0, fmt.Errorf("%w: nothing to sample", ErrMissingHistoricalData)
	}
	if len(h.Years) > 0 && len(h.Years) != length {
		return 0, fmt.Errorf("%w: %d year labels for %d observations", ErrMissingHistoricalData, len(h.Years), length)
	}
	return length, nil
}
