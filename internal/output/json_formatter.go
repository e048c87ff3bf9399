package output

import (
	"encoding/json"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// JSONFormatter serializes the simulation result as pretty-printed JSON.
// Per-run detail is left out unless IncludeRuns is set.
type JSONFormatter struct {
	IncludeRuns bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	view := *result
	if !j.IncludeRuns {
		view.Runs = nil
	}
	return json.MarshalIndent(view, "", "  ")
}
