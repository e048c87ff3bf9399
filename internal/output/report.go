package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// ErrUnsupportedFormat is returned for format names no formatter answers to
var ErrUnsupportedFormat = errors.New("unsupported report format")

// extensionFor maps a canonical formatter name to a file extension.
func extensionFor(name string) string {
	switch {
	case name == "console":
		return "txt"
	case name == "yearly-csv":
		return "yearly.csv"
	case strings.Contains(name, "csv"):
		return "csv"
	default:
		return name
	}
}

// GenerateReport writes the result in the named format to dir and returns the files written.
// The pseudo-format "all" writes every registered format.
func GenerateReport(result *domain.SimulationResult, format, dir string) ([]string, error) {
	if result == nil {
		return nil, errors.New("no simulation result to report")
	}
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, name := range AvailableFormatterNames() {
			f := GetFormatterByName(name)
			filename, err := WriteFormatted(f, result, dir, extensionFor(name))
			if err != nil {
				return written, fmt.Errorf("%s report: %w", name, err)
			}
			written = append(written, filename)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	filename, err := WriteFormatted(f, result, dir, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{filename}, nil
}
