package output

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#FFA500")
	ColorDanger  = lipgloss.Color("#FF4672")
	ColorMuted   = lipgloss.Color("#626262")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(28)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true)

	MetricPositiveStyle = MetricValueStyle.Foreground(ColorSuccess)
	MetricWarningStyle  = MetricValueStyle.Foreground(ColorWarning)
	MetricNegativeStyle = MetricValueStyle.Foreground(ColorDanger)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Align(lipgloss.Right).
				Width(16)

	TableCellStyle = lipgloss.NewStyle().
			Align(lipgloss.Right).
			Width(16)

	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// successStyle colors a success rate: green from 90%, amber from 75%, red below.
func successStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 0.90:
		return MetricPositiveStyle
	case rate >= 0.75:
		return MetricWarningStyle
	default:
		return MetricNegativeStyle
	}
}
