// Package output provides styled terminal rendering for aw-analyzer:
// tick-result summaries and trend deltas printed to stdout.
package output

import "github.com/charmbracelet/lipgloss"

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorOK is used for notified jobs and improved trend deltas.
	ColorOK = lipgloss.Color("#66bb6a")

	// ColorAlert is used for aborted ticks and fatal errors.
	ColorAlert = lipgloss.Color("#ef5350")

	// ColorWarn is used for skipped jobs and suppressed notifications.
	ColorWarn = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleOK is used for notified jobs.
	StyleOK = lipgloss.NewStyle().
			Foreground(ColorOK)

	// StyleAlert is used for aborted ticks.
	StyleAlert = lipgloss.NewStyle().
			Foreground(ColorAlert)

	// StyleWarn is used for skipped jobs.
	StyleWarn = lipgloss.NewStyle().
			Foreground(ColorWarn)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for metric labels.
	StyleLabel = lipgloss.NewStyle().
			Width(24)

	// StyleValue is used for metric values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Width(12)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleOK = plain
		StyleAlert = plain
		StyleWarn = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(24)
		StyleValue = plain.Width(12)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}
