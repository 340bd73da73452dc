// Package output provides styled terminal rendering helpers for projscout.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#4dd0e1")

	// ColorSuccess is used for positive indicators.
	ColorSuccess = lipgloss.Color("#81c784")

	// ColorError is used for failures and removals.
	ColorError = lipgloss.Color("#e57373")

	// ColorWarning is used for caution indicators.
	ColorWarning = lipgloss.Color("#ffb74d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#8a8a8a")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers and table headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text such as paths.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for setting labels in doctor output.
	StyleLabel = lipgloss.NewStyle().
			Width(28)
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
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(28)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// AutoColor resolves the effective color setting from the configured
// preference and an explicit disable flag, turning color off when stdout is
// not a terminal.
func AutoColor(prefer, disable bool) {
	if disable || !prefer || !isatty.IsTerminal(os.Stdout.Fd()) {
		SetNoColor(true)
	}
}
