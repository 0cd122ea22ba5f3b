package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for results.
	Primary string
	// Secondary is used for terms and other less prominent elements.
	Secondary string
	// Success indicates positive outcomes or completed operations.
	Success string
	// Warning is used for caution messages and negative results.
	Warning string
	// Error indicates failures.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the terminal UI.
type TUITheme struct {
	Text     lipgloss.TerminalColor
	Border   lipgloss.TerminalColor
	Accent   lipgloss.TerminalColor
	Negative lipgloss.TerminalColor
	Error    lipgloss.TerminalColor
	Dim      lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Text:     lipgloss.Color("#E0E0E0"),
		Border:   lipgloss.Color("#4488FF"),
		Accent:   lipgloss.Color("#9ece6a"),
		Negative: lipgloss.Color("#FFB347"),
		Error:    lipgloss.Color("#FF4444"),
		Dim:      lipgloss.Color("#666666"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:     lipgloss.NoColor{},
		Border:   lipgloss.NoColor{},
		Accent:   lipgloss.NoColor{},
		Negative: lipgloss.NoColor{},
		Error:    lipgloss.NoColor{},
		Dim:      lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI theme matching the currently active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// FRACALC_THEME=light selects the light palette.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	if os.Getenv("FRACALC_THEME") == LightTheme.Name {
		currentTheme = LightTheme
		return
	}
	currentTheme = DarkTheme
}

// ColorPrimary returns the escape code for results.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for terms and labels.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success escape code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning escape code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error escape code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorForSign returns the warning color for negative values and the
// primary color otherwise.
func ColorForSign(negative bool) string {
	if negative {
		return ColorYellow()
	}
	return ColorPrimary()
}
