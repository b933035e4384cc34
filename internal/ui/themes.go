package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme identifies the active colour scheme by name.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
}

var (
	// DarkTheme is the default palette: light blue on charcoal.
	DarkTheme = Theme{Name: "dark"}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	// currentTheme is the active theme used throughout the application.
	// Defaults to DarkTheme but can be changed via SetTheme or InitTheme.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the TUI dashboard.
// Each field is a lipgloss.TerminalColor suitable for use with
// lipgloss.Style.Foreground() and Background().
type TUITheme struct {
	Bg     lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor

	// GaugeFill is the colour of the dial face.
	GaugeFill lipgloss.TerminalColor
	// GaugeGlow is the colour of the translucent halo around the dial.
	GaugeGlow lipgloss.TerminalColor
}

// Named colours of the dial. The accent is CSS "lightblue".
const (
	ColorCharcoal  = "#333333"
	ColorLightBlue = "#ADD8E6"
	ColorGlow      = "#5A7F8C"
)

var (
	// DarkTUITheme is the charcoal and light-blue dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:        lipgloss.Color(ColorCharcoal),
		Text:      lipgloss.Color(ColorLightBlue),
		Border:    lipgloss.Color(ColorLightBlue),
		Accent:    lipgloss.Color(ColorLightBlue),
		Error:     lipgloss.Color("#FF4444"),
		Dim:       lipgloss.Color("#666666"),
		GaugeFill: lipgloss.Color(ColorCharcoal),
		GaugeGlow: lipgloss.Color(ColorGlow),
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:        lipgloss.NoColor{},
		Text:      lipgloss.NoColor{},
		Border:    lipgloss.NoColor{},
		Accent:    lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Dim:       lipgloss.NoColor{},
		GaugeFill: lipgloss.NoColor{},
		GaugeGlow: lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI theme matching the currently active theme.
// When NoColorTheme is active, returns NoColorTUITheme; otherwise DarkTUITheme.
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

// SetTheme changes the active theme by name.
// Valid names are: "dark", "none". Unknown names default to dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case NoColorTheme.Name:
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// If noColor is true or NO_COLOR is set, colors are disabled.
func InitTheme(noColor bool) {
	// Any value, even empty, disables colors (per no-color.org)
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		noColor = true
	}

	if noColor {
		SetTheme(NoColorTheme.Name)
		return
	}
	SetTheme(DarkTheme.Name)
}
