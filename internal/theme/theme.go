package theme

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorIndigo  = lipgloss.AdaptiveColor{Dark: "#748FFC", Light: "#4C51BF"}
	ColorPink    = lipgloss.AdaptiveColor{Dark: "#F783AC", Light: "#B83280"}
	ColorBrown   = lipgloss.AdaptiveColor{Dark: "#C19A6B", Light: "#7B4A12"}
	ColorTeal    = lipgloss.AdaptiveColor{Dark: "#38D9A9", Light: "#2C7A7B"}
	ColorCyan    = lipgloss.AdaptiveColor{Dark: "#66D9E8", Light: "#0987A0"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// goalColors maps the color names stored on goals to palette entries.
var goalColors = map[string]lipgloss.AdaptiveColor{
	"red":    ColorRed,
	"orange": ColorOrange,
	"yellow": ColorYellow,
	"green":  ColorGreen,
	"blue":   ColorBlue,
	"indigo": ColorIndigo,
	"purple": ColorMagenta,
	"pink":   ColorPink,
	"brown":  ColorBrown,
	"gray":   ColorGray,
	"teal":   ColorTeal,
	"cyan":   ColorCyan,
}

// DefaultGoalColor is the name used when a goal has none.
const DefaultGoalColor = "blue"

// ColorForName resolves a goal color name, case-insensitively. Unknown
// names fall back to the default goal color.
func ColorForName(name string) lipgloss.AdaptiveColor {
	if c, ok := goalColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return goalColors[DefaultGoalColor]
}

// GoalColorNames returns the known color names in alphabetical order.
func GoalColorNames() []string {
	names := make([]string, 0, len(goalColors))
	for n := range goalColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the goal detail content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// CompletedStyle renders checked-off items.
var CompletedStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// GoalTitleStyle returns a bold style tinted with the goal's color.
func GoalTitleStyle(colorName string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorForName(colorName))
}

// ProgressBar renders a fixed-width bar for a completion share in [0, 1].
func ProgressBar(progress float64, width int, colorName string) string {
	if width <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)

	fill := lipgloss.NewStyle().Foreground(ColorForName(colorName))
	empty := lipgloss.NewStyle().Foreground(ColorSubtle)
	return fill.Render(strings.Repeat("█", filled)) +
		empty.Render(strings.Repeat("░", width-filled))
}
