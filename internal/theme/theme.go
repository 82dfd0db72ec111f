package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by display.theme.
const (
	Default = "default"
	Mono    = "mono"
)

// Palette colors, set by Use.
var (
	ColorAccent lipgloss.TerminalColor
	ColorGreen  lipgloss.TerminalColor
	ColorYellow lipgloss.TerminalColor
	ColorRed    lipgloss.TerminalColor
	ColorOrange lipgloss.TerminalColor
	ColorGray   lipgloss.TerminalColor
	ColorWhite  lipgloss.TerminalColor
	ColorSubtle lipgloss.TerminalColor
	ColorBorder lipgloss.TerminalColor
)

// Styles shared by every view. They are rebuilt by Use.
var (
	// HeaderStyle is used for the title bar and section headers.
	HeaderStyle lipgloss.Style

	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style

	// PanelStyle wraps the stat cards and side panels.
	PanelStyle lipgloss.Style

	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	CompletedStyle    lipgloss.Style

	// HelpStyle is used for keyboard hints and empty-state text.
	HelpStyle lipgloss.Style

	// ErrorStyle renders failed-operation notices.
	ErrorStyle lipgloss.Style

	// BigNumberStyle renders the value line of a stat card.
	BigNumberStyle lipgloss.Style
)

func init() {
	_ = Use(Default)
}

// Use switches the palette. Unknown names are rejected and leave the
// current palette in place.
func Use(name string) error {
	switch name {
	case Default, "":
		ColorAccent = lipgloss.AdaptiveColor{Dark: "#FF6B35", Light: "#C0392B"}
		ColorGreen = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
		ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
		ColorRed = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
		ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
		ColorGray = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
		ColorWhite = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
		ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
		ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	case Mono:
		ColorAccent = lipgloss.NoColor{}
		ColorGreen = lipgloss.NoColor{}
		ColorYellow = lipgloss.NoColor{}
		ColorRed = lipgloss.NoColor{}
		ColorOrange = lipgloss.NoColor{}
		ColorGray = lipgloss.NoColor{}
		ColorWhite = lipgloss.NoColor{}
		ColorSubtle = lipgloss.NoColor{}
		ColorBorder = lipgloss.NoColor{}
	default:
		return fmt.Errorf("unknown theme %q (want %q or %q)", name, Default, Mono)
	}
	build()
	return nil
}

func build() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorAccent).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorAccent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorAccent)

	CompletedStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Strikethrough(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorRed)

	BigNumberStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite)
}

// RateStyle colors a success rate: green from 80%, yellow from 50%,
// red below.
func RateStyle(rate int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case rate >= 80:
		return base.Foreground(ColorGreen)
	case rate >= 50:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorRed)
	}
}

// CountdownStyle turns orange in the last hour and red in the last
// fifteen minutes.
func CountdownStyle(hours, minutes int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case hours == 0 && minutes < 15:
		return base.Foreground(ColorRed)
	case hours == 0:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorWhite)
	}
}

// CategoryStyle returns the label style for an item category.
func CategoryStyle(category string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch category {
	case "Sales", "Revenue":
		return base.Foreground(ColorGreen)
	case "Marketing", "Growth":
		return base.Foreground(ColorOrange)
	case "Operations", "Personal":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}
