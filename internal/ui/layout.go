package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader renders the top bar with the title on the left and the
// wall clock on the right.
func (l Layout) RenderHeader(title string, clock string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	clockRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(clock)

	gap := max(l.Width-lipgloss.Width(titleRendered)-lipgloss.Width(clockRendered), 0)

	filler := fill(gap, theme.HeaderStyle)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		clockRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := max(l.Width-lipgloss.Width(rendered), 0)

	filler := fill(gap, theme.StatusBarStyle)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// fill returns n blank columns in the background of bar. The bar's own
// padding is not applied.
func fill(n int, bar lipgloss.Style) string {
	return lipgloss.NewStyle().
		Background(bar.GetBackground()).
		Render(strings.Repeat(" ", n))
}

// Card is one stat tile in the dashboard's top row.
type Card struct {
	Label string
	Value string
	Style lipgloss.Style
}

// RenderCards lays the cards out side by side, splitting the width evenly.
func (l Layout) RenderCards(cards ...Card) string {
	if len(cards) == 0 {
		return ""
	}
	// Two border columns per card.
	width := max(l.Width/len(cards)-2, 10)

	tiles := make([]string, len(cards))
	for i, c := range cards {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			theme.HelpStyle.Render(c.Label),
			c.Style.Render(c.Value),
		)
		tiles[i] = theme.PanelStyle.Width(width).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
