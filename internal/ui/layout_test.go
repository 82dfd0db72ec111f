package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestContentHeightExcludesBars(t *testing.T) {
	l := NewLayout(80, 24)
	if got := l.ContentHeight(); got != 22 {
		t.Errorf("ContentHeight = %d, want 22", got)
	}
}

func TestRenderHeaderFillsWidth(t *testing.T) {
	l := NewLayout(60, 24)
	header := l.RenderHeader("ZERO HOUR", "09:30:00")
	if got := lipgloss.Width(header); got != 60 {
		t.Errorf("header width = %d, want 60", got)
	}
	if !strings.Contains(header, "09:30:00") {
		t.Errorf("header %q is missing the clock", header)
	}
}

func TestRenderStatusBarFillsWidth(t *testing.T) {
	for _, width := range []int{40, 60, 120} {
		l := NewLayout(width, 24)
		bar := l.RenderStatusBar("q quit | ? help")
		if got := lipgloss.Width(bar); got != width {
			t.Errorf("status bar width at %d = %d", width, got)
		}
	}
}

func TestRenderCardsShowsEveryCard(t *testing.T) {
	l := NewLayout(90, 24)
	out := l.RenderCards(
		Card{Label: "Completed", Value: "3"},
		Card{Label: "Success Rate", Value: "75%"},
	)
	for _, want := range []string{"Completed", "3", "Success Rate", "75%"} {
		if !strings.Contains(out, want) {
			t.Errorf("cards missing %q:\n%s", want, out)
		}
	}
	if l.RenderCards() != "" {
		t.Error("no cards should render empty")
	}
}
