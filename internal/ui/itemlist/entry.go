package itemlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/theme"
)

// Entry is one row of the list: an item or a team goal.
type Entry struct {
	ID       int64
	Name     string
	When     string
	Category string
	Done     bool

	// Team marks team goals, which cannot be completed.
	Team bool
}

// FromItem converts an item for display.
func FromItem(it model.Item, done bool) Entry {
	when := it.Date
	if it.Time != "" {
		when += " " + it.Time
	}
	return Entry{
		ID:       it.ID,
		Name:     it.Name,
		When:     when,
		Category: it.Category,
		Done:     done,
	}
}

// FromTeamGoal converts a team goal for display.
func FromTeamGoal(g model.TeamGoal) Entry {
	return Entry{
		ID:       g.ID,
		Name:     g.Name,
		When:     g.Deadline,
		Category: "Team: " + g.TeamCode,
		Team:     true,
	}
}

// FilterValue returns the string used for fuzzy filtering.
func (e Entry) FilterValue() string { return e.Name }

// Delegate implements list.ItemDelegate for rendering entries.
type Delegate struct{}

// Height returns the number of lines each entry takes.
func (d Delegate) Height() int { return 1 }

// Spacing returns the number of blank lines between entries.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-entry messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single entry line.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(Entry)
	if !ok {
		return
	}

	prefix := "○"
	switch {
	case e.Team:
		prefix = "◆"
	case e.Done:
		prefix = "✓"
	}

	name := e.Name
	if e.Done {
		name = theme.CompletedStyle.Render(name)
	}

	line := strings.Join([]string{
		prefix,
		name,
		theme.HelpStyle.Render(e.When),
		theme.CategoryStyle(strings.TrimPrefix(e.Category, "Team: ")).Render(e.Category),
	}, " ")

	style := theme.ListItemStyle
	if index == m.Index() {
		style = theme.SelectedItemStyle
	}
	fmt.Fprint(w, style.Render(line))
}
