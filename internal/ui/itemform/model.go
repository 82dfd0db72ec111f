package itemform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/state"
	"github.com/nhle/zero-hour/internal/theme"
)

// categorySuggestions are offered while typing a category.
var categorySuggestions = []string{
	"Sales", "Marketing", "Operations", "Finance", "Growth", "Personal",
}

// ItemSubmittedMsg is dispatched when the item form is completed.
type ItemSubmittedMsg struct {
	Input state.ItemInput
}

// TeamGoalSubmittedMsg is dispatched when the team goal form is completed.
type TeamGoalSubmittedMsg struct {
	Input state.TeamGoalInput
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// Mode selects which form is shown.
type Mode int

const (
	ModeTarget Mode = iota
	ModeGoal
	ModeTeamGoal
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	date        string
	clock       string
	category    string
	description string
	teamCode    string
}

// Model is the Bubble Tea model for the create forms.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   Mode
	width  int
	height int
}

// New creates a new form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start resets the bindings and builds the form for mode. today seeds
// the date field.
func (m *Model) Start(mode Mode, today time.Time) tea.Cmd {
	m.mode = mode
	*m.fb = formBindings{date: today.Format(time.DateOnly)}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.handleSubmit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(m.mode.title()) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (mode Mode) title() string {
	switch mode {
	case ModeGoal:
		return "New Goal"
	case ModeTeamGoal:
		return "New Team Goal"
	default:
		return "New Target"
	}
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field
	if m.mode == ModeTeamGoal {
		fields = []huh.Field{
			huh.NewInput().
				Title("Goal").
				Placeholder("What is the team aiming for?").
				Value(&m.fb.name).
				Validate(validateRequired("Goal")),
			huh.NewInput().
				Title("Team Code").
				Placeholder("Shared with your team").
				Value(&m.fb.teamCode).
				Validate(validateRequired("Team code")),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
		}
	} else {
		fields = []huh.Field{
			huh.NewInput().
				Title("Name").
				Placeholder("What needs to be done?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
		}
		if m.mode == ModeTarget {
			fields = append(fields,
				huh.NewInput().
					Title("Time").
					Placeholder("HH:MM").
					Value(&m.fb.clock).
					Validate(validateClock),
			)
		}
		fields = append(fields,
			huh.NewInput().
				Title("Category").
				Suggestions(categorySuggestions).
				Value(&m.fb.category).
				Validate(validateRequired("Category")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	if m.mode == ModeTeamGoal {
		in := state.TeamGoalInput{
			Name:     strings.TrimSpace(m.fb.name),
			TeamCode: strings.TrimSpace(m.fb.teamCode),
			Deadline: strings.TrimSpace(m.fb.date),
		}
		return func() tea.Msg { return TeamGoalSubmittedMsg{Input: in} }
	}

	in := state.ItemInput{
		Name:        strings.TrimSpace(m.fb.name),
		Date:        strings.TrimSpace(m.fb.date),
		Category:    strings.TrimSpace(m.fb.category),
		Description: strings.TrimSpace(m.fb.description),
	}
	if m.mode == ModeTarget {
		in.Time = strings.TrimSpace(m.fb.clock)
	}
	return func() tea.Msg { return ItemSubmittedMsg{Input: in} }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateClock(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid time, use HH:MM")
	}
	return nil
}
