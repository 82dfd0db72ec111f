// Package app is the terminal dashboard: the root Bubble Tea model that
// routes between views and renders the state owned by a state.Manager.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/zero-hour/internal/clock"
	"github.com/nhle/zero-hour/internal/keys"
	"github.com/nhle/zero-hour/internal/metrics"
	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/state"
	"github.com/nhle/zero-hour/internal/theme"
	"github.com/nhle/zero-hour/internal/ui"
	"github.com/nhle/zero-hour/internal/ui/command"
	"github.com/nhle/zero-hour/internal/ui/confirm"
	helpview "github.com/nhle/zero-hour/internal/ui/help"
	"github.com/nhle/zero-hour/internal/ui/itemform"
	"github.com/nhle/zero-hour/internal/ui/itemlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewForm
	ViewConfirm
	ViewHelp
	ViewCommand
)

// panel is the list that receives navigation keys.
type panel int

const (
	panelItems panel = iota
	panelTeam
)

// Options configures the dashboard.
type Options struct {
	Manager *state.Manager
	Clock   clock.Clock
	Logger  *slog.Logger

	// TickInterval is how often the clock and countdown refresh.
	TickInterval time.Duration

	// ExportDir receives reports written with the export key.
	ExportDir string

	// Rand drives the display-only mission progress. Nil uses the
	// global source.
	Rand *rand.Rand
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	mgr       *state.Manager
	clock     clock.Clock
	logger    *slog.Logger
	tick      time.Duration
	exportDir string
	rng       *rand.Rand

	items       itemlist.Model
	team        itemlist.Model
	focus       panel
	form        itemform.Model
	dialog      confirm.Model
	helpView    helpview.Model
	commandView command.Model

	events      chan state.Event
	unsubscribe func()

	snapshot model.AppState
	summary  metrics.Summary
	missions []metrics.Mission
	now      time.Time

	notice    string
	noticeErr bool
	ready     bool
}

// New creates the dashboard and subscribes it to opts.Manager.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	k := keys.DefaultKeyMap()
	events := make(chan state.Event, 16)
	unsubscribe := opts.Manager.Subscribe(func(ev state.Event) {
		select {
		case events <- ev:
		default:
			// A refresh is already queued; the next snapshot covers this event.
		}
	})

	m := Model{
		currentView: ViewDashboard,
		layout:      ui.NewLayout(80, 24),
		keys:        k,
		mgr:         opts.Manager,
		clock:       opts.Clock,
		logger:      opts.Logger,
		tick:        opts.TickInterval,
		exportDir:   opts.ExportDir,
		rng:         opts.Rand,
		team:        itemlist.New("Team Goals", "No team goals yet.\nPress T to create one.", 40, 10),
		form:        itemform.New(80, 24),
		dialog:      confirm.New(80),
		helpView:    helpview.New(k, "ZERO HOUR", 80, 24),
		commandView: command.New(80, 24),
		events:      events,
		unsubscribe: unsubscribe,
		now:         opts.Clock.Now(),
	}
	m.items = itemlist.New(m.itemsTitle(), fmt.Sprintf("No %s yet.\nPress n to create one.", strings.ToLower(m.itemsTitle())), 40, 10)
	m.refresh()
	return m
}

func (m Model) goals() bool {
	return m.mgr.Variant() == model.VariantGoals
}

func (m Model) itemsTitle() string {
	if m.goals() {
		return "Goals"
	}
	return "Targets"
}

// Init starts listening for state changes and the clock tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.tickCmd())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tickMsg:
		m.now = m.clock.Now()
		return m, m.tickCmd()

	case stateChangedMsg:
		m.logger.Debug("dashboard refresh", "event", msg.event.Kind.String(), "id", msg.event.ID)
		m.refresh()
		return m, m.waitForEvent()

	case actionResultMsg:
		m.setNotice(msg.notice, msg.err)
		if errors.Is(msg.err, state.ErrNoUserCode) {
			cmd := m.promptLogin()
			return m, cmd
		}
		return m, nil

	case itemform.ItemSubmittedMsg:
		m.currentView = ViewDashboard
		return m, m.createItem(msg.Input)

	case itemform.TeamGoalSubmittedMsg:
		m.currentView = ViewDashboard
		return m, m.createTeamGoal(msg.Input)

	case itemform.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case confirm.ResultMsg:
		m.currentView = ViewDashboard
		if !msg.Confirmed {
			m.setNotice("Cancelled", nil)
			return m, nil
		}
		return m, m.confirmed(msg)

	case command.CommandMsg:
		m.currentView = ViewDashboard
		m.commandView.Blur()
		cmd := m.executeCommand(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.currentView {
		case ViewDashboard:
			return m.handleDashboardKeys(msg)
		case ViewHelp:
			if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
				m.currentView = m.previousView
				return m, nil
			}
		case ViewCommand:
			if msg.String() == "esc" {
				m.commandView.Blur()
				m.currentView = ViewDashboard
				return m, nil
			}
		case ViewConfirm:
			if msg.String() == "esc" {
				cmd := m.dialog.Decline()
				return m, cmd
			}
		case ViewForm:
			if msg.String() == "esc" {
				m.currentView = ViewDashboard
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleDashboardKeys processes keys while the dashboard is showing.
func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()

	case "?":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case ":":
		m.notice = ""
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd

	case "tab":
		if m.goals() {
			if m.focus == panelItems {
				m.focus = panelTeam
			} else {
				m.focus = panelItems
			}
		}
		return m, nil

	case "n":
		if m.needsLogin() {
			cmd := m.promptLogin()
			return m, cmd
		}
		mode := itemform.ModeTarget
		if m.goals() {
			mode = itemform.ModeGoal
		}
		m.currentView = ViewForm
		cmd := m.form.Start(mode, m.clock.Now())
		return m, cmd

	case "T":
		if !m.goals() {
			m.setNotice("", state.ErrTeamGoalsUnsupported)
			return m, nil
		}
		if m.needsLogin() {
			cmd := m.promptLogin()
			return m, cmd
		}
		m.currentView = ViewForm
		cmd := m.form.Start(itemform.ModeTeamGoal, m.clock.Now())
		return m, cmd

	case "x", "enter":
		if e, ok := m.items.Selected(); ok && m.focus == panelItems {
			return m, m.completeItem(e.ID)
		}
		return m, nil

	case "d":
		if m.focus == panelTeam {
			if e, ok := m.team.Selected(); ok {
				m.currentView = ViewConfirm
				cmd := m.dialog.Ask(state.PromptDeleteTeamGoal, confirm.ActionDeleteTeamGoal, e.ID)
				return m, cmd
			}
			return m, nil
		}
		if e, ok := m.items.Selected(); ok {
			prompt := state.PromptDeleteTarget
			if m.goals() {
				prompt = state.PromptDeleteGoal
			}
			m.currentView = ViewConfirm
			cmd := m.dialog.Ask(prompt, confirm.ActionDeleteItem, e.ID)
			return m, cmd
		}
		return m, nil

	case "H":
		cmd := m.items.ToggleHideCompleted()
		return m, cmd

	case "e":
		return m, m.exportReport()
	}

	var cmd tea.Cmd
	if m.focus == panelTeam {
		m.team, cmd = m.team.Update(msg)
	} else {
		m.items, cmd = m.items.Update(msg)
	}
	return m, cmd
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewConfirm:
		m.dialog, cmd = m.dialog.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// needsLogin reports whether goals cannot be changed until a user code
// is entered.
func (m Model) needsLogin() bool {
	return m.goals() && m.snapshot.UserCode == ""
}

// promptLogin opens the command palette ready for a user code.
func (m *Model) promptLogin() tea.Cmd {
	m.setNotice("", fmt.Errorf("%w: enter a user code to log in", state.ErrNoUserCode))
	m.previousView = ViewDashboard
	m.currentView = ViewCommand
	return m.commandView.Prefill("login ")
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

// executeCommand handles a line from the command palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	switch c.Name {
	case "login":
		return m.login(c.Arg)
	case "logout":
		m.currentView = ViewConfirm
		return m.dialog.Ask(state.PromptLogout, confirm.ActionLogout, 0)
	case "business":
		return m.setBusiness(c.Arg)
	case "feedback":
		return m.submitFeedback(c.Arg)
	case "export":
		return m.exportReport()
	case "clear":
		m.currentView = ViewConfirm
		return m.dialog.Ask(state.PromptClearAll, confirm.ActionClearAll, 0)
	case "quit", "q":
		_, cmd := m.quit()
		return cmd
	default:
		m.setNotice("", fmt.Errorf("unknown command %q", c.Name))
		return nil
	}
}

// confirmed runs the action approved in the confirmation dialog.
func (m Model) confirmed(res confirm.ResultMsg) tea.Cmd {
	switch res.Action {
	case confirm.ActionDeleteItem:
		return m.deleteItem(res.ID)
	case confirm.ActionDeleteTeamGoal:
		return m.deleteTeamGoal(res.ID)
	case confirm.ActionLogout:
		return m.logout()
	case confirm.ActionClearAll:
		return m.clearAll()
	default:
		return nil
	}
}

// refresh re-reads the Manager and re-derives everything shown.
func (m *Model) refresh() {
	m.snapshot = m.mgr.Snapshot()
	m.summary = metrics.Summarize(m.snapshot)
	m.missions = metrics.ActiveMissions(m.snapshot, m.rng)

	done := make(map[int64]bool, len(m.snapshot.Completed))
	for _, id := range m.snapshot.Completed {
		done[id] = true
	}
	entries := make([]itemlist.Entry, len(m.snapshot.Items))
	for i, it := range m.snapshot.Items {
		entries[i] = itemlist.FromItem(it, done[it.ID])
	}
	m.items.SetEntries(entries)

	teamEntries := make([]itemlist.Entry, len(m.snapshot.TeamGoals))
	for i, g := range m.snapshot.TeamGoals {
		teamEntries[i] = itemlist.FromTeamGoal(g)
	}
	m.team.SetEntries(teamEntries)
}

func (m *Model) setNotice(notice string, err error) {
	if err != nil {
		m.notice = err.Error()
		m.noticeErr = true
		return
	}
	m.notice = notice
	m.noticeErr = false
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	contentWidth := m.layout.ContentWidth()
	contentHeight := m.layout.ContentHeight()

	listHeight := max(contentHeight-cardsHeight, 3)
	listWidth := contentWidth
	if m.sidePanel() {
		listWidth = contentWidth / 2
	}
	m.items.SetSize(listWidth, listHeight)
	m.team.SetSize(contentWidth-listWidth, listHeight)
	m.form.SetSize(contentWidth, contentHeight)
	m.dialog.SetSize(contentWidth)
	m.helpView.SetSize(contentWidth, contentHeight)
	m.commandView.SetSize(contentWidth, contentHeight)
}

// sidePanel reports whether the dashboard is split into two columns.
func (m Model) sidePanel() bool {
	return m.layout.Width >= 90
}

// cardsHeight is the height of the stat card row: two lines plus borders.
const cardsHeight = 4

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.now.Format("Mon 02 Jan 15:04:05"))
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusText())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) headerTitle() string {
	title := "ZERO HOUR | " + m.snapshot.CurrentBusiness
	if m.goals() {
		code := m.snapshot.UserCode
		if code == "" {
			code = "no code"
		}
		title += " | " + code
	}
	return title
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewConfirm:
		return lipgloss.JoinVertical(lipgloss.Left, m.renderDashboard(), m.dialog.View())
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return lipgloss.JoinVertical(lipgloss.Left, m.commandView.View(), m.renderDashboard())
	default:
		return m.renderDashboard()
	}
}

func (m Model) renderDashboard() string {
	cards := []ui.Card{
		{Label: "Completed", Value: fmt.Sprint(m.summary.Completed), Style: theme.BigNumberStyle},
		{Label: "In Progress", Value: fmt.Sprint(m.summary.InProgress), Style: theme.BigNumberStyle},
		{Label: "Success Rate", Value: fmt.Sprintf("%d%%", m.summary.SuccessRate), Style: theme.RateStyle(m.summary.SuccessRate)},
	}
	if m.goals() {
		cards = append(cards, ui.Card{Label: "Team Goals", Value: fmt.Sprint(len(m.snapshot.TeamGoals)), Style: theme.BigNumberStyle})
	} else {
		cd := metrics.NextCountdown(m.snapshot.Items, m.now)
		cards = append(cards, ui.Card{Label: "Next Target", Value: cd.String(), Style: theme.CountdownStyle(cd.Hours, cd.Minutes)})
	}
	top := m.layout.RenderCards(cards...)

	var body string
	switch {
	case m.goals() && m.sidePanel():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.items.View(), m.team.View())
	case m.goals():
		if m.focus == panelTeam {
			body = m.team.View()
		} else {
			body = m.items.View()
		}
	case m.sidePanel():
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.items.View(), m.renderMissions())
	default:
		body = m.items.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

// renderMissions draws the active missions with their display progress.
func (m Model) renderMissions() string {
	lines := []string{theme.HeaderStyle.Render("Active Missions")}
	if len(m.missions) == 0 {
		lines = append(lines, theme.HelpStyle.Render("All clear."))
	}
	for _, ms := range m.missions {
		lines = append(lines, fmt.Sprintf("%s %s", progressBar(ms.Progress, 10), ms.Item.Name))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// progressBar renders pct as a fixed-width bar.
func progressBar(pct, width int) string {
	filled := min(max(pct*width/100, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// statusText returns the notice if any, otherwise keyboard hints.
func (m Model) statusText() string {
	if m.notice != "" && (m.currentView == ViewDashboard || m.currentView == ViewCommand) {
		if m.noticeErr {
			return theme.ErrorStyle.Render(m.notice)
		}
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewConfirm:
		return "y yes | n no | esc cancel"
	case ViewForm:
		return "enter next | esc cancel"
	default:
		hints := "q quit | ? help | n new | x complete | d delete | e export | : command"
		if m.goals() {
			hints += " | T team goal | tab panel"
		}
		return hints
	}
}
