package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/store"
)

// minUserCodeLen is the shortest accepted user code.
const minUserCodeLen = 3

// ItemInput carries the form fields of a new item.
type ItemInput struct {
	Name        string
	Date        string
	Time        string
	Category    string
	Description string
}

// TeamGoalInput carries the form fields of a new team goal.
type TeamGoalInput struct {
	Name     string
	TeamCode string
	Deadline string
}

// CreateItem validates in and appends a new item. Targets require a time
// of day; goals do not.
func (m *Manager) CreateItem(ctx context.Context, in ItemInput) (model.Item, error) {
	fields := [][2]string{
		{"name", in.Name},
		{"date", in.Date},
	}
	if m.variant == model.VariantTargets {
		fields = append(fields, [2]string{"time", in.Time})
	}
	fields = append(fields, [2]string{"category", in.Category})
	if err := requireFields("Please fill in all required fields", fields...); err != nil {
		return model.Item{}, err
	}

	m.mu.Lock()
	if err := m.requireUserLocked(); err != nil {
		m.mu.Unlock()
		return model.Item{}, err
	}
	it := model.Item{
		ID:          m.nextIDLocked(),
		Name:        in.Name,
		Date:        in.Date,
		Category:    in.Category,
		Description: in.Description,
		CreatedAt:   m.clock.Now().UTC(),
	}
	if m.variant == model.VariantTargets {
		it.Time = in.Time
	}
	m.state.Items = append(m.state.Items, it)
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventItemCreated, ID: it.ID})
	if err != nil {
		return it, err
	}
	m.logger.Info("item created", "id", it.ID, "category", it.Category)
	return it, nil
}

// CompleteItem marks id as done. It reports false, without persisting,
// when id is unknown or already completed.
func (m *Manager) CompleteItem(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	if err := m.requireUserLocked(); err != nil {
		m.mu.Unlock()
		return false, err
	}
	exists := slices.ContainsFunc(m.state.Items, func(it model.Item) bool { return it.ID == id })
	if !exists || slices.Contains(m.state.Completed, id) {
		m.mu.Unlock()
		return false, nil
	}
	m.state.Completed = append(m.state.Completed, id)
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventItemCompleted, ID: id})
	if err != nil {
		return true, err
	}
	m.logger.Info("item completed", "id", id)
	return true, nil
}

// DeleteItem asks c for confirmation, then removes id from the items and
// from the completed set. Deleting an unknown id still persists and
// reports false.
func (m *Manager) DeleteItem(ctx context.Context, id int64, c Confirmer) (bool, error) {
	prompt := PromptDeleteTarget
	if m.variant == model.VariantGoals {
		prompt = PromptDeleteGoal
	}
	if err := m.requireUser(); err != nil {
		return false, err
	}
	if err := confirm(c, prompt); err != nil {
		return false, err
	}

	m.mu.Lock()
	if err := m.requireUserLocked(); err != nil {
		m.mu.Unlock()
		return false, err
	}
	before := len(m.state.Items)
	m.state.Items = slices.DeleteFunc(m.state.Items, func(it model.Item) bool { return it.ID == id })
	m.state.Completed = slices.DeleteFunc(m.state.Completed, func(done int64) bool { return done == id })
	removed := len(m.state.Items) != before
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventItemDeleted, ID: id})
	if err != nil {
		return removed, err
	}
	m.logger.Info("item deleted", "id", id, "removed", removed)
	return removed, nil
}

// CreateTeamGoal validates in and appends a team goal whose only member
// is the logged-in user. Team codes are stored upper-cased.
func (m *Manager) CreateTeamGoal(ctx context.Context, in TeamGoalInput) (model.TeamGoal, error) {
	if m.variant != model.VariantGoals {
		return model.TeamGoal{}, ErrTeamGoalsUnsupported
	}
	err := requireFields("Please fill all fields",
		[2]string{"name", in.Name},
		[2]string{"teamCode", in.TeamCode},
		[2]string{"deadline", in.Deadline},
	)
	if err != nil {
		return model.TeamGoal{}, err
	}

	m.mu.Lock()
	if err := m.requireUserLocked(); err != nil {
		m.mu.Unlock()
		return model.TeamGoal{}, err
	}
	g := model.TeamGoal{
		ID:        m.nextIDLocked(),
		Name:      in.Name,
		TeamCode:  strings.ToUpper(in.TeamCode),
		Deadline:  in.Deadline,
		Members:   []string{m.state.UserCode},
		CreatedAt: m.clock.Now().UTC(),
	}
	m.state.TeamGoals = append(m.state.TeamGoals, g)
	err = m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventTeamGoalCreated, ID: g.ID})
	if err != nil {
		return g, err
	}
	m.logger.Info("team goal created", "id", g.ID, "team", g.TeamCode)
	return g, nil
}

// DeleteTeamGoal asks c for confirmation, then removes id from the team
// goals.
func (m *Manager) DeleteTeamGoal(ctx context.Context, id int64, c Confirmer) (bool, error) {
	if m.variant != model.VariantGoals {
		return false, ErrTeamGoalsUnsupported
	}
	if err := m.requireUser(); err != nil {
		return false, err
	}
	if err := confirm(c, PromptDeleteTeamGoal); err != nil {
		return false, err
	}

	m.mu.Lock()
	if err := m.requireUserLocked(); err != nil {
		m.mu.Unlock()
		return false, err
	}
	before := len(m.state.TeamGoals)
	m.state.TeamGoals = slices.DeleteFunc(m.state.TeamGoals, func(g model.TeamGoal) bool { return g.ID == id })
	removed := len(m.state.TeamGoals) != before
	err := m.persistLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventTeamGoalDeleted, ID: id})
	if err != nil {
		return removed, err
	}
	m.logger.Info("team goal deleted", "id", id, "removed", removed)
	return removed, nil
}

// requireUser reports ErrNoUserCode when goals cannot be persisted
// because no user is logged in.
func (m *Manager) requireUser() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requireUserLocked()
}

func (m *Manager) requireUserLocked() error {
	if m.variant == model.VariantGoals && m.state.UserCode == "" {
		return ErrNoUserCode
	}
	return nil
}

// NormalizeUserCode trims and upper-cases a user code.
func NormalizeUserCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Login switches to the partition of code. The code is normalized and
// must be at least three characters long.
func (m *Manager) Login(ctx context.Context, code string) error {
	if m.variant != model.VariantGoals {
		return ErrUserDataUnsupported
	}
	code = NormalizeUserCode(code)
	if len(code) < minUserCodeLen {
		return &ValidationError{
			Fields:  []string{"userCode"},
			Message: "Please enter a valid code (minimum 3 characters)",
		}
	}

	// Commit the new code only after its partition is read and saved.
	m.mu.Lock()
	prev := m.state
	ud, err := m.readUserDataLocked(ctx, code)
	if err == nil {
		m.state.UserCode = code
		m.applyUserDataLocked(ud)
		if err = m.saveLocked(ctx); err != nil {
			m.state = prev
		} else {
			m.seedIDsLocked()
		}
	}
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("logging in as %s: %w", code, err)
	}
	m.notify(Event{Kind: EventUserChanged})
	m.logger.Info("logged in", "user_code", code)
	return nil
}

// Logout asks c for confirmation, then forgets the user code. The user's
// partition is kept so a later Login restores it.
func (m *Manager) Logout(ctx context.Context, c Confirmer) error {
	if m.variant != model.VariantGoals {
		return ErrUserDataUnsupported
	}
	if err := confirm(c, PromptLogout); err != nil {
		return err
	}

	m.mu.Lock()
	err := m.saveUserDataLocked(ctx)
	if err == nil {
		err = m.store.Remove(ctx, model.KeyUserCode)
	}
	if err == nil {
		business := m.state.CurrentBusiness
		m.state = m.defaultState()
		m.state.CurrentBusiness = business
		err = m.saveLocked(ctx)
	}
	m.mu.Unlock()

	m.notify(Event{Kind: EventUserChanged})
	if err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	m.logger.Info("logged out")
	return nil
}

// SetBusiness changes the business selector and saves the top-level
// record.
func (m *Manager) SetBusiness(ctx context.Context, name string) error {
	if err := requireFields("Please choose a business", [2]string{"business", name}); err != nil {
		return err
	}

	m.mu.Lock()
	m.state.CurrentBusiness = name
	err := m.saveLocked(ctx)
	m.mu.Unlock()

	m.notify(Event{Kind: EventBusinessChanged})
	return err
}

// SubmitFeedback appends a feedback entry to the stored bug reports. An
// unreadable report list is replaced.
func (m *Manager) SubmitFeedback(ctx context.Context, text string) (model.Feedback, error) {
	if err := requireFields("Please describe the issue or suggestion", [2]string{"feedback", text}); err != nil {
		return model.Feedback{}, err
	}

	m.mu.Lock()
	fb := model.Feedback{
		ID:        uuid.New().String(),
		Timestamp: m.clock.Now().UTC(),
		UserCode:  m.state.UserCode,
		Feedback:  text,
	}

	reports, err := m.feedbackLocked(ctx)
	if err == nil {
		reports = append(reports, fb)
		var data []byte
		data, err = json.Marshal(reports)
		if err == nil {
			err = m.store.Set(ctx, model.KeyBugReports, string(data))
		}
	}
	m.mu.Unlock()

	if err != nil {
		return model.Feedback{}, fmt.Errorf("saving feedback: %w", err)
	}
	m.notify(Event{Kind: EventFeedbackSubmitted})
	return fb, nil
}

// Feedback returns every stored feedback entry, oldest first.
func (m *Manager) Feedback(ctx context.Context) ([]model.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedbackLocked(ctx)
}

func (m *Manager) feedbackLocked(ctx context.Context) ([]model.Feedback, error) {
	raw, err := m.store.Get(ctx, model.KeyBugReports)
	if errors.Is(err, store.ErrNotFound) {
		return []model.Feedback{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", model.KeyBugReports, err)
	}

	var reports []model.Feedback
	if err := json.Unmarshal([]byte(raw), &reports); err != nil {
		m.logger.Debug("discarding unreadable bug reports", "error", err)
		return []model.Feedback{}, nil
	}
	return reports, nil
}

// ClearAll asks c for confirmation, then deletes every stored key and
// resets the state to its defaults.
func (m *Manager) ClearAll(ctx context.Context, c Confirmer) error {
	if err := confirm(c, PromptClearAll); err != nil {
		return err
	}

	m.mu.Lock()
	err := m.store.Clear(ctx)
	if err == nil {
		m.state = m.defaultState()
	}
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clearing data: %w", err)
	}
	m.notify(Event{Kind: EventCleared})
	m.logger.Info("all data cleared")
	return nil
}
