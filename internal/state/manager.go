// Package state owns the dashboard's AppState: it loads and saves it
// through a key-value store, applies mutations, and notifies subscribers
// after each change.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nhle/zero-hour/internal/clock"
	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/store"
)

// Manager is the single owner of an AppState. Create one per process with
// New and pass it to every consumer.
type Manager struct {
	mu sync.Mutex

	store           store.Store
	variant         model.Variant
	clock           clock.Clock
	logger          *slog.Logger
	defaultBusiness string

	state  model.AppState
	lastID int64

	subscribers map[int]func(Event)
	nextSubID   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithDefaultBusiness sets the business selector of a fresh state.
func WithDefaultBusiness(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.defaultBusiness = name
		}
	}
}

// New creates a Manager holding the default state. Call Load to read
// previously saved data.
func New(s store.Store, variant model.Variant, opts ...Option) (*Manager, error) {
	if _, err := model.ParseVariant(string(variant)); err != nil {
		return nil, err
	}

	m := &Manager{
		store:           s,
		variant:         variant,
		clock:           clock.Real(),
		logger:          slog.Default(),
		defaultBusiness: model.DefaultBusiness,
		subscribers:     make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = m.defaultState()
	return m, nil
}

// Variant reports which layout this Manager persists.
func (m *Manager) Variant() model.Variant {
	return m.variant
}

func (m *Manager) defaultState() model.AppState {
	st := model.DefaultAppState()
	st.CurrentBusiness = m.defaultBusiness
	return st
}

// topLevelKey is the fixed key of the variant's main record.
func (m *Manager) topLevelKey() string {
	if m.variant == model.VariantGoals {
		return model.KeyGoalsState
	}
	return model.KeyTargetsState
}

// Load replaces the in-memory state with the stored one. Missing or
// unreadable content silently yields the default state; only storage
// failures are returned.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	err := m.loadLocked(ctx)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.notify(Event{Kind: EventLoaded})
	return nil
}

func (m *Manager) loadLocked(ctx context.Context) error {
	key := m.topLevelKey()
	raw, err := m.store.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		raw = ""
	case err != nil:
		return fmt.Errorf("loading %s: %w", key, err)
	}

	if _, ok := decodeObject(raw); raw != "" && !ok {
		m.logger.Debug("discarding unreadable state", "key", key)
	}

	if m.variant == model.VariantTargets {
		m.state = decodeTargetsState(raw, m.defaultBusiness)
	} else {
		m.state = decodeGoalsState(raw, m.defaultBusiness)

		code, err := m.store.Get(ctx, model.KeyUserCode)
		switch {
		case err == nil && code != "":
			m.state.UserCode = code
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("loading %s: %w", model.KeyUserCode, err)
		}

		if m.state.UserCode != "" {
			if err := m.loadUserDataLocked(ctx, m.state.UserCode); err != nil {
				return err
			}
		}
	}

	m.seedIDsLocked()
	return nil
}

// Save writes the whole top-level record. In the goals variant the
// current user code is also written to its own key.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx)
}

func (m *Manager) saveLocked(ctx context.Context) error {
	var (
		data []byte
		err  error
	)
	if m.variant == model.VariantGoals {
		data, err = encodeGoalsState(m.state)
	} else {
		data, err = encodeTargetsState(m.state)
	}
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	key := m.topLevelKey()
	if err := m.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	if m.variant == model.VariantGoals && m.state.UserCode != "" {
		if err := m.store.Set(ctx, model.KeyUserCode, m.state.UserCode); err != nil {
			return fmt.Errorf("saving %s: %w", model.KeyUserCode, err)
		}
	}
	return nil
}

// LoadUserData replaces the goal lists with the partition of code. A
// missing partition leaves the user with empty lists.
func (m *Manager) LoadUserData(ctx context.Context, code string) error {
	if m.variant != model.VariantGoals {
		return ErrUserDataUnsupported
	}

	m.mu.Lock()
	err := m.loadUserDataLocked(ctx, code)
	if err == nil {
		m.seedIDsLocked()
	}
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.notify(Event{Kind: EventLoaded})
	return nil
}

func (m *Manager) loadUserDataLocked(ctx context.Context, code string) error {
	ud, err := m.readUserDataLocked(ctx, code)
	if err != nil {
		return err
	}
	m.applyUserDataLocked(ud)
	return nil
}

// readUserDataLocked decodes the partition of code without touching the
// in-memory state.
func (m *Manager) readUserDataLocked(ctx context.Context, code string) (userData, error) {
	key := model.UserDataKey(code)
	raw, err := m.store.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		raw = ""
	case err != nil:
		return userData{}, fmt.Errorf("loading %s: %w", key, err)
	}
	return decodeUserData(raw), nil
}

func (m *Manager) applyUserDataLocked(ud userData) {
	m.state.Items = ud.items
	m.state.TeamGoals = ud.teamGoals
	m.state.Completed = ud.completed
}

// SaveUserData writes the goal lists to the current user's partition. It
// is a no-op when no user code is set.
func (m *Manager) SaveUserData(ctx context.Context) error {
	if m.variant != model.VariantGoals {
		return ErrUserDataUnsupported
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUserDataLocked(ctx)
}

func (m *Manager) saveUserDataLocked(ctx context.Context) error {
	if m.state.UserCode == "" {
		return nil
	}

	data, err := encodeUserData(m.state, m.clock.Now())
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}

	key := model.UserDataKey(m.state.UserCode)
	if err := m.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// persistLocked writes whatever record holds the item lists: the
// top-level blob for targets, the user partition for goals.
func (m *Manager) persistLocked(ctx context.Context) error {
	var err error
	if m.variant == model.VariantGoals {
		err = m.saveUserDataLocked(ctx)
	} else {
		err = m.saveLocked(ctx)
	}
	if err != nil {
		m.logger.Warn("persisting state failed", "error", err)
	}
	return err
}

// seedIDsLocked makes sure newly generated ids exceed every stored id.
func (m *Manager) seedIDsLocked() {
	for _, it := range m.state.Items {
		m.lastID = max(m.lastID, it.ID)
	}
	for _, g := range m.state.TeamGoals {
		m.lastID = max(m.lastID, g.ID)
	}
}

// nextIDLocked returns the current time in milliseconds, bumped past the
// previous id so that two creations in the same millisecond stay unique.
func (m *Manager) nextIDLocked() int64 {
	id := m.clock.Now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return id
}

// Snapshot returns a deep copy of the current state.
func (m *Manager) Snapshot() model.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Items returns the item list in insertion order.
func (m *Manager) Items() []model.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Items)
}

// CompletedIDs returns the completed item ids in completion order.
func (m *Manager) CompletedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.state.Completed)
}

// IsCompleted reports whether id is in the completed set.
func (m *Manager) IsCompleted(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.state.Completed, id)
}

// TeamGoals returns a copy of the team goal list.
func (m *Manager) TeamGoals() []model.TeamGoal {
	return m.Snapshot().TeamGoals
}

// UserCode returns the active user code, or "".
func (m *Manager) UserCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.UserCode
}

// CurrentBusiness returns the business selector.
func (m *Manager) CurrentBusiness() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CurrentBusiness
}
