package state

// EventKind identifies what changed.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventItemCreated
	EventItemCompleted
	EventItemDeleted
	EventTeamGoalCreated
	EventTeamGoalDeleted
	EventUserChanged
	EventBusinessChanged
	EventFeedbackSubmitted
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventItemCreated:
		return "item_created"
	case EventItemCompleted:
		return "item_completed"
	case EventItemDeleted:
		return "item_deleted"
	case EventTeamGoalCreated:
		return "team_goal_created"
	case EventTeamGoalDeleted:
		return "team_goal_deleted"
	case EventUserChanged:
		return "user_changed"
	case EventBusinessChanged:
		return "business_changed"
	case EventFeedbackSubmitted:
		return "feedback_submitted"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every state change.
type Event struct {
	Kind EventKind

	// ID is the affected item or team goal, zero when not applicable.
	ID int64
}

// Subscribe registers fn to be called after each change. Listeners run
// synchronously on the mutating goroutine, outside the Manager's lock, so
// they may read the Manager but should not block. The returned func
// removes the listener.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

// notify delivers ev to every subscriber. It must be called without m.mu
// held.
func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	listeners := make([]func(Event), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	m.logger.Debug("state changed", "event", ev.Kind.String(), "id", ev.ID)
	for _, fn := range listeners {
		fn(ev)
	}
}
