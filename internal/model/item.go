package model

import "time"

// Item is a user-created target (variant "targets") or personal goal
// (variant "goals") with a deadline and category.
type Item struct {
	// ID is unique within the owning list for the lifetime of the store.
	ID int64 `json:"id"`

	// Name is the human-readable title. Always non-empty.
	Name string `json:"name"`

	// Date is the calendar date, as entered (usually YYYY-MM-DD).
	Date string `json:"date"`

	// Time is the time of day as HH:MM. Only targets carry a time.
	Time string `json:"time,omitempty"`

	Category    string `json:"category"`
	Description string `json:"description,omitempty"`

	// CreatedAt is set once when the item is created.
	CreatedAt time.Time `json:"createdAt"`
}

// TeamGoal is a shared goal identified by a team code.
type TeamGoal struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	TeamCode string   `json:"teamCode"`
	Deadline string   `json:"deadline"`
	Members  []string `json:"members"`

	// Progress is always 0. No operation updates it; it is kept so stored
	// records keep their shape.
	Progress int `json:"progress"`

	CreatedAt time.Time `json:"createdAt"`
}

// Feedback is a free-form issue report or suggestion from the user.
type Feedback struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserCode  string    `json:"userCode,omitempty"`
	Feedback  string    `json:"feedback"`
}
