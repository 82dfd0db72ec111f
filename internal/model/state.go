package model

import (
	"fmt"
	"time"
)

// Variant selects which of the two dashboard layouts is in use.
type Variant string

const (
	// VariantTargets keeps targets and completions in a single blob.
	VariantTargets Variant = "targets"

	// VariantGoals keeps personal and team goals in a per-user partition
	// selected by a user code.
	VariantGoals Variant = "goals"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantTargets, VariantGoals:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantTargets, VariantGoals)
	}
}

// DefaultBusiness is the business selector used when none was stored.
const DefaultBusiness = "viraaj"

// SchemaVersion is the version written into every persisted record.
const SchemaVersion = 1

// Storage keys.
const (
	KeyTargetsState = "zeroHourState"
	KeyGoalsState   = "zeroHourAppState"
	KeyUserCode     = "userCode"
	KeyBugReports   = "bugReports"

	userDataPrefix = "userData_"
)

// UserDataKey returns the storage key of the partition owned by code.
func UserDataKey(code string) string {
	return userDataPrefix + code
}

// AppState is the in-memory aggregate of all dashboard data.
type AppState struct {
	Items           []Item
	Completed       []int64
	TeamGoals       []TeamGoal
	UserCode        string
	CurrentBusiness string
}

// DefaultAppState returns the empty state used on first run and whenever
// stored data cannot be read.
func DefaultAppState() AppState {
	return AppState{
		Items:           []Item{},
		Completed:       []int64{},
		TeamGoals:       []TeamGoal{},
		CurrentBusiness: DefaultBusiness,
	}
}

// Clone returns a deep copy so callers cannot alias the owner's slices.
func (s AppState) Clone() AppState {
	out := s
	out.Items = append([]Item{}, s.Items...)
	out.Completed = append([]int64{}, s.Completed...)
	out.TeamGoals = make([]TeamGoal, len(s.TeamGoals))
	for i, g := range s.TeamGoals {
		g.Members = append([]string{}, g.Members...)
		out.TeamGoals[i] = g
	}
	return out
}

// TargetsRecord is the persisted layout of the targets variant.
type TargetsRecord struct {
	Version          int     `json:"version"`
	Targets          []Item  `json:"targets"`
	CompletedTargets []int64 `json:"completedTargets"`
	CurrentBusiness  string  `json:"currentBusiness"`
}

// GoalsRecord is the persisted top-level layout of the goals variant.
type GoalsRecord struct {
	Version         int        `json:"version"`
	UserCode        *string    `json:"userCode"`
	PersonalGoals   []Item     `json:"personalGoals"`
	TeamGoals       []TeamGoal `json:"teamGoals"`
	CompletedGoals  []int64    `json:"completedGoals"`
	CurrentBusiness string     `json:"currentBusiness"`
}

// UserDataRecord is the persisted layout of one user's partition.
type UserDataRecord struct {
	Version        int        `json:"version"`
	PersonalGoals  []Item     `json:"personalGoals"`
	TeamGoals      []TeamGoal `json:"teamGoals"`
	CompletedGoals []int64    `json:"completedGoals"`
	LastUpdate     time.Time  `json:"lastUpdate"`
}
