package state

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nhle/zero-hour/internal/model"
)

// Stored records are decoded field by field. A value that is not a JSON
// object yields the default state; a field that fails to decode keeps its
// default; list elements that fail to decode or lack an id or name are
// dropped.

// decodeObject splits a stored JSON object into its raw fields. ok is
// false when raw is not a JSON object.
func decodeObject(raw string) (fields map[string]json.RawMessage, ok bool) {
	if err := json.Unmarshal([]byte(raw), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

func decodeString(raw json.RawMessage, def string) string {
	if raw == nil {
		return def
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return def
	}
	return *s
}

func decodeItems(raw json.RawMessage) []model.Item {
	items := []model.Item{}
	var elems []json.RawMessage
	if raw == nil || json.Unmarshal(raw, &elems) != nil {
		return items
	}

	seen := make(map[int64]bool, len(elems))
	for _, e := range elems {
		var it model.Item
		if err := json.Unmarshal(e, &it); err != nil {
			continue
		}
		if it.ID == 0 || strings.TrimSpace(it.Name) == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items
}

func decodeTeamGoals(raw json.RawMessage) []model.TeamGoal {
	goals := []model.TeamGoal{}
	var elems []json.RawMessage
	if raw == nil || json.Unmarshal(raw, &elems) != nil {
		return goals
	}

	seen := make(map[int64]bool, len(elems))
	for _, e := range elems {
		var g model.TeamGoal
		if err := json.Unmarshal(e, &g); err != nil {
			continue
		}
		if g.ID == 0 || strings.TrimSpace(g.Name) == "" || seen[g.ID] {
			continue
		}
		if g.Members == nil {
			g.Members = []string{}
		}
		seen[g.ID] = true
		goals = append(goals, g)
	}
	return goals
}

func decodeIDs(raw json.RawMessage) []int64 {
	ids := []int64{}
	var elems []json.RawMessage
	if raw == nil || json.Unmarshal(raw, &elems) != nil {
		return ids
	}
	for _, e := range elems {
		var id int64
		if err := json.Unmarshal(e, &id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// reconcileCompleted de-duplicates ids and drops any that do not belong
// to an item, restoring CompletedSet ⊆ item ids.
func reconcileCompleted(ids []int64, items []model.Item) []int64 {
	exists := make(map[int64]bool, len(items))
	for _, it := range items {
		exists[it.ID] = true
	}

	out := []int64{}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !exists[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// decodeTargetsState reads the targets variant's top-level record.
func decodeTargetsState(raw, defaultBusiness string) model.AppState {
	st := model.DefaultAppState()
	st.CurrentBusiness = defaultBusiness

	fields, ok := decodeObject(raw)
	if !ok {
		return st
	}

	st.Items = decodeItems(fields["targets"])
	st.Completed = reconcileCompleted(decodeIDs(fields["completedTargets"]), st.Items)
	st.CurrentBusiness = decodeString(fields["currentBusiness"], defaultBusiness)
	return st
}

// decodeGoalsState reads the goals variant's top-level record.
func decodeGoalsState(raw, defaultBusiness string) model.AppState {
	st := model.DefaultAppState()
	st.CurrentBusiness = defaultBusiness

	fields, ok := decodeObject(raw)
	if !ok {
		return st
	}

	st.UserCode = decodeString(fields["userCode"], "")
	st.Items = decodeItems(fields["personalGoals"])
	st.TeamGoals = decodeTeamGoals(fields["teamGoals"])
	st.Completed = reconcileCompleted(decodeIDs(fields["completedGoals"]), st.Items)
	st.CurrentBusiness = decodeString(fields["currentBusiness"], defaultBusiness)
	return st
}

// userData is the decoded content of one user partition.
type userData struct {
	items     []model.Item
	teamGoals []model.TeamGoal
	completed []int64
}

func decodeUserData(raw string) userData {
	fields, ok := decodeObject(raw)
	if !ok {
		return userData{items: []model.Item{}, teamGoals: []model.TeamGoal{}, completed: []int64{}}
	}
	items := decodeItems(fields["personalGoals"])
	return userData{
		items:     items,
		teamGoals: decodeTeamGoals(fields["teamGoals"]),
		completed: reconcileCompleted(decodeIDs(fields["completedGoals"]), items),
	}
}

func encodeTargetsState(st model.AppState) ([]byte, error) {
	return json.Marshal(model.TargetsRecord{
		Version:          model.SchemaVersion,
		Targets:          st.Items,
		CompletedTargets: st.Completed,
		CurrentBusiness:  st.CurrentBusiness,
	})
}

func encodeGoalsState(st model.AppState) ([]byte, error) {
	rec := model.GoalsRecord{
		Version:         model.SchemaVersion,
		PersonalGoals:   st.Items,
		TeamGoals:       st.TeamGoals,
		CompletedGoals:  st.Completed,
		CurrentBusiness: st.CurrentBusiness,
	}
	if st.UserCode != "" {
		code := st.UserCode
		rec.UserCode = &code
	}
	return json.Marshal(rec)
}

func encodeUserData(st model.AppState, now time.Time) ([]byte, error) {
	return json.Marshal(model.UserDataRecord{
		Version:        model.SchemaVersion,
		PersonalGoals:  st.Items,
		TeamGoals:      st.TeamGoals,
		CompletedGoals: st.Completed,
		LastUpdate:     now.UTC(),
	})
}
