package metrics_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/nhle/zero-hour/internal/metrics"
	"github.com/nhle/zero-hour/internal/model"
)

func items(ids ...int64) []model.Item {
	out := make([]model.Item, len(ids))
	for i, id := range ids {
		out[i] = model.Item{ID: id, Name: "item", Time: "09:00"}
	}
	return out
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		completed, total int
		want             int
	}{
		{0, 0, 0},
		{1, 4, 25},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13}, // 12.5 rounds half up
		{3, 8, 38}, // 37.5 rounds half up
		{4, 4, 100},
	}
	for _, tt := range tests {
		got := metrics.SuccessRate(tt.completed, tt.total)
		if got != tt.want {
			t.Errorf("SuccessRate(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	st := model.AppState{Items: items(1, 2, 3, 4), Completed: []int64{3}}

	got := metrics.Summarize(st)
	want := metrics.Summary{Total: 4, Completed: 1, InProgress: 3, SuccessRate: 25}
	if got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}

	if empty := metrics.Summarize(model.DefaultAppState()); empty != (metrics.Summary{}) {
		t.Errorf("Summarize(empty) = %+v, want zero", empty)
	}
}

func TestActiveItemsKeepsInsertionOrder(t *testing.T) {
	st := model.AppState{Items: items(30, 10, 20, 40), Completed: []int64{10, 40}}

	active := metrics.ActiveItems(st)
	if len(active) != 2 {
		t.Fatalf("ActiveItems len = %d, want 2", len(active))
	}
	if active[0].ID != 30 || active[1].ID != 20 {
		t.Errorf("ActiveItems ids = [%d %d], want [30 20]", active[0].ID, active[1].ID)
	}
}

func TestActiveMissionsProgressRange(t *testing.T) {
	st := model.AppState{Items: items(1, 2, 3, 4, 5, 6, 7, 8), Completed: []int64{2}}
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 50; round++ {
		missions := metrics.ActiveMissions(st, rng)
		if len(missions) != 7 {
			t.Fatalf("ActiveMissions len = %d, want 7", len(missions))
		}
		for _, m := range missions {
			if m.Progress < 20 || m.Progress >= 100 {
				t.Fatalf("progress %d outside [20,100)", m.Progress)
			}
		}
	}

	// Display progress never leaks into the success rate.
	if got := metrics.Summarize(st).SuccessRate; got != 13 {
		t.Errorf("SuccessRate = %d, want 13", got)
	}
}

func TestNextCountdown(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2025, 1, 1, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		items []model.Item
		now   time.Time
		want  string
	}{
		{"no items", nil, day(9, 30), "No targets"},
		{"past rolls over", []model.Item{{ID: 1, Time: "08:00"}}, day(9, 30), "22h 30m"},
		{"later today", []model.Item{{ID: 1, Time: "17:45"}}, day(9, 30), "8h 15m"},
		{"exactly now", []model.Item{{ID: 1, Time: "09:30"}}, day(9, 30), "0h 0m"},
		{"uses first not nearest", []model.Item{{ID: 1, Time: "08:00"}, {ID: 2, Time: "10:00"}}, day(9, 30), "22h 30m"},
		{"seconds ignored", []model.Item{{ID: 1, Time: "10:00:59"}}, day(9, 30), "0h 30m"},
		{"bad time", []model.Item{{ID: 1, Time: "soon"}}, day(9, 30), "--:--"},
		{"no time", []model.Item{{ID: 1}}, day(9, 30), "--:--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metrics.NextCountdown(tt.items, tt.now).String()
			if got != tt.want {
				t.Errorf("NextCountdown = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextCountdownTruncatesSeconds(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 45, 0, time.UTC)
	c := metrics.NextCountdown([]model.Item{{ID: 1, Time: "08:00"}}, now)

	// 22h 29m 15s remain.
	if c.Hours != 22 || c.Minutes != 29 {
		t.Errorf("NextCountdown = %dh %dm, want 22h 29m", c.Hours, c.Minutes)
	}
}
