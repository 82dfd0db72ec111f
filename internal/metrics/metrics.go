// Package metrics derives dashboard figures from a state snapshot. Every
// function is pure apart from the random display progress, which takes
// its source explicitly.
package metrics

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/zero-hour/internal/model"
)

// Summary holds the headline counters.
type Summary struct {
	Total       int
	Completed   int
	InProgress  int
	SuccessRate int
}

// Summarize counts items and completions.
func Summarize(st model.AppState) Summary {
	total := len(st.Items)
	completed := len(st.Completed)
	return Summary{
		Total:       total,
		Completed:   completed,
		InProgress:  total - completed,
		SuccessRate: SuccessRate(completed, total),
	}
}

// SuccessRate returns completed/total as a percentage rounded half up,
// or 0 when there is nothing to complete.
func SuccessRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(completed)/float64(total)*100 + 0.5))
}

// ActiveItems returns the items that are not completed, in insertion
// order.
func ActiveItems(st model.AppState) []model.Item {
	active := make([]model.Item, 0, len(st.Items))
	for _, it := range st.Items {
		if !slices.Contains(st.Completed, it.ID) {
			active = append(active, it)
		}
	}
	return active
}

// Mission is an active item paired with a display-only progress value.
type Mission struct {
	Item model.Item

	// Progress is a random placeholder in [20,100). It carries no meaning
	// and must never be stored or fed into SuccessRate.
	Progress int
}

// ActiveMissions returns ActiveItems with a fresh random progress for
// each. Pass a seeded *rand.Rand for reproducible output; nil uses the
// global source.
func ActiveMissions(st model.AppState, rng *rand.Rand) []Mission {
	active := ActiveItems(st)
	missions := make([]Mission, len(active))
	for i, it := range active {
		missions[i] = Mission{Item: it, Progress: displayProgress(rng)}
	}
	return missions
}

func displayProgress(rng *rand.Rand) int {
	if rng == nil {
		return rand.IntN(80) + 20
	}
	return rng.IntN(80) + 20
}

// Countdown is the time left until the next target's time of day.
type Countdown struct {
	// NoTargets is set when there is no item to count down to.
	NoTargets bool

	// Invalid is set when the next item's time is not HH:MM.
	Invalid bool

	Hours   int
	Minutes int
}

func (c Countdown) String() string {
	switch {
	case c.NoTargets:
		return "No targets"
	case c.Invalid:
		return "--:--"
	default:
		return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
	}
}

// NextCountdown counts down to the time of day of the first item in
// insertion order (not the nearest one). A time already passed today
// rolls over to tomorrow. Remaining time is truncated to whole hours and
// minutes.
func NextCountdown(items []model.Item, now time.Time) Countdown {
	if len(items) == 0 {
		return Countdown{NoTargets: true}
	}

	hour, minute, ok := parseClock(items[0].Time)
	if !ok {
		return Countdown{Invalid: true}
	}

	deadline := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, now.Nanosecond(), now.Location())
	if deadline.Before(now) {
		deadline = deadline.AddDate(0, 0, 1)
	}

	diff := deadline.Sub(now)
	return Countdown{
		Hours:   int(diff / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}

// parseClock parses "HH:MM". Anything after a second colon is ignored.
func parseClock(s string) (hour, minute int, ok bool) {
	h, rest, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	m, _, _ := strings.Cut(rest, ":")
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
