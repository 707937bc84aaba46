package training

import (
	"sort"
	"strings"

	"github.com/claude/repshape/internal/models"
)

// Order is a history list sort order.
type Order string

const (
	OrderDateDesc   Order = "date-desc"
	OrderDateAsc    Order = "date-asc"
	OrderVolumeDesc Order = "volume-desc"
	OrderVolumeAsc  Order = "volume-asc"
)

// Filter returns the workouts whose name or any exercise name contains query,
// case-insensitively. An empty query returns a copy of all workouts.
func Filter(workouts []models.Workout, query string) []models.Workout {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if query == "" || matchesQuery(w, query) {
			out = append(out, w)
		}
	}
	return out
}

func matchesQuery(w models.Workout, query string) bool {
	if strings.Contains(strings.ToLower(WorkoutName(w)), query) {
		return true
	}
	for _, ex := range w.Exercises {
		if strings.Contains(strings.ToLower(ex.Name), query) {
			return true
		}
	}
	return false
}

// Sort orders workouts in place. Unknown orders sort newest first. Dates are
// YYYY-MM-DD so they compare as strings.
func Sort(workouts []models.Workout, order Order) {
	var less func(a, b models.Workout) bool
	switch order {
	case OrderDateAsc:
		less = func(a, b models.Workout) bool { return a.Date < b.Date }
	case OrderVolumeDesc:
		less = func(a, b models.Workout) bool { return a.Summary.TotalVolume > b.Summary.TotalVolume }
	case OrderVolumeAsc:
		less = func(a, b models.Workout) bool { return a.Summary.TotalVolume < b.Summary.TotalVolume }
	default:
		less = func(a, b models.Workout) bool { return a.Date > b.Date }
	}
	sort.SliceStable(workouts, func(i, j int) bool { return less(workouts[i], workouts[j]) })
}

// ExerciseNames lists distinct exercise names in first-seen order, for the
// analytics exercise picker. Names differing only in case are merged.
func ExerciseNames(workouts []models.Workout) []string {
	seen := make(map[string]bool)
	var names []string
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			name := strings.TrimSpace(ex.Name)
			key := strings.ToLower(name)
			if name == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, name)
		}
	}
	return names
}
