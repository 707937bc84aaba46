package training

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/claude/repshape/internal/models"
)

// Metric selects what a weekly series sums.
type Metric string

const (
	MetricVolume Metric = "volume"
	MetricReps   Metric = "reps"
)

// ParseMetric maps a query value to a Metric, defaulting to volume.
func ParseMetric(s string) Metric {
	if Metric(strings.ToLower(strings.TrimSpace(s))) == MetricReps {
		return MetricReps
	}
	return MetricVolume
}

// Label is the chart title word for the metric.
func (m Metric) Label() string {
	if m == MetricReps {
		return "Reps"
	}
	return "Volume"
}

// AllExercises disables the exercise filter.
const AllExercises = "all"

// UnknownWeek is the key for dates that cannot be parsed.
const UnknownWeek = "Unknown"

// WeeklyBucket is one point of a weekly chart series.
type WeeklyBucket struct {
	Week  string  `json:"week"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// WeekKey returns the ISO 8601 week of a YYYY-MM-DD date as "YYYY-Www".
// The year is the ISO week-year, so 2024-12-30 is "2025-W01".
func WeekKey(date string) string {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return UnknownWeek
	}
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WorkoutMetric sums reps, or reps × weight, over the sets of exercises that
// match exercise. An empty filter or AllExercises matches everything.
func WorkoutMetric(w models.Workout, metric Metric, exercise string) float64 {
	var total float64
	for _, ex := range w.Exercises {
		if !matchesExercise(ex.Name, exercise) {
			continue
		}
		for _, set := range ex.Sets {
			reps := num(set.Reps)
			if metric == MetricReps {
				total += reps
			} else {
				total += reps * num(set.Weight)
			}
		}
	}
	return total
}

// WeeklySeries buckets workouts by ISO week and sums metric per week, oldest
// week first. Workouts without a date, or contributing nothing to the metric,
// are left out; Count is the number of workouts that did contribute.
func WeeklySeries(workouts []models.Workout, metric Metric, exercise string) []WeeklyBucket {
	buckets := make(map[string]*WeeklyBucket)
	for _, w := range workouts {
		if strings.TrimSpace(w.Date) == "" {
			continue
		}
		total := WorkoutMetric(w, metric, exercise)
		if total == 0 {
			continue
		}
		b := bucket(buckets, WeekKey(w.Date))
		b.Value += total
		b.Count++
	}
	return sorted(buckets)
}

// FrequencySeries counts workouts per ISO week, oldest week first.
func FrequencySeries(workouts []models.Workout) []WeeklyBucket {
	buckets := make(map[string]*WeeklyBucket)
	for _, w := range workouts {
		if strings.TrimSpace(w.Date) == "" {
			continue
		}
		b := bucket(buckets, WeekKey(w.Date))
		b.Count++
		b.Value++
	}
	return sorted(buckets)
}

func bucket(m map[string]*WeeklyBucket, key string) *WeeklyBucket {
	b, ok := m[key]
	if !ok {
		b = &WeeklyBucket{Week: key}
		m[key] = b
	}
	return b
}

func sorted(m map[string]*WeeklyBucket) []WeeklyBucket {
	out := make([]WeeklyBucket, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}

func matchesExercise(name, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == AllExercises {
		return true
	}
	return exerciseKey(name) == strings.ToLower(filter)
}
