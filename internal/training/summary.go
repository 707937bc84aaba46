// Package training derives summaries, personal records and weekly trend
// series from logged workouts. Every function is a single pass over
// in-memory data; none of them mutate input.
package training

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/claude/repshape/internal/models"
)

// CalculateSummary totals sets, reps and volume across exercises. Duration is
// only known when both timestamps are present.
func CalculateSummary(exercises []models.Exercise, start, end *time.Time) models.Summary {
	var s models.Summary
	for _, ex := range exercises {
		for _, set := range ex.Sets {
			reps, weight := num(set.Reps), num(set.Weight)
			s.TotalSets++
			s.TotalReps += reps
			s.TotalVolume += reps * weight
		}
	}

	if start != nil && end != nil {
		ms := end.Sub(*start).Milliseconds()
		s.DurationSeconds = int64(math.Max(0, math.Round(float64(ms)/1000)))
	}
	return s
}

// DefaultName names a workout after its first named exercise and date, e.g.
// "Squat (2024-01-01)", or "Workout 2024-01-01" when no exercise has a name.
func DefaultName(date string, exercises []models.Exercise) string {
	label := strings.TrimSpace(date)
	if label == "" {
		label = time.Now().Format("2006-01-02")
	}
	for _, ex := range exercises {
		if name := strings.TrimSpace(ex.Name); name != "" {
			return fmt.Sprintf("%s (%s)", name, label)
		}
	}
	return "Workout " + label
}

// WorkoutName returns the workout's name, falling back to DefaultName.
func WorkoutName(w models.Workout) string {
	if name := strings.TrimSpace(w.Name); name != "" {
		return name
	}
	return DefaultName(w.Date, w.Exercises)
}

// num treats NaN, ±Inf and negatives as zero.
func num(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
