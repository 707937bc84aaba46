package models

import (
	"strings"
	"time"
)

// Location is where an exercise is performed.
type Location string

const (
	LocationHome Location = "home"
	LocationGym  Location = "gym"
)

// NormalizeLocation maps free text to a known location, defaulting to home.
func NormalizeLocation(s string) Location {
	switch Location(strings.ToLower(strings.TrimSpace(s))) {
	case LocationGym:
		return LocationGym
	default:
		return LocationHome
	}
}

// Set is a single logged set.
type Set struct {
	Reps   float64  `json:"reps"`
	Weight float64  `json:"weight"`
	RPE    *float64 `json:"rpe,omitempty"`
	Custom string   `json:"custom,omitempty"`
}

// Volume returns reps × weight.
func (s Set) Volume() float64 {
	return s.Reps * s.Weight
}

// Exercise is an ordered group of sets for one movement.
type Exercise struct {
	Name        string   `json:"name"`
	MuscleGroup string   `json:"muscle_group,omitempty"`
	Location    Location `json:"location"`
	Notes       string   `json:"notes,omitempty"`
	Sets        []Set    `json:"sets"`
}

// Summary is computed once when a workout is saved and stored with it.
type Summary struct {
	TotalSets       int     `json:"total_sets"`
	TotalReps       float64 `json:"total_reps"`
	TotalVolume     float64 `json:"total_volume"`
	DurationSeconds int64   `json:"duration_seconds"`
}

// Workout is a saved training session.
type Workout struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	Name      string     `json:"name"`
	Notes     string     `json:"notes,omitempty"`
	Exercises []Exercise `json:"exercises"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Summary   Summary    `json:"summary"`
}

// Template is a reusable list of exercises.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

// CloneExercises deep-copies exercises for use as a new in-progress workout.
// Every exercise gets a location and at least one (blank) set.
func CloneExercises(exercises []Exercise) []Exercise {
	out := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		sets := make([]Set, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			c := s
			if s.RPE != nil {
				v := *s.RPE
				c.RPE = &v
			}
			sets = append(sets, c)
		}
		if len(sets) == 0 {
			sets = append(sets, Set{})
		}
		out = append(out, Exercise{
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			Location:    NormalizeLocation(string(ex.Location)),
			Notes:       ex.Notes,
			Sets:        sets,
		})
	}
	return out
}
