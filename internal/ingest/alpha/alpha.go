// Package alpha converts Alpha Progression CSV exports into workouts.
//
// Each session becomes one workout dated by the session start. Exercises are
// logged at the gym; warm-up and bodyweight-plus sets are marked in the set's
// custom field, and reps in reserve become RPE (10 − RIR).
package alpha

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/repshape/internal/models"
	"github.com/claude/repshape/internal/training"
)

// idNamespace seeds workout ids so re-importing an export yields the same ids.
var idNamespace = uuid.MustParse("6f1d7a52-2a7e-4c35-9a43-51a1d1f0b9e4")

// Parser implements ingest.Parser for Alpha Progression exports.
type Parser struct{}

// Parse implements ingest.Parser.
func (Parser) Parse(r io.Reader) ([]models.Workout, error) {
	return Parse(r)
}

// Parse reads an export and returns one workout per session.
func Parse(r io.Reader) ([]models.Workout, error) {
	sessions, err := parseSessions(r)
	if err != nil {
		return nil, fmt.Errorf("parsing alpha export: %w", err)
	}
	workouts := make([]models.Workout, 0, len(sessions))
	for _, s := range sessions {
		workouts = append(workouts, s.toWorkout())
	}
	return workouts, nil
}

// WorkoutID is the stable id for a session name and start time.
func WorkoutID(name string, start time.Time) string {
	key := name + "|" + start.Format("2006-01-02T15:04")
	return "w_" + uuid.NewSHA1(idNamespace, []byte(key)).String()
}

func (s session) toWorkout() models.Workout {
	exercises := make([]models.Exercise, 0, len(s.exercises))
	for _, ex := range s.exercises {
		exercises = append(exercises, ex.toExercise())
	}

	w := models.Workout{
		ID:        WorkoutID(s.name, s.start),
		Date:      s.start.Format("2006-01-02"),
		Name:      strings.TrimSpace(s.name),
		Exercises: exercises,
	}
	if w.Name == "" {
		w.Name = training.DefaultName(w.Date, exercises)
	}

	start := s.start
	var end *time.Time
	if d := parseDuration(s.duration); d > 0 {
		e := start.Add(time.Duration(d) * time.Second)
		end = &e
		w.StartTime = &start
		w.EndTime = end
	}
	w.Summary = training.CalculateSummary(exercises, w.StartTime, end)
	return w
}

func (ex exercise) toExercise() models.Exercise {
	var notes []string
	if ex.equipment != "" {
		notes = append(notes, ex.equipment)
	}
	if ex.targetReps > 0 {
		notes = append(notes, fmt.Sprintf("%d reps", ex.targetReps))
	}
	if ex.modifiers != "" {
		notes = append(notes, ex.modifiers)
	}

	sets := make([]models.Set, 0, len(ex.sets))
	for _, s := range ex.sets {
		sets = append(sets, s.toSet())
	}
	return models.Exercise{
		Name:     ex.name,
		Location: models.LocationGym,
		Notes:    strings.Join(notes, " · "),
		Sets:     sets,
	}
}

func (s set) toSet() models.Set {
	out := models.Set{Reps: float64(s.reps), Weight: s.weightKg}

	var tags []string
	if s.warmup {
		tags = append(tags, "warm-up")
	}
	if s.bodyweight {
		tags = append(tags, "bodyweight +")
	}
	out.Custom = strings.Join(tags, ", ")

	if !s.warmup {
		rpe := 10 - s.rir
		if rpe >= 1 && rpe <= 10 {
			out.RPE = &rpe
		}
	}
	return out
}
