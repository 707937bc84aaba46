// Package logbook owns the persisted workout log, settings, templates and
// saved body-composition scenarios. All state is held in memory and written
// back to the blob store as a whole after every change.
package logbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/ingest"
	"github.com/claude/repshape/internal/models"
	"github.com/claude/repshape/internal/storage"
	"github.com/claude/repshape/internal/training"
)

var (
	// ErrNotFound is returned for unknown workout, template or scenario ids.
	ErrNotFound = errors.New("not found")

	// ErrEmptyWorkout rejects a workout with no named exercise.
	ErrEmptyWorkout = errors.New("workout has no exercises")
)

// Data is the blob stored under storage.KeyWorkouts.
type Data struct {
	Workouts  []models.Workout  `json:"workouts"`
	Settings  models.Settings   `json:"settings"`
	Templates []models.Template `json:"templates"`
}

// WorkoutForm is a finished workout as submitted by a client.
type WorkoutForm struct {
	Date      string            `json:"date"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes"`
	Exercises []models.Exercise `json:"exercises"`
	StartTime *time.Time        `json:"start_time,omitempty"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
}

// Logbook is safe for concurrent use.
type Logbook struct {
	store storage.BlobStore
	log   *slog.Logger
	now   func() time.Time

	mu        sync.Mutex
	data      Data
	scenarios []composition.Scenario
}

// New creates a logbook over store. Call Load before use.
func New(store storage.BlobStore, log *slog.Logger) *Logbook {
	return &Logbook{
		store: store,
		log:   log,
		now:   time.Now,
		data:  Data{Settings: models.DefaultSettings()},
	}
}

// Load reads both blobs. Missing blobs start empty; unreadable ones are an
// error so a bad file is never silently overwritten.
func (l *Logbook) Load(ctx context.Context) error {
	data := Data{Settings: models.DefaultSettings()}
	if err := l.read(ctx, storage.KeyWorkouts, &data); err != nil {
		return err
	}
	var scenarios []composition.Scenario
	if err := l.read(ctx, storage.KeyScenarios, &scenarios); err != nil {
		return err
	}

	normalize(&data)

	l.mu.Lock()
	l.data = data
	l.scenarios = scenarios
	l.mu.Unlock()

	l.log.Info("logbook loaded",
		"workouts", len(data.Workouts),
		"templates", len(data.Templates),
		"scenarios", len(scenarios),
	)
	return nil
}

func (l *Logbook) read(ctx context.Context, key string, v any) error {
	raw, err := l.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// normalize fills defaults for data written by older versions.
func normalize(d *Data) {
	def := models.DefaultSettings()
	if strings.TrimSpace(d.Settings.Units) == "" {
		d.Settings.Units = def.Units
	}
	if d.Settings.DefaultRestSeconds < 0 {
		d.Settings.DefaultRestSeconds = def.DefaultRestSeconds
	}
	d.Settings.Theme = models.SanitizeTheme(d.Settings.Theme)

	for i := range d.Workouts {
		w := &d.Workouts[i]
		if strings.TrimSpace(w.Name) == "" {
			w.Name = training.DefaultName(w.Date, w.Exercises)
		}
		for j := range w.Exercises {
			w.Exercises[j].Location = models.NormalizeLocation(string(w.Exercises[j].Location))
		}
	}
}

// saveData persists d and makes it current. Callers hold l.mu.
func (l *Logbook) saveData(ctx context.Context, d Data) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := l.store.Put(ctx, storage.KeyWorkouts, raw); err != nil {
		return err
	}
	l.data = d
	return nil
}

// Workouts returns the log, newest entry first.
func (l *Logbook) Workouts() []models.Workout {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.data.Workouts)
}

// Workout returns one workout by id.
func (l *Logbook) Workout(id string) (models.Workout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.workoutIndex(id)
	if i < 0 {
		return models.Workout{}, ErrNotFound
	}
	return l.data.Workouts[i], nil
}

func (l *Logbook) workoutIndex(id string) int {
	return slices.IndexFunc(l.data.Workouts, func(w models.Workout) bool { return w.ID == id })
}

// CreateWorkout saves a finished workout. Exercises without a name are
// dropped; the summary is computed here and never recomputed.
func (l *Logbook) CreateWorkout(ctx context.Context, form WorkoutForm) (models.Workout, error) {
	var exercises []models.Exercise
	for _, ex := range form.Exercises {
		ex.Name = strings.TrimSpace(ex.Name)
		if ex.Name == "" {
			continue
		}
		ex.Location = models.NormalizeLocation(string(ex.Location))
		exercises = append(exercises, ex)
	}
	if len(exercises) == 0 {
		return models.Workout{}, ErrEmptyWorkout
	}

	date := strings.TrimSpace(form.Date)
	if date == "" {
		date = l.now().Format("2006-01-02")
	}
	w := models.Workout{
		ID:        "w_" + uuid.NewString(),
		Date:      date,
		Name:      strings.TrimSpace(form.Name),
		Notes:     strings.TrimSpace(form.Notes),
		Exercises: exercises,
		StartTime: form.StartTime,
		EndTime:   form.EndTime,
		Summary:   training.CalculateSummary(exercises, form.StartTime, form.EndTime),
	}
	if w.Name == "" {
		w.Name = training.DefaultName(w.Date, w.Exercises)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.data
	d.Workouts = append([]models.Workout{w}, d.Workouts...)
	if err := l.saveData(ctx, d); err != nil {
		return models.Workout{}, err
	}
	l.log.Info("workout saved", "id", w.ID, "name", w.Name, "sets", w.Summary.TotalSets)
	return w, nil
}

// RenameWorkout changes a workout's name. A blank name restores the default.
func (l *Logbook) RenameWorkout(ctx context.Context, id, name string) (models.Workout, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.workoutIndex(id)
	if i < 0 {
		return models.Workout{}, ErrNotFound
	}

	d := l.data
	d.Workouts = slices.Clone(d.Workouts)
	w := &d.Workouts[i]
	w.Name = strings.TrimSpace(name)
	if w.Name == "" {
		w.Name = training.DefaultName(w.Date, w.Exercises)
	}
	if err := l.saveData(ctx, d); err != nil {
		return models.Workout{}, err
	}
	return *w, nil
}

// DeleteWorkout removes a workout.
func (l *Logbook) DeleteWorkout(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.workoutIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	d := l.data
	d.Workouts = slices.Delete(slices.Clone(d.Workouts), i, i+1)
	if err := l.saveData(ctx, d); err != nil {
		return err
	}
	l.log.Info("workout deleted", "id", id)
	return nil
}

// ImportWorkouts adds workouts whose id is not already in the log, ahead of
// the existing entries. Workouts without an id get a new one.
func (l *Logbook) ImportWorkouts(ctx context.Context, workouts []models.Workout) (*ingest.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool, len(l.data.Workouts))
	for _, w := range l.data.Workouts {
		seen[w.ID] = true
	}

	result := &ingest.Result{WorkoutsReceived: len(workouts)}
	var added []models.Workout
	for _, w := range workouts {
		result.ExercisesReceived += len(w.Exercises)
		for _, ex := range w.Exercises {
			result.SetsReceived += len(ex.Sets)
		}

		if strings.TrimSpace(w.ID) == "" {
			w.ID = "w_" + uuid.NewString()
		}
		if seen[w.ID] {
			result.WorkoutsSkipped++
			result.SkippedIDs = append(result.SkippedIDs, w.ID)
			continue
		}
		seen[w.ID] = true
		if strings.TrimSpace(w.Name) == "" {
			w.Name = training.DefaultName(w.Date, w.Exercises)
		}
		added = append(added, w)
	}

	result.WorkoutsInserted = len(added)
	result.Message = fmt.Sprintf("Imported %d workouts (%d skipped).", result.WorkoutsInserted, result.WorkoutsSkipped)
	if len(added) == 0 {
		return result, nil
	}

	d := l.data
	d.Workouts = append(added, d.Workouts...)
	if err := l.saveData(ctx, d); err != nil {
		return nil, err
	}
	l.log.Info("workouts imported", "inserted", result.WorkoutsInserted, "skipped", result.WorkoutsSkipped)
	return result, nil
}
