package logbook

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/repshape/internal/models"
)

// Selection prefixes for TemplateExercises.
const (
	SelectTemplate = "template:"
	SelectWorkout  = "workout:"
)

// Templates returns the saved templates in creation order.
func (l *Logbook) Templates() []models.Template {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.data.Templates)
}

// Template returns one template by id.
func (l *Logbook) Template(id string) (models.Template, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.templateIndex(id)
	if i < 0 {
		return models.Template{}, ErrNotFound
	}
	return l.data.Templates[i], nil
}

func (l *Logbook) templateIndex(id string) int {
	return slices.IndexFunc(l.data.Templates, func(t models.Template) bool { return t.ID == id })
}

// SaveTemplate stores exercises as a new template. Nameless exercises are
// dropped and every exercise keeps at least one set. A blank name becomes
// "Template N".
func (l *Logbook) SaveTemplate(ctx context.Context, name, description string, exercises []models.Exercise) (models.Template, error) {
	var named []models.Exercise
	for _, ex := range exercises {
		if strings.TrimSpace(ex.Name) != "" {
			named = append(named, ex)
		}
	}
	if len(named) == 0 {
		return models.Template{}, ErrEmptyWorkout
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Template %d", len(l.data.Templates)+1)
	}
	t := models.Template{
		ID:          "t_" + uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Exercises:   models.CloneExercises(named),
	}

	d := l.data
	d.Templates = append(slices.Clone(d.Templates), t)
	if err := l.saveData(ctx, d); err != nil {
		return models.Template{}, err
	}
	l.log.Info("template saved", "id", t.ID, "name", t.Name)
	return t, nil
}

// DeleteTemplate removes a template.
func (l *Logbook) DeleteTemplate(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.templateIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	d := l.data
	d.Templates = slices.Delete(slices.Clone(d.Templates), i, i+1)
	return l.saveData(ctx, d)
}

// TemplateExercises returns a fresh copy of the exercises of a template
// ("template:<id>") or of a past workout ("workout:<id>") to start a new
// workout from.
func (l *Logbook) TemplateExercises(selection string) ([]models.Exercise, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case strings.HasPrefix(selection, SelectTemplate):
		i := l.templateIndex(strings.TrimPrefix(selection, SelectTemplate))
		if i < 0 {
			return nil, ErrNotFound
		}
		return models.CloneExercises(l.data.Templates[i].Exercises), nil
	case strings.HasPrefix(selection, SelectWorkout):
		i := l.workoutIndex(strings.TrimPrefix(selection, SelectWorkout))
		if i < 0 {
			return nil, ErrNotFound
		}
		return models.CloneExercises(l.data.Workouts[i].Exercises), nil
	default:
		return nil, ErrNotFound
	}
}
