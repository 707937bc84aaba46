package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/repshape/internal/models"
)

// TemplateColumns is the column order of an exported template.
var TemplateColumns = []string{
	"id", "exerciseName", "muscleGroup", "exerciseLocation", "exerciseNotes",
	"setIndex", "reps", "weight", "setCustom",
}

// ExportTemplate writes a template's exercises, one row per planned set.
// Exercises without sets get one blank row so they survive a round trip.
// setIndex counts per exercise name, as ImportTemplate merges repeated names.
func ExportTemplate(w io.Writer, t models.Template) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	next := make(map[string]int)
	for _, ex := range models.CloneExercises(t.Exercises) {
		name := strings.TrimSpace(ex.Name)
		for _, s := range ex.Sets {
			next[name]++
			row := []string{
				t.ID,
				name,
				strings.TrimSpace(ex.MuscleGroup),
				string(ex.Location),
				strings.TrimSpace(ex.Notes),
				strconv.Itoa(next[name]),
				blankZero(s.Reps),
				blankZero(s.Weight),
				strings.TrimSpace(s.Custom),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing exercise %q: %w", ex.Name, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportTemplate reads the exercises of the first template id in the file.
// Files without an id column are read as a single template. Every exercise
// comes back with at least one set.
func ImportTemplate(r io.Reader) ([]models.Exercise, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	var target string
	if t.has("id") {
		for _, row := range t.rows {
			if id := t.get(row, "id"); id != "" {
				target = id
				break
			}
		}
	}

	var exercises []models.Exercise
	var orders [][]float64
	for _, row := range t.rows {
		if target != "" && t.get(row, "id") != target {
			continue
		}
		name := t.get(row, "exerciseName")
		if name == "" {
			continue
		}
		i := findExercise(exercises, name)
		if i < 0 {
			exercises = append(exercises, newExercise(t, row, name))
			orders = append(orders, nil)
			i = len(exercises) - 1
		}
		orders[i] = append(orders[i], t.setOrder(row, len(exercises[i].Sets)))
		exercises[i].Sets = append(exercises[i].Sets, t.set(row))
	}

	if len(exercises) == 0 {
		return nil, ErrMissingExercises
	}
	if t.has("setIndex") {
		for i := range exercises {
			sortSets(exercises[i].Sets, orders[i])
		}
	}
	return models.CloneExercises(exercises), nil
}

func blankZero(v float64) string {
	if v == 0 {
		return ""
	}
	return formatNum(v)
}
