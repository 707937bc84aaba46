// Package csvio reads and writes the workout CSV format: one row per set,
// with the workout's own fields repeated on each of its rows.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/claude/repshape/internal/models"
	"github.com/claude/repshape/internal/training"
)

// ErrMissingExercises rejects a file with no exerciseName column or no rows
// naming an exercise. Nothing from such a file is imported.
var ErrMissingExercises = errors.New("csv has no exercise names")

// Columns is the export column order.
var Columns = []string{
	"id", "date", "workoutName", "notes",
	"exerciseName", "muscleGroup", "exerciseLocation", "exerciseNotes",
	"setIndex", "reps", "weight", "setRPE", "setCustom",
	"totalSets", "totalReps", "totalVolume", "durationSeconds",
}

var summaryColumns = []string{"totalSets", "totalReps", "totalVolume", "durationSeconds"}

// Parser adapts ImportWorkouts to ingest.Parser.
type Parser struct{}

// Parse implements ingest.Parser.
func (Parser) Parse(r io.Reader) ([]models.Workout, error) {
	return ImportWorkouts(r)
}

// ExportWorkouts writes every set of every workout as one row. An exercise
// with no sets gets one row with the set columns left blank, so it survives
// a re-import. setIndex counts per exercise name within a workout, matching
// how ImportWorkouts merges repeated names. Text fields are trimmed, as the
// importer trims them too; embedded newlines are kept and quoted.
func ExportWorkouts(w io.Writer, workouts []models.Workout) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, wo := range workouts {
		name := strings.TrimSpace(training.WorkoutName(wo))
		notes := strings.TrimSpace(wo.Notes)
		summary := []string{
			strconv.Itoa(wo.Summary.TotalSets),
			formatNum(wo.Summary.TotalReps),
			formatNum(wo.Summary.TotalVolume),
			strconv.FormatInt(wo.Summary.DurationSeconds, 10),
		}
		next := make(map[string]int)

		for _, ex := range wo.Exercises {
			exName := strings.TrimSpace(ex.Name)
			head := []string{
				wo.ID,
				wo.Date,
				name,
				notes,
				exName,
				strings.TrimSpace(ex.MuscleGroup),
				string(models.NormalizeLocation(string(ex.Location))),
				strings.TrimSpace(ex.Notes),
			}

			if len(ex.Sets) == 0 {
				row := append(append(slices.Clone(head), "", "", "", "", ""), summary...)
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing workout %s: %w", wo.ID, err)
				}
				continue
			}

			for _, s := range ex.Sets {
				next[exName]++
				row := append(slices.Clone(head),
					strconv.Itoa(next[exName]),
					formatNum(s.Reps),
					formatNum(s.Weight),
					formatRPE(s.RPE),
					strings.TrimSpace(s.Custom),
				)
				row = append(row, summary...)
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing workout %s: %w", wo.ID, err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportWorkouts groups rows into workouts by id and into exercises by exact
// exercise name. Sets keep row order unless a setIndex column is present, in
// which case they are ordered by it. Rows without an id or exercise name are
// skipped; unparsable numbers become zero. A row whose set columns are all
// blank declares the exercise without adding a set.
func ImportWorkouts(r io.Reader) ([]models.Workout, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}

	type pending struct {
		workout *models.Workout
		orders  [][]float64 // per exercise, per set
	}
	byID := make(map[string]*pending)
	var order []string
	exercises := 0
	hasSummary := t.hasAny(summaryColumns...)

	for _, row := range t.rows {
		id := t.get(row, "id")
		if id == "" {
			continue
		}

		p, ok := byID[id]
		if !ok {
			wo := &models.Workout{
				ID:    id,
				Date:  t.get(row, "date"),
				Name:  t.get(row, "workoutName"),
				Notes: t.get(row, "notes"),
			}
			if hasSummary {
				wo.Summary = models.Summary{
					TotalSets:       int(parseNum(t.get(row, "totalSets"))),
					TotalReps:       parseNum(t.get(row, "totalReps")),
					TotalVolume:     parseNum(t.get(row, "totalVolume")),
					DurationSeconds: int64(parseNum(t.get(row, "durationSeconds"))),
				}
			}
			p = &pending{workout: wo}
			byID[id] = p
			order = append(order, id)
		}

		exName := t.get(row, "exerciseName")
		if exName == "" {
			continue
		}

		i := findExercise(p.workout.Exercises, exName)
		if i < 0 {
			p.workout.Exercises = append(p.workout.Exercises, newExercise(t, row, exName))
			p.orders = append(p.orders, nil)
			i = len(p.workout.Exercises) - 1
			exercises++
		}
		if t.noSet(row) {
			continue
		}
		ex := &p.workout.Exercises[i]
		p.orders[i] = append(p.orders[i], t.setOrder(row, len(ex.Sets)))
		ex.Sets = append(ex.Sets, t.set(row))
	}

	if exercises == 0 {
		return nil, ErrMissingExercises
	}

	workouts := make([]models.Workout, 0, len(order))
	for _, id := range order {
		p := byID[id]
		wo := p.workout
		if t.has("setIndex") {
			for i := range wo.Exercises {
				sortSets(wo.Exercises[i].Sets, p.orders[i])
			}
		}
		if strings.TrimSpace(wo.Name) == "" {
			wo.Name = training.DefaultName(wo.Date, wo.Exercises)
		}
		if !hasSummary {
			wo.Summary = training.CalculateSummary(wo.Exercises, nil, nil)
		}
		workouts = append(workouts, *wo)
	}
	return workouts, nil
}

// table is a parsed CSV file with a header index.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingExercises
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &table{index: make(map[string]int, len(header))}
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}
	if !t.has("exerciseName") {
		return nil, ErrMissingExercises
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		if blank(rec) {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

func (t *table) hasAny(cols ...string) bool {
	for _, c := range cols {
		if t.has(c) {
			return true
		}
	}
	return false
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) set(row []string) models.Set {
	return models.Set{
		Reps:   parseNum(t.get(row, "reps")),
		Weight: parseNum(t.get(row, "weight")),
		RPE:    parseRPE(t.get(row, "setRPE")),
		Custom: t.get(row, "setCustom"),
	}
}

var setColumns = []string{"setIndex", "reps", "weight", "setRPE", "setCustom"}

// noSet reports whether the file has set columns and this row leaves all of
// them blank.
func (t *table) noSet(row []string) bool {
	if !t.hasAny(setColumns...) {
		return false
	}
	for _, c := range setColumns {
		if t.get(row, c) != "" {
			return false
		}
	}
	return true
}

// setOrder is the row's setIndex, or its arrival position when the index is
// missing or unparsable.
func (t *table) setOrder(row []string, position int) float64 {
	if v, err := strconv.ParseFloat(t.get(row, "setIndex"), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	return float64(position)
}

func newExercise(t *table, row []string, name string) models.Exercise {
	return models.Exercise{
		Name:        name,
		MuscleGroup: t.get(row, "muscleGroup"),
		Location:    models.NormalizeLocation(t.get(row, "exerciseLocation")),
		Notes:       t.get(row, "exerciseNotes"),
	}
}

func findExercise(exercises []models.Exercise, name string) int {
	for i, ex := range exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

// sortSets stably reorders sets by the parallel orders slice.
func sortSets(sets []models.Set, orders []float64) {
	idx := make([]int, len(sets))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return orders[idx[a]] < orders[idx[b]] })

	sorted := make([]models.Set, len(sets))
	for i, j := range idx {
		sorted[i] = sets[j]
	}
	copy(sets, sorted)
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseNum parses a non-negative number, returning 0 for anything else.
func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// parseRPE accepts values on the 1–10 scale; anything else is treated as unset.
func parseRPE(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < 1 || v > 10 {
		return nil
	}
	return &v
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRPE(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNum(*v)
}
