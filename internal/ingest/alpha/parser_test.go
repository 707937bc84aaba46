package alpha

import (
	"strings"
	"testing"
	"time"

	"github.com/claude/repshape/internal/models"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
3;+35;10;0
"4. Reverse Lunges · Dumbbells · 10 reps"
#;KG;REPS;RIR
1;10;10;1
2;10;10;1
3;10;10;0
"5. Standing Calf Raises · Machine · 12 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0
3;157,5;10;0
"6. Hanging Leg Raises · Bodyweight · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;+0;12;1
2;+0;12;1
3;+0;12;0

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps<br>WU2 · 47,5 kg · 8 reps<br>WU3 · 77,5 kg · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0
`

// TestParseSessions verifies the raw session blocks of a multi-session export.
func TestParseSessions(t *testing.T) {
	sessions, err := parseSessions(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.name != "Legs · Day 2 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s1.name = %q", s1.name)
	}
	if s1.duration != "1:02 hr" {
		t.Errorf("s1.duration = %q", s1.duration)
	}
	if len(s1.exercises) != 6 {
		t.Fatalf("s1 exercises = %d, want 6", len(s1.exercises))
	}

	tests := []struct {
		name      string
		equipment string
		target    int
		sets      int
	}{
		{"Hack Squats", "Machine", 8, 5},
		{"Sumo Squats", "Smith machine", 10, 3},
		{"Hyperextensions on Roman Chair", "Bodyweight", 10, 4},
		{"Reverse Lunges", "Dumbbells", 10, 3},
		{"Standing Calf Raises", "Machine", 12, 4},
		{"Hanging Leg Raises", "Bodyweight", 12, 3},
	}
	for i, tt := range tests {
		ex := s1.exercises[i]
		if ex.name != tt.name || ex.equipment != tt.equipment || ex.targetReps != tt.target {
			t.Errorf("exercise %d = %q/%q/%d, want %q/%q/%d", i+1, ex.name, ex.equipment, ex.targetReps, tt.name, tt.equipment, tt.target)
		}
		if len(ex.sets) != tt.sets {
			t.Errorf("%s sets = %d, want %d", tt.name, len(ex.sets), tt.sets)
		}
	}
	if got := s1.exercises[5].modifiers; got != "2 dropsets" {
		t.Errorf("modifiers = %q, want 2 dropsets", got)
	}

	if sessions[1].name != "Push · Day 1 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s2.name = %q", sessions[1].name)
	}
}

// TestParseWorkouts verifies sessions convert into dated gym workouts with
// summaries and duration.
func TestParseWorkouts(t *testing.T) {
	workouts, err := Parser{}.Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("workouts = %d, want 2", len(workouts))
	}

	w := workouts[1]
	if w.Date != "2026-02-17" || w.Name != "Push · Day 1 · Week 4 · Push-Pull-Legs" {
		t.Errorf("workout = %q %q", w.Date, w.Name)
	}
	if w.Summary.DurationSeconds != 72*60 {
		t.Errorf("duration = %d, want %d", w.Summary.DurationSeconds, 72*60)
	}
	// 3 warm-ups + 3 working sets
	if w.Summary.TotalSets != 6 {
		t.Errorf("sets = %d, want 6", w.Summary.TotalSets)
	}
	wantVolume := 22.5*10 + 47.5*8 + 77.5*6 + 102.5*6*2 + 100*6
	if w.Summary.TotalVolume != wantVolume {
		t.Errorf("volume = %v, want %v", w.Summary.TotalVolume, wantVolume)
	}

	bench := w.Exercises[0]
	if bench.Location != models.LocationGym || bench.Notes != "Barbell · 6 reps" {
		t.Errorf("bench = %q %q", bench.Location, bench.Notes)
	}
	if bench.Sets[0].Custom != "warm-up" || bench.Sets[0].RPE != nil {
		t.Errorf("warm-up set = %+v", bench.Sets[0])
	}
	if r := bench.Sets[3].RPE; r == nil || *r != 10 {
		t.Errorf("working set RPE = %v, want 10", r)
	}

	again, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if again[0].ID != workouts[0].ID || workouts[0].ID == workouts[1].ID {
		t.Errorf("ids not stable and distinct: %s %s %s", workouts[0].ID, again[0].ID, workouts[1].ID)
	}
}

// TestBodyweightSets verifies bodyweight-plus sets are tagged and RIR maps to RPE.
func TestBodyweightSets(t *testing.T) {
	workouts, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hyper := workouts[0].Exercises[2]
	s := hyper.Sets[1]
	if s.Weight != 35 || s.Custom != "bodyweight +" {
		t.Errorf("set = %+v, want 35 bodyweight +", s)
	}
	if s.RPE == nil || *s.RPE != 10 {
		t.Errorf("RPE = %v, want 10", s.RPE)
	}
	if got := hyper.Sets[0].Custom; got != "warm-up, bodyweight +" {
		t.Errorf("warm-up custom = %q", got)
	}
	if r := hyper.Sets[2].RPE; r == nil || *r != 9 {
		t.Errorf("RPE = %v, want 9", r)
	}
}

// TestEuropeanDecimal verifies decimal-comma parsing, including half RIR values.
func TestEuropeanDecimal(t *testing.T) {
	for in, want := range map[string]float64{"102,5": 102.5, "0,5": 0.5, "115": 115, "x": 0} {
		if got := parseEuropeanFloat(in); got != want {
			t.Errorf("parseEuropeanFloat(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestParseWeight verifies the +N bodyweight notation.
func TestParseWeight(t *testing.T) {
	tests := []struct {
		in     string
		weight float64
		bw     bool
	}{
		{"+35", 35, true},
		{"+0", 0, true},
		{"102,5", 102.5, false},
	}
	for _, tt := range tests {
		w, bw := parseWeight(tt.in)
		if w != tt.weight || bw != tt.bw {
			t.Errorf("parseWeight(%q) = %v, %v; want %v, %v", tt.in, w, bw, tt.weight, tt.bw)
		}
	}
}

// TestWarmupParsing verifies warm-up extraction from the exercise header.
func TestWarmupParsing(t *testing.T) {
	sets := parseWarmups("WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps")
	if len(sets) != 2 {
		t.Fatalf("warmup sets = %d, want 2", len(sets))
	}
	if sets[0].weightKg != 37.5 || sets[0].reps != 9 || !sets[0].warmup {
		t.Errorf("wu1 = %+v", sets[0])
	}
	if sets[1].weightKg != 72.5 {
		t.Errorf("wu2 weight = %v, want 72.5", sets[1].weightKg)
	}
}

// TestParseDuration checks the duration formats the app writes.
func TestParseDuration(t *testing.T) {
	tests := map[string]int64{"1:02 hr": 3720, "0:45 hr": 2700, "45 min": 2700, "": 0, "soon": 0}
	for in, want := range tests {
		if got := parseDuration(in); got != want {
			t.Errorf("parseDuration(%q) = %d, want %d", in, got, want)
		}
	}
}

// TestParseSessionDate verifies single- and double-digit hours.
func TestParseSessionDate(t *testing.T) {
	got, err := parseSessionDate("2026-02-19 4:54")
	if err != nil {
		t.Fatalf("parseSessionDate: %v", err)
	}
	if want := time.Date(2026, 2, 19, 4, 54, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := parseSessionDate("19.02.2026"); err == nil {
		t.Error("expected error for unknown format")
	}
}

// TestEmptyInput verifies that empty input yields no workouts.
func TestEmptyInput(t *testing.T) {
	workouts, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workouts) != 0 {
		t.Errorf("workouts = %d, want 0", len(workouts))
	}
}

// TestSetWithoutExercise verifies orphan set rows are rejected.
func TestSetWithoutExercise(t *testing.T) {
	in := "\"Push\";\"2026-02-17 5:04 h\";\"1:12 hr\"\n1;100;5;1\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Error("expected error")
	}
}
