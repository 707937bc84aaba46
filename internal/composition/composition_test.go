package composition

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

var current = Measurement{Weight: 200, FatMass: 40, MuscleMass: 80}

// TestNewCompositionPercentages verifies the three percentages add up to 100
// whenever weight is positive, and are all zero for zero weight.
func TestNewCompositionPercentages(t *testing.T) {
	tests := []struct {
		name                string
		weight, fat, muscle float64
		wantSum             float64
	}{
		{"typical", 180, 36, 72, 100},
		{"no remainder", 100, 30, 70, 100},
		{"light", 0.5, 0.1, 0.2, 100},
		{"zero weight", 0, 10, 10, 0},
		{"negative weight", -50, 10, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComposition(tt.weight, tt.fat, tt.muscle)
			sum := c.FatPct + c.MusclePct + c.RemainderPct
			if math.Abs(sum-tt.wantSum) > 1e-6 {
				t.Errorf("pct sum = %v, want %v", sum, tt.wantSum)
			}
		})
	}
}

// TestNewCompositionOverAccounted verifies fat+muscle above weight clamps the
// remainder to zero instead of going negative.
func TestNewCompositionOverAccounted(t *testing.T) {
	c := NewComposition(100, 60, 60)
	if c.RemainderMass != 0 {
		t.Errorf("remainder = %v, want 0", c.RemainderMass)
	}
	if c.FatPct != 60 || c.MusclePct != 60 {
		t.Errorf("pcts = %v/%v, want 60/60", c.FatPct, c.MusclePct)
	}
}

// TestResolveSameWeightIsIdentity verifies SameWeight returns the current composition.
func TestResolveSameWeightIsIdentity(t *testing.T) {
	got := Resolve(current, SameWeight{})
	if got != current.Composition() {
		t.Errorf("Resolve(SameWeight) = %+v, want %+v", got, current.Composition())
	}
	if got := Resolve(current, nil); got != current.Composition() {
		t.Errorf("Resolve(nil) = %+v, want current", got)
	}
}

// TestResolveGoals checks every goal variant against hand-computed targets
// for a 200 lb body with 40 lb fat and 80 lb muscle (80 lb remainder).
func TestResolveGoals(t *testing.T) {
	tests := []struct {
		name                string
		goal                Goal
		weight, fat, muscle float64
		wantRemainder       float64
	}{
		{"target weight", TargetWeight{Weight: 180}, 180, 36, 72, 72},
		{"target weight negative", TargetWeight{Weight: -10}, 0, 0, 0, 0},
		{"fat mass", TargetFatMass{Mass: 30}, 190, 30, 80, 80},
		{"fat mass negative", TargetFatMass{Mass: -5}, 160, 0, 80, 80},
		{"fat pct", TargetFatPct{Pct: 20}, 200, 40, 80, 80},
		{"fat pct zero is no-op", TargetFatPct{Pct: 0}, 200, 40, 80, 80},
		{"fat pct 100 is no-op", TargetFatPct{Pct: 100}, 200, 40, 80, 80},
		{"fat pct over 100 is no-op", TargetFatPct{Pct: 150}, 200, 40, 80, 80},
		{"muscle mass", TargetMuscleMass{Mass: 100}, 220, 40, 100, 80},
		{"muscle pct", TargetMusclePct{Pct: 50}, 240, 40, 120, 80},
		{"muscle pct negative is no-op", TargetMusclePct{Pct: -5}, 200, 40, 80, 80},
		{"weight and fat pct", TargetWeightAndFatPct{Weight: 180, Pct: 10}, 180, 18, 82, 80},
		{"weight and fat pct clamps muscle", TargetWeightAndFatPct{Weight: 100, Pct: 50}, 100, 50, 0, 50},
		{"weight and muscle pct", TargetWeightAndMusclePct{Weight: 200, Pct: 50}, 200, 20, 100, 80},
		{"weight and muscle pct clamps fat", TargetWeightAndMusclePct{Weight: 150, Pct: 60}, 150, 0, 90, 60},
		{"three-way within budget", TargetWeightFatMusclePct{Weight: 200, FatPct: 20, MusclePct: 40}, 200, 40, 80, 80},
		{"three-way normalized", TargetWeightFatMusclePct{Weight: 200, FatPct: 60, MusclePct: 60}, 200, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(current, tt.goal)
			if !approx(got.Weight, tt.weight) {
				t.Errorf("weight = %v, want %v", got.Weight, tt.weight)
			}
			if !approx(got.FatMass, tt.fat) {
				t.Errorf("fat = %v, want %v", got.FatMass, tt.fat)
			}
			if !approx(got.MuscleMass, tt.muscle) {
				t.Errorf("muscle = %v, want %v", got.MuscleMass, tt.muscle)
			}
			if !approx(got.RemainderMass, tt.wantRemainder) {
				t.Errorf("remainder = %v, want %v", got.RemainderMass, tt.wantRemainder)
			}
		})
	}
}

// TestResolveFatPctFraction verifies the fat-percent formula for a value that
// does not divide evenly: weight = (muscle + remainder) / (1 - p).
func TestResolveFatPctFraction(t *testing.T) {
	got := Resolve(current, TargetFatPct{Pct: 15})
	wantWeight := 160 / 0.85
	if !approx(got.Weight, wantWeight) {
		t.Errorf("weight = %v, want %v", got.Weight, wantWeight)
	}
	if math.Abs(got.FatPct-15) > 1e-9 {
		t.Errorf("fat pct = %v, want 15", got.FatPct)
	}
	if got.MuscleMass != current.MuscleMass {
		t.Errorf("muscle = %v, want unchanged %v", got.MuscleMass, current.MuscleMass)
	}
}

// TestResolveTargetWeightPreservesRatios verifies fat and muscle keep their
// share of body weight when only weight changes.
func TestResolveTargetWeightPreservesRatios(t *testing.T) {
	for _, w := range []float64{50, 150, 199.5, 321} {
		got := Resolve(current, TargetWeight{Weight: w})
		if !approx(got.FatMass/got.Weight, current.FatMass/current.Weight) {
			t.Errorf("w=%v: fat ratio = %v, want %v", w, got.FatMass/got.Weight, 0.2)
		}
		if !approx(got.MuscleMass/got.Weight, current.MuscleMass/current.Weight) {
			t.Errorf("w=%v: muscle ratio = %v, want %v", w, got.MuscleMass/got.Weight, 0.4)
		}
	}
}

// TestResolveTargetWeightFromZero verifies a zero current weight leaves fat
// and muscle untouched rather than dividing by zero.
func TestResolveTargetWeightFromZero(t *testing.T) {
	got := Resolve(Measurement{}, TargetWeight{Weight: 150})
	if got.Weight != 150 || got.FatMass != 0 || got.MuscleMass != 0 {
		t.Errorf("got %+v, want weight 150 and zero fat/muscle", got)
	}
	if got.RemainderMass != 150 {
		t.Errorf("remainder = %v, want 150", got.RemainderMass)
	}
}

// TestResolveFatMassKeepsMuscle verifies the muscle mass is unchanged for
// any fat mass goal.
func TestResolveFatMassKeepsMuscle(t *testing.T) {
	for _, f := range []float64{0, 10, 40, 90} {
		got := Resolve(current, TargetFatMass{Mass: f})
		if got.MuscleMass != current.MuscleMass {
			t.Errorf("f=%v: muscle = %v, want %v", f, got.MuscleMass, current.MuscleMass)
		}
	}
}

// TestResolveNormalizedPercentagesSumToOne verifies that over-budget fat and
// muscle percentages are scaled so they use the whole weight.
func TestResolveNormalizedPercentagesSumToOne(t *testing.T) {
	got := Resolve(current, TargetWeightFatMusclePct{Weight: 173.3, FatPct: 35, MusclePct: 80})
	if got.RemainderMass != 0 {
		t.Errorf("remainder = %v, want exactly 0", got.RemainderMass)
	}
	if sum := got.FatPct + got.MusclePct; math.Abs(sum-100) > 1e-9 {
		t.Errorf("fat+muscle pct = %v, want 100", sum)
	}
	if !approx(got.FatMass/got.MuscleMass, 35.0/80.0) {
		t.Errorf("fat:muscle = %v, want %v", got.FatMass/got.MuscleMass, 35.0/80.0)
	}
}

// TestResolveNonFiniteInputs verifies NaN and Inf are treated as zero.
func TestResolveNonFiniteInputs(t *testing.T) {
	bad := Measurement{Weight: math.NaN(), FatMass: math.Inf(1), MuscleMass: math.Inf(-1)}
	got := Resolve(bad, TargetFatMass{Mass: math.NaN()})
	if got != (Composition{}) {
		t.Errorf("got %+v, want zero composition", got)
	}

	got = Resolve(current, TargetWeightAndFatPct{Weight: 100, Pct: math.Inf(1)})
	if got.FatMass != 0 {
		t.Errorf("fat = %v, want 0 for infinite pct", got.FatMass)
	}
}

// TestProjectDeltas verifies deltas are target minus current.
func TestProjectDeltas(t *testing.T) {
	p := Project(current, TargetWeight{Weight: 180})
	if !approx(p.Delta.Weight, -20) || !approx(p.Delta.Fat, -4) || !approx(p.Delta.Muscle, -8) {
		t.Errorf("delta = %+v, want {-20 -4 -8}", p.Delta)
	}
	if p.Goal.Type != KindTargetWeight || p.Goal.Value != 180 {
		t.Errorf("goal = %+v", p.Goal)
	}
}

// TestDeltaText checks formatting and the no-change threshold.
func TestDeltaText(t *testing.T) {
	tests := []struct {
		delta float64
		unit  string
		want  string
	}{
		{0, "lbs", "No change"},
		{0.009, "lbs", "No change"},
		{-0.0099, "lbs", "No change"},
		{0.01, "lbs", "+0.01 lbs"},
		{-3, "lbs", "-3.00 lbs"},
		{12.346, "kg", "+12.35 kg"},
		{5, "", "+5.00"},
		{math.NaN(), "lbs", "No change"},
	}
	for _, tt := range tests {
		if got := DeltaText(tt.delta, tt.unit); got != tt.want {
			t.Errorf("DeltaText(%v, %q) = %q, want %q", tt.delta, tt.unit, got, tt.want)
		}
	}
}

// TestQuickSummary checks the one-line description of a projection.
func TestQuickSummary(t *testing.T) {
	p := Project(current, TargetFatMass{Mass: 34})
	if got, want := p.QuickSummary("lbs"), "6.0 lbs lighter • 6.0 lbs less fat"; got != want {
		t.Errorf("QuickSummary = %q, want %q", got, want)
	}

	p = Project(current, TargetMuscleMass{Mass: 85})
	if got, want := p.QuickSummary("lbs"), "5.0 lbs heavier • 5.0 lbs more muscle"; got != want {
		t.Errorf("QuickSummary = %q, want %q", got, want)
	}

	p = Project(current, SameWeight{})
	if got := p.QuickSummary("lbs"); got != "No differences." {
		t.Errorf("QuickSummary = %q, want %q", got, "No differences.")
	}
}

// TestGoalSpecRoundTrip verifies every goal survives conversion to its wire
// form and back.
func TestGoalSpecRoundTrip(t *testing.T) {
	goals := []Goal{
		SameWeight{},
		TargetWeight{Weight: 180},
		TargetFatMass{Mass: 30},
		TargetFatPct{Pct: 15},
		TargetMuscleMass{Mass: 90},
		TargetMusclePct{Pct: 45},
		TargetWeightAndFatPct{Weight: 180, Pct: 12},
		TargetWeightAndMusclePct{Weight: 180, Pct: 44},
		TargetWeightFatMusclePct{Weight: 180, FatPct: 12, MusclePct: 44},
	}
	for _, g := range goals {
		spec := SpecOf(g)
		if spec.Type != g.Kind() {
			t.Errorf("SpecOf(%T).Type = %q, want %q", g, spec.Type, g.Kind())
		}
		if back := spec.Goal(); back != g {
			t.Errorf("round trip %T: got %+v, want %+v", g, back, g)
		}
		if Helper(g.Kind()) == "" {
			t.Errorf("Helper(%q) is empty", g.Kind())
		}
	}
}

// TestPointerGoals verifies pointer goals resolve like their values and a
// nil pointer keeps the current composition.
func TestPointerGoals(t *testing.T) {
	tests := []struct {
		ptr Goal
		val Goal
	}{
		{&TargetWeight{Weight: 180}, TargetWeight{Weight: 180}},
		{&TargetFatPct{Pct: 15}, TargetFatPct{Pct: 15}},
		{&TargetWeightFatMusclePct{Weight: 180, FatPct: 12, MusclePct: 44}, TargetWeightFatMusclePct{Weight: 180, FatPct: 12, MusclePct: 44}},
		{(*TargetMuscleMass)(nil), SameWeight{}},
	}
	for _, tt := range tests {
		if got, want := Resolve(current, tt.ptr), Resolve(current, tt.val); got != want {
			t.Errorf("Resolve(%T) = %+v, want %+v", tt.ptr, got, want)
		}
		if got, want := SpecOf(tt.ptr), SpecOf(tt.val); got != want {
			t.Errorf("SpecOf(%T) = %+v, want %+v", tt.ptr, got, want)
		}
	}
}

// TestGoalSpecUnknownType verifies an unknown type falls back to SameWeight.
func TestGoalSpecUnknownType(t *testing.T) {
	if g := (GoalSpec{Type: "lose_it_all", Value: 5}).Goal(); g != (SameWeight{}) {
		t.Errorf("Goal() = %#v, want SameWeight", g)
	}
}

// TestNewScenarioDefaultName verifies blank scenario names are numbered.
func TestNewScenarioDefaultName(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewScenario("  ", Inputs{Current: current}, 2, now)
	if s.Name != "Scenario 3" {
		t.Errorf("name = %q, want %q", s.Name, "Scenario 3")
	}
	if s.ID == "" {
		t.Error("expected an ID")
	}

	s = NewScenario("Cut", Inputs{Current: current, Goal: GoalSpec{Type: KindTargetWeight, Value: 180}}, 0, now)
	if s.Name != "Cut" {
		t.Errorf("name = %q, want Cut", s.Name)
	}
	if p := s.Project(); !approx(p.Target.Weight, 180) {
		t.Errorf("projected weight = %v, want 180", p.Target.Weight)
	}
}
