// Package composition projects a target body composition from a current
// measurement and a goal. Every function here is pure: bad numbers are
// coerced to zero and masses are clamped, nothing returns an error.
package composition

import (
	"fmt"
	"math"
	"strings"
)

// NoChangeThreshold is the smallest delta reported as a change.
const NoChangeThreshold = 0.01

// summaryThreshold is the smallest delta mentioned in QuickSummary.
const summaryThreshold = 0.1

// Measurement is the user-entered current state.
type Measurement struct {
	Weight     float64 `json:"weight"`
	FatMass    float64 `json:"fat_mass"`
	MuscleMass float64 `json:"muscle_mass"`
}

// Composition is a fully accounted body composition. Remainder (bone and
// everything else) is the clamped residual of weight minus fat and muscle.
type Composition struct {
	Weight        float64 `json:"weight"`
	FatMass       float64 `json:"fat_mass"`
	MuscleMass    float64 `json:"muscle_mass"`
	RemainderMass float64 `json:"remainder_mass"`
	FatPct        float64 `json:"fat_pct"`
	MusclePct     float64 `json:"muscle_pct"`
	RemainderPct  float64 `json:"remainder_pct"`
}

// NewComposition builds a Composition from weight, fat and muscle masses.
func NewComposition(weight, fat, muscle float64) Composition {
	w := mass(weight)
	f := mass(fat)
	m := mass(muscle)
	r := remainder(w, f, m)

	toPct := func(x float64) float64 {
		if w <= 0 {
			return 0
		}
		return x / w * 100
	}

	return Composition{
		Weight:        w,
		FatMass:       f,
		MuscleMass:    m,
		RemainderMass: r,
		FatPct:        toPct(f),
		MusclePct:     toPct(m),
		RemainderPct:  toPct(r),
	}
}

// Composition returns the accounted view of a measurement.
func (m Measurement) Composition() Composition {
	return NewComposition(m.Weight, m.FatMass, m.MuscleMass)
}

// Resolve computes the target composition for goal starting from current.
func Resolve(current Measurement, goal Goal) Composition {
	cw, cf, cm := mass(current.Weight), mass(current.FatMass), mass(current.MuscleMass)
	rem := remainder(cw, cf, cm)

	tw, tf, tm := cw, cf, cm

	switch g := deref(goal).(type) {
	case TargetWeight:
		tw = mass(g.Weight)
		if cw > 0 {
			tf = tw * (cf / cw)
			tm = tw * (cm / cw)
		}

	case TargetFatMass:
		tf = mass(g.Mass)
		tw = tf + cm + rem

	case TargetFatPct:
		// p at or beyond 1 would divide by zero or go negative.
		if p := finite(g.Pct) / 100; p > 0 && p < 1 {
			tw = (cm + rem) / (1 - p)
			tf = tw * p
		}

	case TargetMuscleMass:
		tm = mass(g.Mass)
		tw = cf + tm + rem

	case TargetMusclePct:
		if p := finite(g.Pct) / 100; p > 0 && p < 1 {
			tw = (cf + rem) / (1 - p)
			tm = tw * p
		}

	case TargetWeightAndFatPct:
		tw = mass(g.Weight)
		tf = tw * fraction(g.Pct)
		tm = math.Max(tw-tf-rem, 0)

	case TargetWeightAndMusclePct:
		tw = mass(g.Weight)
		tm = tw * fraction(g.Pct)
		tf = math.Max(tw-tm-rem, 0)

	case TargetWeightFatMusclePct:
		tw = mass(g.Weight)
		pf, pm := fraction(g.FatPct), fraction(g.MusclePct)
		if sum := pf + pm; sum > 1 {
			tf = tw * (pf / sum)
			tm = tw - tf
		} else {
			tf = tw * pf
			tm = tw * pm
		}

	case SameWeight:
	}

	return NewComposition(tw, tf, tm)
}

// Delta is target minus current for each tracked mass.
type Delta struct {
	Weight float64 `json:"weight"`
	Fat    float64 `json:"fat"`
	Muscle float64 `json:"muscle"`
}

// Projection pairs the current and target compositions.
type Projection struct {
	Goal    GoalSpec    `json:"goal"`
	Current Composition `json:"current"`
	Target  Composition `json:"target"`
	Delta   Delta       `json:"delta"`
}

// Project resolves goal and returns both compositions with their deltas.
func Project(current Measurement, goal Goal) Projection {
	if goal == nil {
		goal = SameWeight{}
	}
	cur := current.Composition()
	tgt := Resolve(current, goal)
	return Projection{
		Goal:    SpecOf(goal),
		Current: cur,
		Target:  tgt,
		Delta: Delta{
			Weight: tgt.Weight - cur.Weight,
			Fat:    tgt.FatMass - cur.FatMass,
			Muscle: tgt.MuscleMass - cur.MuscleMass,
		},
	}
}

// DeltaText renders a delta as "+1.25 lbs", "-0.50 lbs" or "No change".
func DeltaText(delta float64, unit string) string {
	delta = finite(delta)
	if math.Abs(delta) < NoChangeThreshold {
		return "No change"
	}
	sign := "+"
	if delta < 0 {
		sign = "-"
	}
	s := fmt.Sprintf("%s%.2f", sign, math.Abs(delta))
	if unit != "" {
		s += " " + unit
	}
	return s
}

// QuickSummary describes the projection in one line, e.g.
// "5.0 lbs lighter • 6.0 lbs less fat".
func (p Projection) QuickSummary(unit string) string {
	var parts []string
	add := func(d float64, less, more string) {
		if math.Abs(d) < summaryThreshold {
			return
		}
		word := more
		if d < 0 {
			word = less
		}
		parts = append(parts, fmt.Sprintf("%.1f %s %s", math.Abs(d), unit, word))
	}
	add(p.Delta.Weight, "lighter", "heavier")
	add(p.Delta.Fat, "less fat", "more fat")
	add(p.Delta.Muscle, "less muscle", "more muscle")

	if len(parts) == 0 {
		return "No differences."
	}
	return strings.Join(parts, " • ")
}

func remainder(weight, fat, muscle float64) float64 {
	return math.Max(weight-fat-muscle, 0)
}

// finite maps NaN and ±Inf to 0.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

func mass(x float64) float64 {
	return math.Max(finite(x), 0)
}

// fraction converts a percentage to a fraction clamped to [0, 1].
func fraction(pct float64) float64 {
	return math.Min(math.Max(finite(pct), 0), 100) / 100
}
