package composition

// Goal is a target for the what-if projection. The set of goals is closed:
// only the types in this file implement it, and Resolve switches over all of
// them. Pointers to them also satisfy Goal; Resolve and SpecOf dereference
// those first, and a nil pointer means SameWeight.
type Goal interface {
	Kind() string
	goal()
}

// SameWeight keeps the current composition.
type SameWeight struct{}

// TargetWeight sets total weight; fat and muscle keep their share of it.
type TargetWeight struct {
	Weight float64
}

// TargetFatMass sets fat mass; muscle and remainder mass stay fixed.
type TargetFatMass struct {
	Mass float64
}

// TargetFatPct sets body fat percentage; muscle and remainder mass stay fixed.
type TargetFatPct struct {
	Pct float64
}

// TargetMuscleMass sets muscle mass; fat and remainder mass stay fixed.
type TargetMuscleMass struct {
	Mass float64
}

// TargetMusclePct sets muscle percentage; fat and remainder mass stay fixed.
type TargetMusclePct struct {
	Pct float64
}

// TargetWeightAndFatPct sets weight and fat percentage; muscle absorbs the rest.
type TargetWeightAndFatPct struct {
	Weight float64
	Pct    float64
}

// TargetWeightAndMusclePct sets weight and muscle percentage; fat absorbs the rest.
type TargetWeightAndMusclePct struct {
	Weight float64
	Pct    float64
}

// TargetWeightFatMusclePct sets weight, fat percentage and muscle percentage.
type TargetWeightFatMusclePct struct {
	Weight    float64
	FatPct    float64
	MusclePct float64
}

const (
	KindSameWeight               = "same_weight"
	KindTargetWeight             = "target_weight"
	KindTargetFatMass            = "target_fat_mass"
	KindTargetFatPct             = "target_fat_pct"
	KindTargetMuscleMass         = "target_muscle_mass"
	KindTargetMusclePct          = "target_muscle_pct"
	KindTargetWeightFatPct       = "target_weight_fat_pct"
	KindTargetWeightMusclePct    = "target_weight_muscle_pct"
	KindTargetWeightFatMusclePct = "target_weight_fat_muscle_pct"
)

func (SameWeight) Kind() string               { return KindSameWeight }
func (TargetWeight) Kind() string             { return KindTargetWeight }
func (TargetFatMass) Kind() string            { return KindTargetFatMass }
func (TargetFatPct) Kind() string             { return KindTargetFatPct }
func (TargetMuscleMass) Kind() string         { return KindTargetMuscleMass }
func (TargetMusclePct) Kind() string          { return KindTargetMusclePct }
func (TargetWeightAndFatPct) Kind() string    { return KindTargetWeightFatPct }
func (TargetWeightAndMusclePct) Kind() string { return KindTargetWeightMusclePct }
func (TargetWeightFatMusclePct) Kind() string { return KindTargetWeightFatMusclePct }

func (SameWeight) goal()               {}
func (TargetWeight) goal()             {}
func (TargetFatMass) goal()            {}
func (TargetFatPct) goal()             {}
func (TargetMuscleMass) goal()         {}
func (TargetMusclePct) goal()          {}
func (TargetWeightAndFatPct) goal()    {}
func (TargetWeightAndMusclePct) goal() {}
func (TargetWeightFatMusclePct) goal() {}

// GoalSpec is the flat wire form of a Goal, as submitted by a form or stored
// with a scenario. Value holds the first input, Value2 and Value3 the
// optional second and third.
type GoalSpec struct {
	Type   string  `json:"type"`
	Value  float64 `json:"value,omitempty"`
	Value2 float64 `json:"value2,omitempty"`
	Value3 float64 `json:"value3,omitempty"`
}

// Goal converts s into a Goal. Unknown types resolve to SameWeight.
func (s GoalSpec) Goal() Goal {
	v1, v2, v3 := finite(s.Value), finite(s.Value2), finite(s.Value3)
	switch s.Type {
	case KindTargetWeight:
		return TargetWeight{Weight: v1}
	case KindTargetFatMass:
		return TargetFatMass{Mass: v1}
	case KindTargetFatPct:
		return TargetFatPct{Pct: v1}
	case KindTargetMuscleMass:
		return TargetMuscleMass{Mass: v1}
	case KindTargetMusclePct:
		return TargetMusclePct{Pct: v1}
	case KindTargetWeightFatPct:
		return TargetWeightAndFatPct{Weight: v1, Pct: v2}
	case KindTargetWeightMusclePct:
		return TargetWeightAndMusclePct{Weight: v1, Pct: v2}
	case KindTargetWeightFatMusclePct:
		return TargetWeightFatMusclePct{Weight: v1, FatPct: v2, MusclePct: v3}
	default:
		return SameWeight{}
	}
}

// deref maps a pointer goal to its value. Nil goals become SameWeight.
func deref(g Goal) Goal {
	switch p := g.(type) {
	case nil:
		return SameWeight{}
	case *SameWeight:
		return SameWeight{}
	case *TargetWeight:
		if p != nil {
			return *p
		}
	case *TargetFatMass:
		if p != nil {
			return *p
		}
	case *TargetFatPct:
		if p != nil {
			return *p
		}
	case *TargetMuscleMass:
		if p != nil {
			return *p
		}
	case *TargetMusclePct:
		if p != nil {
			return *p
		}
	case *TargetWeightAndFatPct:
		if p != nil {
			return *p
		}
	case *TargetWeightAndMusclePct:
		if p != nil {
			return *p
		}
	case *TargetWeightFatMusclePct:
		if p != nil {
			return *p
		}
	default:
		return g
	}
	return SameWeight{}
}

// SpecOf returns the wire form of g.
func SpecOf(g Goal) GoalSpec {
	switch g := deref(g).(type) {
	case TargetWeight:
		return GoalSpec{Type: g.Kind(), Value: g.Weight}
	case TargetFatMass:
		return GoalSpec{Type: g.Kind(), Value: g.Mass}
	case TargetFatPct:
		return GoalSpec{Type: g.Kind(), Value: g.Pct}
	case TargetMuscleMass:
		return GoalSpec{Type: g.Kind(), Value: g.Mass}
	case TargetMusclePct:
		return GoalSpec{Type: g.Kind(), Value: g.Pct}
	case TargetWeightAndFatPct:
		return GoalSpec{Type: g.Kind(), Value: g.Weight, Value2: g.Pct}
	case TargetWeightAndMusclePct:
		return GoalSpec{Type: g.Kind(), Value: g.Weight, Value2: g.Pct}
	case TargetWeightFatMusclePct:
		return GoalSpec{Type: g.Kind(), Value: g.Weight, Value2: g.FatPct, Value3: g.MusclePct}
	default:
		return GoalSpec{Type: KindSameWeight}
	}
}

// Helper returns the explanatory text a form shows next to the goal picker.
func Helper(kind string) string {
	switch kind {
	case KindSameWeight:
		return "Using your current composition as the target."
	case KindTargetWeight:
		return "Set a new total weight. Fat & muscle scale proportionally."
	case KindTargetFatMass:
		return "Set a fat mass. Muscle stays the same."
	case KindTargetFatPct:
		return "Set a body fat percentage. Muscle stays the same."
	case KindTargetMuscleMass:
		return "Set a muscle mass. Fat stays the same."
	case KindTargetMusclePct:
		return "Set a muscle percentage. Fat stays the same."
	case KindTargetWeightFatPct:
		return "Enter target weight + target fat percent."
	case KindTargetWeightMusclePct:
		return "Enter target weight + target muscle percent."
	case KindTargetWeightFatMusclePct:
		return "Enter target weight + target fat and muscle percent."
	default:
		return ""
	}
}
