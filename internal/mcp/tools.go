package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/models"
	"github.com/claude/repshape/internal/training"
)

// dateRange returns start/end dates (YYYY-MM-DD), defaulting to the 7 days
// ending today.
func dateRange(startStr, endStr string, now time.Time) (string, string, error) {
	end := now
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return "", "", err
		}
		end = t
	}
	start := end.AddDate(0, 0, -7)
	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return "", "", err
		}
		start = t
	}
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

// inRange keeps workouts dated within [start, end]. Dates compare as strings.
func inRange(workouts []models.Workout, start, end string) []models.Workout {
	var out []models.Workout
	for _, w := range workouts {
		if w.Date >= start && w.Date <= end {
			out = append(out, w)
		}
	}
	return out
}

// --- Tool definitions ---

var toolResolveComposition = mcp.NewTool("resolve_composition",
	mcp.WithDescription("Project a target body composition from a current weight, fat mass and muscle mass. Returns current and target compositions (masses and percentages), deltas, and a one-line summary."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Current body weight")),
	mcp.WithNumber("fat_mass", mcp.Required(), mcp.Description("Current fat mass, same unit as weight")),
	mcp.WithNumber("muscle_mass", mcp.Required(), mcp.Description("Current muscle mass, same unit as weight")),
	mcp.WithString("goal", mcp.Required(), mcp.Description("Goal type"), mcp.Enum(
		composition.KindSameWeight,
		composition.KindTargetWeight,
		composition.KindTargetFatMass,
		composition.KindTargetFatPct,
		composition.KindTargetMuscleMass,
		composition.KindTargetMusclePct,
		composition.KindTargetWeightFatPct,
		composition.KindTargetWeightMusclePct,
		composition.KindTargetWeightFatMusclePct,
	)),
	mcp.WithNumber("value", mcp.Description("First goal value: weight, mass or percentage depending on the goal")),
	mcp.WithNumber("value2", mcp.Description("Second goal value (percentage) for combined goals")),
	mcp.WithNumber("value3", mcp.Description("Muscle percentage for target_weight_fat_muscle_pct")),
	mcp.WithString("unit", mcp.Description("Unit label for the summary. Defaults to the configured unit.")),
)

var toolListScenarios = mcp.NewTool("list_scenarios",
	mcp.WithDescription("List saved what-if scenarios with their projections."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts with exercises, sets and summary totals (sets, reps, volume, duration)."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("query", mcp.Description("Filter by workout or exercise name (partial match, e.g. 'squat')")),
	mcp.WithString("sort", mcp.Description("Sort order. Defaults to date-desc."), mcp.Enum(
		string(training.OrderDateDesc), string(training.OrderDateAsc),
		string(training.OrderVolumeDesc), string(training.OrderVolumeAsc),
	)),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Heaviest set per exercise across the whole log, heaviest first (top 20)."),
)

var toolGetWeeklySeries = mcp.NewTool("get_weekly_series",
	mcp.WithDescription("Total volume (reps x weight) or reps per ISO week, oldest week first."),
	mcp.WithString("metric", mcp.Description("Metric to sum. Defaults to volume."), mcp.Enum(string(training.MetricVolume), string(training.MetricReps))),
	mcp.WithString("exercise", mcp.Description("Exact exercise name (case-insensitive), or 'all'. Defaults to all.")),
)

var toolGetWorkoutFrequency = mcp.NewTool("get_workout_frequency",
	mcp.WithDescription("Number of workouts per ISO week, oldest week first."),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("Distinct exercise names in the log, in first-seen order."),
)

// --- Tool handlers ---

func (h *handlers) resolveComposition(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	goal, err := req.RequireString("goal")
	if err != nil {
		return mcp.NewToolResultError("goal parameter is required"), nil
	}

	current := composition.Measurement{
		Weight:     weight,
		FatMass:    req.GetFloat("fat_mass", 0),
		MuscleMass: req.GetFloat("muscle_mass", 0),
	}
	spec := composition.GoalSpec{
		Type:   goal,
		Value:  req.GetFloat("value", 0),
		Value2: req.GetFloat("value2", 0),
		Value3: req.GetFloat("value3", 0),
	}

	unit := req.GetString("unit", "")
	if unit == "" {
		settings, err := h.ds.Settings(ctx)
		if err != nil {
			h.log.Warn("mcp resolve_composition: settings unavailable", "error", err)
		}
		unit = settings.Units
	}

	p := composition.Project(current, spec.Goal())
	return jsonResult(map[string]any{
		"goal":    p.Goal,
		"current": p.Current,
		"target":  p.Target,
		"delta":   p.Delta,
		"unit":    unit,
		"summary": p.QuickSummary(unit),
	})
}

func (h *handlers) listScenarios(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := h.ds.Scenarios(ctx)
	if err != nil {
		h.log.Error("mcp list_scenarios", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	type entry struct {
		composition.Scenario
		Projection composition.Projection `json:"projection"`
	}
	out := make([]entry, 0, len(scenarios))
	for _, s := range scenarios {
		out = append(out, entry{Scenario: s, Projection: s.Project()})
	}
	return jsonResult(out)
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := dateRange(req.GetString("start", ""), req.GetString("end", ""), time.Now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	out := training.Filter(inRange(workouts, start, end), req.GetString("query", ""))
	training.Sort(out, training.Order(req.GetString("sort", "")))
	return jsonResult(out)
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(training.PersonalRecords(workouts))
}

func (h *handlers) getWeeklySeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_weekly_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	metric := training.ParseMetric(req.GetString("metric", ""))
	exercise := strings.TrimSpace(req.GetString("exercise", training.AllExercises))
	return jsonResult(map[string]any{
		"metric":   metric,
		"exercise": exercise,
		"buckets":  training.WeeklySeries(workouts, metric, exercise),
	})
}

func (h *handlers) getWorkoutFrequency(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workout_frequency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(training.FrequencySeries(workouts))
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(training.ExerciseNames(workouts))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
