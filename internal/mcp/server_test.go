package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/models"
	"github.com/claude/repshape/internal/training"
)

type fakeSource struct {
	workouts  []models.Workout
	settings  models.Settings
	scenarios []composition.Scenario
	err       error
}

func (f *fakeSource) Workouts(context.Context) ([]models.Workout, error) { return f.workouts, f.err }
func (f *fakeSource) Settings(context.Context) (models.Settings, error)  { return f.settings, f.err }
func (f *fakeSource) Scenarios(context.Context) ([]composition.Scenario, error) {
	return f.scenarios, f.err
}

func newTestHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want TextContent", res.Content[0])
	}
	return text.Text
}

func sampleLog() []models.Workout {
	today := time.Now().Format("2006-01-02")
	return []models.Workout{
		{
			ID: "w_1", Date: today, Name: "Legs",
			Exercises: []models.Exercise{{Name: "Squat", Sets: []models.Set{{Reps: 5, Weight: 100}, {Reps: 5, Weight: 110}}}},
			Summary:   models.Summary{TotalSets: 2, TotalReps: 10, TotalVolume: 1050},
		},
		{
			ID: "w_2", Date: "2020-01-06", Name: "Old bench",
			Exercises: []models.Exercise{{Name: "Bench", Sets: []models.Set{{Reps: 8, Weight: 60}}}},
			Summary:   models.Summary{TotalSets: 1, TotalReps: 8, TotalVolume: 480},
		},
	}
}

// TestNewRegistersTools verifies the server builds with every tool and resource.
func TestNewRegistersTools(t *testing.T) {
	s := New(&fakeSource{}, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s == nil {
		t.Fatal("New returned nil")
	}
}

// TestDateRange verifies the default 7-day window and explicit dates.
func TestDateRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	start, end, err := dateRange("", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "2024-03-03" || end != "2024-03-10" {
		t.Errorf("default range = %s..%s, want 2024-03-03..2024-03-10", start, end)
	}

	start, end, err = dateRange("2024-01-01", "2024-01-31", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "2024-01-01" || end != "2024-01-31" {
		t.Errorf("range = %s..%s", start, end)
	}

	if _, _, err := dateRange("not-a-date", "", now); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestResolveComposition verifies the projection and the unit default.
func TestResolveComposition(t *testing.T) {
	h := newTestHandlers(&fakeSource{settings: models.Settings{Units: "kg"}})
	res, err := h.resolveComposition(context.Background(), callTool(map[string]any{
		"weight":      100.0,
		"fat_mass":    25.0,
		"muscle_mass": 40.0,
		"goal":        composition.KindTargetFatMass,
		"value":       20.0,
	}))
	if err != nil {
		t.Fatalf("resolveComposition: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var out struct {
		Target  composition.Composition `json:"target"`
		Unit    string                  `json:"unit"`
		Summary string                  `json:"summary"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Target.Weight != 95 || out.Target.FatMass != 20 {
		t.Errorf("target = %+v, want weight 95 fat 20", out.Target)
	}
	if out.Unit != "kg" {
		t.Errorf("unit = %q, want kg", out.Unit)
	}
	if out.Summary == "" {
		t.Error("summary is empty")
	}
}

// TestResolveCompositionRequiresGoal verifies missing arguments become tool errors.
func TestResolveCompositionRequiresGoal(t *testing.T) {
	h := newTestHandlers(&fakeSource{})
	res, err := h.resolveComposition(context.Background(), callTool(map[string]any{"weight": 80.0}))
	if err != nil {
		t.Fatalf("resolveComposition: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for missing goal")
	}
}

// TestGetWorkouts verifies the date window and name filter.
func TestGetWorkouts(t *testing.T) {
	h := newTestHandlers(&fakeSource{workouts: sampleLog()})

	res, err := h.getWorkouts(context.Background(), callTool(map[string]any{"query": "squat"}))
	if err != nil {
		t.Fatalf("getWorkouts: %v", err)
	}
	var got []models.Workout
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w_1" {
		t.Errorf("workouts = %+v, want only w_1", got)
	}

	res, _ = h.getWorkouts(context.Background(), callTool(map[string]any{"start": "2020-01-01", "end": "2020-01-31"}))
	got = nil
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w_2" {
		t.Errorf("workouts = %+v, want only w_2", got)
	}
}

// TestGetPersonalRecords verifies the heaviest set per exercise.
func TestGetPersonalRecords(t *testing.T) {
	h := newTestHandlers(&fakeSource{workouts: sampleLog()})
	res, err := h.getPersonalRecords(context.Background(), callTool(nil))
	if err != nil {
		t.Fatalf("getPersonalRecords: %v", err)
	}
	var got []training.PersonalRecord
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Weight != 110 {
		t.Errorf("records = %+v, want squat 110 first", got)
	}
}

// TestGetWeeklySeries verifies volume per ISO week, oldest first.
func TestGetWeeklySeries(t *testing.T) {
	h := newTestHandlers(&fakeSource{workouts: sampleLog()})
	res, err := h.getWeeklySeries(context.Background(), callTool(map[string]any{"metric": "volume"}))
	if err != nil {
		t.Fatalf("getWeeklySeries: %v", err)
	}
	var out struct {
		Buckets []training.WeeklyBucket `json:"buckets"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Buckets) != 2 {
		t.Fatalf("buckets = %d, want 2", len(out.Buckets))
	}
	if out.Buckets[0].Week != "2020-W02" || out.Buckets[0].Value != 480 {
		t.Errorf("first bucket = %+v, want 2020-W02 480", out.Buckets[0])
	}
}

// TestListExercises verifies distinct names in first-seen order.
func TestListExercises(t *testing.T) {
	h := newTestHandlers(&fakeSource{workouts: sampleLog()})
	res, err := h.listExercises(context.Background(), callTool(nil))
	if err != nil {
		t.Fatalf("listExercises: %v", err)
	}
	var got []string
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != "Squat" || got[1] != "Bench" {
		t.Errorf("exercises = %v, want [Squat Bench]", got)
	}
}

// TestListScenarios verifies each scenario carries its projection.
func TestListScenarios(t *testing.T) {
	sc := composition.Scenario{
		ID:   "s_1",
		Name: "Cut",
		Inputs: composition.Inputs{
			Current: composition.Measurement{Weight: 80, FatMass: 16, MuscleMass: 36},
			Goal:    composition.GoalSpec{Type: composition.KindTargetWeight, Value: 76},
		},
	}
	h := newTestHandlers(&fakeSource{scenarios: []composition.Scenario{sc}})
	res, err := h.listScenarios(context.Background(), callTool(nil))
	if err != nil {
		t.Fatalf("listScenarios: %v", err)
	}
	var got []struct {
		ID         string                 `json:"id"`
		Projection composition.Projection `json:"projection"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s_1" || got[0].Projection.Target.Weight != 76 {
		t.Errorf("scenarios = %+v", got)
	}
}

// TestToolSourceError verifies data-layer failures become tool errors.
func TestToolSourceError(t *testing.T) {
	h := newTestHandlers(&fakeSource{err: errors.New("boom")})
	res, err := h.getWorkoutFrequency(context.Background(), callTool(nil))
	if err != nil {
		t.Fatalf("getWorkoutFrequency: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestRecentWorkoutsResource verifies only the last 14 days are listed.
func TestRecentWorkoutsResource(t *testing.T) {
	h := newTestHandlers(&fakeSource{workouts: sampleLog()})
	var req mcp.ReadResourceRequest
	req.Params.URI = "repshape://recent_workouts"

	contents, err := h.recentWorkouts(context.Background(), req)
	if err != nil {
		t.Fatalf("recentWorkouts: %v", err)
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents = %T", contents[0])
	}
	var got []models.Workout
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "w_1" {
		t.Errorf("recent = %+v, want only w_1", got)
	}
}
