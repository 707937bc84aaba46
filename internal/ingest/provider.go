// Package ingest holds the shared result type for workout imports.
package ingest

import (
	"context"
	"io"

	"github.com/claude/repshape/internal/models"
)

// Parser turns an export file into workouts.
type Parser interface {
	Parse(r io.Reader) ([]models.Workout, error)
}

// Sink stores parsed workouts. The logbook implements it.
type Sink interface {
	ImportWorkouts(ctx context.Context, workouts []models.Workout) (*Result, error)
}

// Result holds the outcome of an import.
type Result struct {
	WorkoutsReceived int `json:"workouts_received"`
	WorkoutsInserted int `json:"workouts_inserted"`
	WorkoutsSkipped  int `json:"workouts_skipped"`

	ExercisesReceived int `json:"exercises_received"`
	SetsReceived      int `json:"sets_received"`

	SkippedIDs []string `json:"skipped_ids,omitempty"`

	Message string `json:"message,omitempty"`
}

// Ingest parses r with p and hands the workouts to sink.
func Ingest(ctx context.Context, p Parser, sink Sink, r io.Reader) (*Result, error) {
	workouts, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return sink.ImportWorkouts(ctx, workouts)
}
