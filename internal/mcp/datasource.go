package mcp

import (
	"context"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/logbook"
	"github.com/claude/repshape/internal/models"
)

// DataSource abstracts the data layer for MCP tools. Both LocalSource (an
// open logbook) and HTTPClient (a running repshape server) satisfy it.
type DataSource interface {
	Workouts(ctx context.Context) ([]models.Workout, error)
	Settings(ctx context.Context) (models.Settings, error)
	Scenarios(ctx context.Context) ([]composition.Scenario, error)
}

// LocalSource reads straight from a logbook.
type LocalSource struct {
	Book *logbook.Logbook
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = LocalSource{}

func (s LocalSource) Workouts(context.Context) ([]models.Workout, error) {
	return s.Book.Workouts(), nil
}

func (s LocalSource) Settings(context.Context) (models.Settings, error) {
	return s.Book.Settings(), nil
}

func (s LocalSource) Scenarios(context.Context) ([]composition.Scenario, error) {
	return s.Book.Scenarios(), nil
}
