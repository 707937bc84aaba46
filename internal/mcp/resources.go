package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/repshape/internal/training"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.Workouts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recent := inRange(workouts, now.AddDate(0, 0, -14).Format("2006-01-02"), now.Format("2006-01-02"))
	training.Sort(recent, training.OrderDateDesc)
	return jsonContents(req.Params.URI, recent)
}

func (h *handlers) settings(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	settings, err := h.ds.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, settings)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
