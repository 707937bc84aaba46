package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepShape", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepShape training log and body-composition planner. Query logged workouts, personal records and weekly trends, or project a target body composition from a current measurement."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolResolveComposition, Handler: h.resolveComposition},
		server.ServerTool{Tool: toolListScenarios, Handler: h.listScenarios},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetWeeklySeries, Handler: h.getWeeklySeries},
		server.ServerTool{Tool: toolGetWorkoutFrequency, Handler: h.getWorkoutFrequency},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resSettings, Handler: h.settings},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"repshape://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts dated within the last 14 days, newest first"),
	mcp.WithMIMEType("application/json"),
)

var resSettings = mcp.NewResource(
	"repshape://settings",
	"Settings",
	mcp.WithResourceDescription("Weight unit, default rest time and theme"),
	mcp.WithMIMEType("application/json"),
)
