package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repshape/internal/logbook"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	book   *logbook.Logbook
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(book *logbook.Logbook, log *slog.Logger) *Server {
	s := &Server{
		book:   book,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Recover(s.log))
	s.router.Use(CORS)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/composition/resolve", s.handleResolve)
		r.Get("/scenarios", s.handleListScenarios)
		r.Post("/scenarios", s.handleSaveScenario)
		r.Get("/scenarios/{id}/projection", s.handleScenarioProjection)
		r.Delete("/scenarios/{id}", s.handleDeleteScenario)

		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Patch("/workouts/{id}", s.handleRenameWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)

		r.Get("/records", s.handleRecords)
		r.Get("/analytics/weekly", s.handleWeekly)
		r.Get("/analytics/frequency", s.handleFrequency)
		r.Get("/analytics/exercises", s.handleExerciseNames)

		r.Get("/export.csv", s.handleExport)
		r.Post("/import", s.handleImportCSV)
		r.Post("/import/alpha", s.handleImportAlpha)

		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates", s.handleSaveTemplate)
		r.Post("/templates/import", s.handleImportTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)
		r.Get("/templates/{id}/exercises", s.handleTemplateExercises)
		r.Get("/templates/{id}/export.csv", s.handleExportTemplate)

		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handleUpdateSettings)
	})
}
