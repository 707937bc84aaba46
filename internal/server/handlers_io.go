package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repshape/internal/ingest"
	"github.com/claude/repshape/internal/ingest/alpha"
	"github.com/claude/repshape/internal/ingest/csvio"
	"github.com/claude/repshape/internal/models"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := csvio.ExportWorkouts(&buf, s.book.Workouts()); err != nil {
		s.writeError(w, err)
		return
	}
	writeCSV(w, fmt.Sprintf("workouts-%s.csv", time.Now().Format("2006-01-02")), buf.Bytes())
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	s.importWith(w, r, "csv", csvio.Parser{})
}

func (s *Server) handleImportAlpha(w http.ResponseWriter, r *http.Request) {
	s.importWith(w, r, "alpha", alpha.Parser{})
}

func (s *Server) importWith(w http.ResponseWriter, r *http.Request, source string, p ingest.Parser) {
	start := time.Now()
	workouts, err := p.Parse(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.log.Warn("import rejected", "source", source, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := s.book.ImportWorkouts(r.Context(), workouts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("import complete",
		"source", source,
		"inserted", result.WorkoutsInserted,
		"skipped", result.WorkoutsSkipped,
		"duration", time.Since(start).String(),
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.book.Templates()))
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string            `json:"name"`
		Description string            `json:"description"`
		Exercises   []models.Exercise `json:"exercises"`
		// From copies exercises from "template:<id>" or "workout:<id>"
		// instead of Exercises.
		From string `json:"from"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	exercises := body.Exercises
	if body.From != "" {
		var err error
		if exercises, err = s.book.TemplateExercises(body.From); err != nil {
			s.writeError(w, err)
			return
		}
	}
	tpl, err := s.book.SaveTemplate(r.Context(), body.Name, body.Description, exercises)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	exercises, err := csvio.ImportTemplate(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	q := r.URL.Query()
	tpl, err := s.book.SaveTemplate(r.Context(), q.Get("name"), q.Get("description"), exercises)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTemplateExercises takes a selection such as "template:t_1" or
// "workout:w_1" in place of the id.
func (s *Server) handleTemplateExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.book.TemplateExercises(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleExportTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.book.Template(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := csvio.ExportTemplate(&buf, tpl); err != nil {
		s.writeError(w, err)
		return
	}
	writeCSV(w, fmt.Sprintf("template-%s.csv", tpl.ID), buf.Bytes())
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
