package server

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/logbook"
)

// projectionResponse adds display text to a projection.
type projectionResponse struct {
	composition.Projection
	Unit      string            `json:"unit"`
	Summary   string            `json:"summary"`
	DeltaText map[string]string `json:"delta_text"`
	Helper    string            `json:"helper"`
}

func (s *Server) projection(p composition.Projection, unit string) projectionResponse {
	if unit == "" {
		unit = s.book.Settings().Units
	}
	return projectionResponse{
		Projection: p,
		Unit:       unit,
		Summary:    p.QuickSummary(unit),
		DeltaText: map[string]string{
			"weight": composition.DeltaText(p.Delta.Weight, unit),
			"fat":    composition.DeltaText(p.Delta.Fat, unit),
			"muscle": composition.DeltaText(p.Delta.Muscle, unit),
		},
		Helper: composition.Helper(p.Goal.Type),
	}
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		composition.Inputs
		Unit string `json:"unit"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	p := composition.Project(body.Current, body.Goal.Goal())
	writeJSON(w, http.StatusOK, s.projection(p, body.Unit))
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.book.Scenarios()))
}

func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
		composition.Inputs
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	scenario, err := s.book.SaveScenario(r.Context(), body.Name, body.Inputs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scenario)
}

func (s *Server) handleScenarioProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scenarios := s.book.Scenarios()
	i := slices.IndexFunc(scenarios, func(sc composition.Scenario) bool { return sc.ID == id })
	if i < 0 {
		s.writeError(w, logbook.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.projection(scenarios[i].Project(), r.URL.Query().Get("unit")))
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteScenario(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
