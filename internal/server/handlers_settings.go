package server

import (
	"net/http"

	"github.com/claude/repshape/internal/logbook"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch logbook.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	settings, err := s.book.UpdateSettings(r.Context(), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
