package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/repshape/internal/ingest/csvio"
	"github.com/claude/repshape/internal/logbook"
	"github.com/claude/repshape/internal/training"
)

// maxBodyBytes bounds request bodies, including CSV uploads.
const maxBodyBytes = 10 << 20

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	workouts := training.Filter(s.book.Workouts(), q.Get("q"))
	training.Sort(workouts, training.Order(q.Get("sort")))
	writeJSON(w, http.StatusOK, nonNil(workouts))
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var form logbook.WorkoutForm
	if !decodeJSON(w, r, &form) {
		return
	}
	workout, err := s.book.CreateWorkout(r.Context(), form)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.book.Workout(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleRenameWorkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	workout, err := s.book.RenameWorkout(r.Context(), chi.URLParam(r, "id"), body.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.book.DeleteWorkout(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(training.PersonalRecords(s.book.Workouts())))
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	metric := training.ParseMetric(r.URL.Query().Get("metric"))
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		exercise = training.AllExercises
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metric":   metric,
		"label":    metric.Label(),
		"exercise": exercise,
		"buckets":  nonNil(training.WeeklySeries(s.book.Workouts(), metric, exercise)),
	})
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(training.FrequencySeries(s.book.Workouts())))
}

func (s *Server) handleExerciseNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(training.ExerciseNames(s.book.Workouts())))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps logbook and codec errors to status codes. Anything
// unexpected is logged and reported as 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, logbook.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, logbook.ErrEmptyWorkout),
		errors.Is(err, logbook.ErrInvalidSettings),
		errors.Is(err, csvio.ErrMissingExercises):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
