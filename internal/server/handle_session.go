package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tebakkabupaten/mapquiz/internal/geodata"
	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/stopwatch"
)

type CreateSessionRequest struct {
	Province string `json:"province"`
	Mode     string `json:"mode"`
}

type SessionResponse struct {
	ID       string                  `json:"id"`
	Province string                  `json:"province"`
	Mode     quiz.Mode               `json:"mode"`
	State    quiz.State              `json:"state"`
	Prompt   string                  `json:"prompt,omitempty"`
	Areas    []string                `json:"areas"`
	Verdicts map[string]quiz.Verdict `json:"verdicts"`
	Answered int                     `json:"answered"`
	Total    int                     `json:"total"`
	// Elapsed fields are present for timed modes only.
	ElapsedSeconds *int   `json:"elapsedSeconds,omitempty"`
	ElapsedDisplay string `json:"elapsedDisplay,omitempty"`
}

func sessionResponse(s *LiveSession) SessionResponse {
	resp := SessionResponse{
		ID:       s.ID,
		Province: s.Province,
		Mode:     s.Quiz.Mode(),
		State:    s.Quiz.State(),
		Prompt:   s.Quiz.Prompt(),
		Areas:    s.Quiz.Areas(),
		Verdicts: s.Quiz.Verdicts(),
		Answered: s.Quiz.Answered(),
		Total:    s.Quiz.Total(),
	}
	if s.Quiz.Mode().Timed() {
		elapsed := s.Watch.Elapsed()
		resp.ElapsedSeconds = &elapsed
		resp.ElapsedDisplay = stopwatch.Format(elapsed)
	}
	return resp
}

// handleCreateSession fetches the province's region set and registers a new
// idle session over it. The frontend shows its loading state for the
// duration of this request and a fetch failure maps to 502 so the user can
// retry.
func handleCreateSession(logger *slog.Logger, games *Registry, provider geodata.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !geodata.KnownProvince(req.Province) {
			writeError(w, http.StatusNotFound, "unknown province")
			return
		}
		mode, err := quiz.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid game mode")
			return
		}

		areas, err := provider.AreaNames(r.Context(), req.Province)
		if err != nil {
			logger.Error("region set fetch failed", "province", req.Province, "error", err)
			writeError(w, http.StatusBadGateway, "failed to load province data")
			return
		}

		s := games.AddSession(req.Province, quiz.NewSession(areas, mode))
		writeJSON(w, http.StatusCreated, sessionResponse(s))
	}
}

func handleSessionState(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := games.Session(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(s))
	}
}

// handleSessionBegin shuffles the pool and starts play. Calling it on a
// finished session restarts the same province and mode from scratch.
func handleSessionBegin(games *Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := games.Session(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		if s.Quiz.State() == quiz.StateInProgress {
			writeError(w, http.StatusConflict, "session already in progress")
			return
		}

		s.Begin()
		broker.Publish(s.ID, SSEEvent{Type: "prompt", Prompt: s.Quiz.Prompt()})
		writeJSON(w, http.StatusOK, sessionResponse(s))
	}
}
