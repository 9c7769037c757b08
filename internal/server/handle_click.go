package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tebakkabupaten/mapquiz/internal/history"
	"github.com/tebakkabupaten/mapquiz/internal/quiz"
)

type ClickRequest struct {
	Area string `json:"area"`
}

type ClickResponse struct {
	// Accepted is false for clicks the core silently ignored (terminal
	// session, already-answered area, unknown name).
	Accepted bool `json:"accepted"`
	Correct  bool `json:"correct"`
	// Verdicts holds only the verdicts this click added.
	Verdicts       map[string]quiz.Verdict `json:"verdicts"`
	PenaltySeconds int                     `json:"penaltySeconds,omitempty"`
	Session        SessionResponse         `json:"session"`
}

func handleSessionClick(logger *slog.Logger, games *Registry, broker *Broker, hist *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := games.Session(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		var req ClickRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Area = strings.TrimSpace(req.Area)
		if req.Area == "" {
			writeError(w, http.StatusBadRequest, "area is required")
			return
		}

		res := s.Click(req.Area)
		if res.Accepted {
			publishClick(broker, s.ID, res.Changed, s.Quiz.State(), s.Quiz.Prompt())
		}

		if res.Done && s.markSaved() {
			err := hist.Save(r.Context(), s.Province, s.Quiz.Mode(), s.Quiz.Verdicts(), s.Watch.Elapsed())
			if err != nil {
				// History is best-effort; the finished game is still
				// reported to the player.
				logger.Error("saving game history", "province", s.Province, "error", err)
			}
		}

		if res.Changed == nil {
			res.Changed = map[string]quiz.Verdict{}
		}
		writeJSON(w, http.StatusOK, ClickResponse{
			Accepted:       res.Accepted,
			Correct:        res.Correct,
			Verdicts:       res.Changed,
			PenaltySeconds: res.PenaltySeconds,
			Session:        sessionResponse(s),
		})
	}
}
