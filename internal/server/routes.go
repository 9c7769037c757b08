package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	games := NewRegistry()
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Tebak Kabupaten API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB, deps.Redis))

	r.Route("/api", func(r chi.Router) {
		r.Get("/provinces", handleListProvinces(deps.History))
		r.Get("/provinces/{province}/history", handleProvinceHistory(deps.History))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handleCreateSession(logger, games, deps.Provider))
			r.Get("/{id}", handleSessionState(games))
			r.Post("/{id}/begin", handleSessionBegin(games, broker))
			r.Post("/{id}/click", handleSessionClick(logger, games, broker, deps.History))
			r.Get("/{id}/events", handleEvents(games, broker))
		})

		r.Route("/survival", func(r chi.Router) {
			r.Post("/", handleCreateCampaign(logger, games, deps.Provider))
			r.Get("/{id}", handleCampaignState(games))
			r.Post("/{id}/click", handleCampaignClick(games, broker))
			r.Post("/{id}/advance", handleCampaignAdvance(logger, games, deps.Provider))
		})
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
