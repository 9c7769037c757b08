package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tebakkabupaten/mapquiz/internal/geodata"
	"github.com/tebakkabupaten/mapquiz/internal/history"
)

type ProvinceItem struct {
	Name       string `json:"name"`
	HasHistory bool   `json:"hasHistory"`
}

func handleListProvinces(hist *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := geodata.Provinces()

		withHistory, err := hist.ProvincesWithHistory(r.Context(), names)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		has := make(map[string]bool, len(withHistory))
		for _, p := range withHistory {
			has[p] = true
		}

		items := make([]ProvinceItem, len(names))
		for i, n := range names {
			items[i] = ProvinceItem{Name: n, HasHistory: has[n]}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

type ProvinceHistoryResponse struct {
	Province string         `json:"province"`
	Items    []history.Item `json:"items"`
}

func handleProvinceHistory(hist *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		province := chi.URLParam(r, "province")
		if !geodata.KnownProvince(province) {
			writeError(w, http.StatusNotFound, "unknown province")
			return
		}

		items, err := hist.History(r.Context(), province)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if items == nil {
			items = []history.Item{}
		}
		writeJSON(w, http.StatusOK, ProvinceHistoryResponse{Province: province, Items: items})
	}
}
