package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tebakkabupaten/mapquiz/internal/geodata"
	"github.com/tebakkabupaten/mapquiz/internal/quiz"
	"github.com/tebakkabupaten/mapquiz/internal/stopwatch"
)

type CampaignSessionView struct {
	Province string                  `json:"province"`
	State    quiz.State              `json:"state"`
	Prompt   string                  `json:"prompt,omitempty"`
	Areas    []string                `json:"areas"`
	Verdicts map[string]quiz.Verdict `json:"verdicts"`
	Answered int                     `json:"answered"`
	Total    int                     `json:"total"`
}

type CampaignProvinceResult struct {
	TimeSeconds int                     `json:"time"`
	TimeDisplay string                  `json:"timeDisplay"`
	Verdicts    map[string]quiz.Verdict `json:"verdicts"`
}

type CampaignResponse struct {
	ID              string                            `json:"id"`
	State           quiz.CampaignState                `json:"state"`
	CurrentProvince string                            `json:"currentProvince,omitempty"`
	ProvinceCount   int                               `json:"provinceCount"`
	Completed       int                               `json:"completed"`
	ElapsedSeconds  int                               `json:"elapsedSeconds"`
	ElapsedDisplay  string                            `json:"elapsedDisplay"`
	Session         *CampaignSessionView              `json:"session,omitempty"`
	Results         map[string]CampaignProvinceResult `json:"results"`
}

func campaignResponse(c *LiveCampaign) CampaignResponse {
	resp := CampaignResponse{
		ID:              c.ID,
		State:           c.Campaign.State(),
		CurrentProvince: c.Campaign.CurrentProvince(),
		ProvinceCount:   len(c.Campaign.Order()),
		Completed:       c.Campaign.Completed(),
		ElapsedSeconds:  c.Watch.Elapsed(),
		ElapsedDisplay:  stopwatch.Format(c.Watch.Elapsed()),
		Results:         make(map[string]CampaignProvinceResult),
	}

	if s := c.Campaign.Session(); s != nil {
		resp.Session = &CampaignSessionView{
			Province: resp.CurrentProvince,
			State:    s.State(),
			Prompt:   s.Prompt(),
			Areas:    s.Areas(),
			Verdicts: s.Verdicts(),
			Answered: s.Answered(),
			Total:    s.Total(),
		}
	}

	for province, r := range c.Campaign.Results() {
		resp.Results[province] = CampaignProvinceResult{
			TimeSeconds: r.TimeSeconds,
			TimeDisplay: stopwatch.Format(r.TimeSeconds),
			Verdicts:    r.Verdicts,
		}
	}
	return resp
}

// handleCreateCampaign shuffles all provinces into a fresh survival run and
// starts its first sub-session.
func handleCreateCampaign(logger *slog.Logger, games *Registry, provider geodata.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign := quiz.NewCampaign(geodata.Provinces())

		first := campaign.CurrentProvince()
		areas, err := provider.AreaNames(r.Context(), first)
		if err != nil {
			logger.Error("region set fetch failed", "province", first, "error", err)
			writeError(w, http.StatusBadGateway, "failed to load province data")
			return
		}

		c := games.AddCampaign(campaign)
		c.BeginProvince(areas)
		writeJSON(w, http.StatusCreated, campaignResponse(c))
	}
}

func handleCampaignState(games *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := games.Campaign(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "campaign not found")
			return
		}
		writeJSON(w, http.StatusOK, campaignResponse(c))
	}
}

func handleCampaignClick(games *Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := games.Campaign(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "campaign not found")
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

		res := c.Click(req.Area)
		if res.Accepted {
			state, prompt := quiz.StateInProgress, ""
			if s := c.Campaign.Session(); s != nil {
				state, prompt = s.State(), s.Prompt()
			}
			publishClick(broker, c.ID, res.Changed, state, prompt)
			if c.Campaign.State() == quiz.CampaignGameOver {
				broker.Publish(c.ID, SSEEvent{Type: "campaign_over"})
			}
		}

		if res.Changed == nil {
			res.Changed = map[string]quiz.Verdict{}
		}
		writeJSON(w, http.StatusOK, struct {
			Accepted bool                    `json:"accepted"`
			Correct  bool                    `json:"correct"`
			Verdicts map[string]quiz.Verdict `json:"verdicts"`
			Campaign CampaignResponse        `json:"campaign"`
		}{res.Accepted, res.Correct, res.Changed, campaignResponse(c)})
	}
}

// handleCampaignAdvance moves a campaign past a completed province: it
// advances the cursor, fetches the next province's region set, and begins
// the next sub-session. If the fetch fails the cursor stays advanced and a
// retry of this endpoint refetches the same province.
func handleCampaignAdvance(logger *slog.Logger, games *Registry, provider geodata.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := games.Campaign(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "campaign not found")
			return
		}

		if c.Campaign.State().Terminal() {
			writeError(w, http.StatusConflict, "campaign already finished")
			return
		}

		// A nil sub-session means a previous advance fetched nothing; pick
		// up from the current cursor. Otherwise the current sub-session must
		// be complete before moving on.
		next := c.Campaign.CurrentProvince()
		if s := c.Campaign.Session(); s != nil {
			if s.State() != quiz.StateComplete {
				writeError(w, http.StatusConflict, "current province not finished")
				return
			}
			var ok bool
			next, ok = c.Advance()
			if !ok {
				// Order exhausted: campaign cleared.
				writeJSON(w, http.StatusOK, campaignResponse(c))
				return
			}
		}

		areas, err := provider.AreaNames(r.Context(), next)
		if err != nil {
			logger.Error("region set fetch failed", "province", next, "error", err)
			writeError(w, http.StatusBadGateway, "failed to load province data")
			return
		}

		c.BeginProvince(areas)
		writeJSON(w, http.StatusOK, campaignResponse(c))
	}
}
