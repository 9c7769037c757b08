package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Tebak Kabupaten API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Indonesian regency map quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/provinces
	listProvinces, _ := r.NewOperationContext(http.MethodGet, "/api/provinces")
	listProvinces.SetSummary("List provinces")
	listProvinces.SetDescription("Returns all playable provinces and whether each has saved history.")
	listProvinces.AddRespStructure([]ProvinceItem{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listProvinces)

	// GET /api/provinces/{province}/history
	getHistory, _ := r.NewOperationContext(http.MethodGet, "/api/provinces/{province}/history")
	getHistory.SetSummary("Province history")
	getHistory.SetDescription("Returns up to the five most recent games played in the province, newest first.")
	getHistory.AddRespStructure(ProvinceHistoryResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHistory.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getHistory)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Fetches the province's region set and creates an idle quiz session over it.")
	createSession.AddReqStructure(CreateSessionRequest{})
	createSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(createSession)

	// GET /api/sessions/{id}
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	getSession.SetSummary("Get session")
	getSession.SetDescription("Returns the full play state of a session.")
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// POST /api/sessions/{id}/begin
	beginSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/begin")
	beginSession.SetSummary("Begin session")
	beginSession.SetDescription("Shuffles the areas and starts play. Restarts a finished session from scratch.")
	beginSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	beginSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	beginSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(beginSession)

	// POST /api/sessions/{id}/click
	clickSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/click")
	clickSession.SetSummary("Submit click")
	clickSession.SetDescription("Submits an area click. Clicks on finished sessions or answered areas are ignored, not errors.")
	clickSession.AddReqStructure(ClickRequest{})
	clickSession.AddRespStructure(ClickResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clickSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	clickSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(clickSession)

	// GET /api/sessions/{id}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	getEvents.SetSummary("SSE verdict stream")
	getEvents.SetDescription("Server-Sent Events stream of per-area verdicts and prompts for a session or campaign.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/survival
	createCampaign, _ := r.NewOperationContext(http.MethodPost, "/api/survival")
	createCampaign.SetSummary("Start survival campaign")
	createCampaign.SetDescription("Shuffles all provinces into a new survival run and starts the first sub-session.")
	createCampaign.AddRespStructure(CampaignResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(createCampaign)

	// GET /api/survival/{id}
	getCampaign, _ := r.NewOperationContext(http.MethodGet, "/api/survival/{id}")
	getCampaign.SetSummary("Get campaign")
	getCampaign.SetDescription("Returns the campaign state, current sub-session, and accumulated results.")
	getCampaign.AddRespStructure(CampaignResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getCampaign)

	// POST /api/survival/{id}/click
	clickCampaign, _ := r.NewOperationContext(http.MethodPost, "/api/survival/{id}/click")
	clickCampaign.SetSummary("Submit campaign click")
	clickCampaign.SetDescription("Submits an area click against the running sub-session. A miss ends the whole campaign.")
	clickCampaign.AddReqStructure(ClickRequest{})
	clickCampaign.AddRespStructure(CampaignResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	clickCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	clickCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(clickCampaign)

	// POST /api/survival/{id}/advance
	advanceCampaign, _ := r.NewOperationContext(http.MethodPost, "/api/survival/{id}/advance")
	advanceCampaign.SetSummary("Advance campaign")
	advanceCampaign.SetDescription("Moves a campaign past a completed province and begins the next sub-session.")
	advanceCampaign.AddRespStructure(CampaignResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	advanceCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	advanceCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	advanceCampaign.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(advanceCampaign)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
