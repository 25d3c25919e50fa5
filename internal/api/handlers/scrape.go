package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/sitechat/internal/api"
	"github.com/cloo-solutions/sitechat/internal/domain"
	"github.com/cloo-solutions/sitechat/internal/service"
	"github.com/go-chi/chi/v5"
)

// IngestService starts ingestion runs and reports session status.
type IngestService interface {
	Start(seedURL string) (domain.Session, error)
	Status(sessionID string) service.StatusOutput
}

type ScrapeHandler struct {
	svc IngestService
}

func NewScrapeHandler(svc IngestService) *ScrapeHandler {
	return &ScrapeHandler{svc: svc}
}

type ScrapeRequest struct {
	URL string `json:"url"`
}

type ScrapeResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type PageSummaryResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type StatusResponse struct {
	Status    string                `json:"status"`
	Documents int                   `json:"documents,omitempty"`
	Chunks    int                   `json:"chunks,omitempty"`
	Pages     []PageSummaryResponse `json:"pages,omitempty"`
}

// Create starts a background ingestion run for the requested site and
// returns the session identifier immediately.
func (h *ScrapeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.svc.Start(req.URL)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusAccepted, ScrapeResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
	})
}

// Status reports the lifecycle state of a session. A failed or expired
// session is indistinguishable from an unknown identifier: both report
// not_found.
func (h *ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		api.Error(w, http.StatusBadRequest, "session id is required")
		return
	}

	out := h.svc.Status(sessionID)

	resp := StatusResponse{
		Status:    out.Status,
		Documents: out.Documents,
		Chunks:    out.Chunks,
	}
	for _, p := range out.Pages {
		resp.Pages = append(resp.Pages, PageSummaryResponse{Title: p.Title, URL: p.URL})
	}

	api.Success(w, http.StatusOK, resp)
}
