package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/sitechat/internal/api"
	"github.com/cloo-solutions/sitechat/internal/service"
)

// ChatService answers questions grounded in a knowledge base.
type ChatService interface {
	Answer(ctx context.Context, message, sessionID string) (*service.AnswerOutput, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type SourceResponse struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

type ChatResponse struct {
	Reply   string           `json:"reply"`
	Sources []SourceResponse `json:"sources"`
}

// Create generates a grounded reply to the user's message, citing the
// retrieved sources.
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	out, err := h.svc.Answer(r.Context(), req.Message, req.SessionID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := ChatResponse{
		Reply:   out.Reply,
		Sources: make([]SourceResponse, 0, len(out.Sources)),
	}
	for _, s := range out.Sources {
		resp.Sources = append(resp.Sources, SourceResponse{
			ID:    s.ID,
			Title: s.Title,
			URL:   s.URL,
			Score: s.Score,
		})
	}

	api.Success(w, http.StatusOK, resp)
}
