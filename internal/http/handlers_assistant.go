package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"finanza/internal/assistant"
)

type assistantRequest struct {
	Message     string `json:"message,omitempty"`
	Query       string `json:"query,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Context     string `json:"context,omitempty"`
	Language    string `json:"language,omitempty"`
	Currency    string `json:"currency,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

func (s *Server) decodeAssistantRequest(w http.ResponseWriter, r *http.Request) (assistantRequest, bool) {
	if s.assistant == nil {
		respondError(w, http.StatusServiceUnavailable, "assistant not configured")
		return assistantRequest{}, false
	}

	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return assistantRequest{}, false
	}

	if req.Language == "" {
		req.Language = assistant.LangSpanish
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}
	return req, true
}

func (s *Server) handleAssistantQuick(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAssistantRequest(w, r)
	if !ok {
		return
	}
	if req.Context == "" {
		respondError(w, http.StatusBadRequest, "missing context")
		return
	}

	text, err := s.assistant.QuickAnalysis(r.Context(), req.Context, req.Language)
	if err != nil {
		slog.ErrorContext(r.Context(), "Quick analysis failed", "error", err)
		respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) handleAssistantAdvice(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAssistantRequest(w, r)
	if !ok {
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "missing query")
		return
	}

	text, err := s.assistant.Advice(r.Context(), req.Query, req.Context, req.Language)
	if err != nil {
		slog.ErrorContext(r.Context(), "Advice failed", "error", err)
		respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleAssistantChat feeds the full transaction list into the system prompt
// so the model can answer questions about the data.
func (s *Server) handleAssistantChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAssistantRequest(w, r)
	if !ok {
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "missing message")
		return
	}

	txs, err := s.tracker.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Chat context load failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	text, err := s.assistant.Chat(r.Context(), req.Message, txs, req.Language, req.Currency)
	if err != nil {
		slog.ErrorContext(r.Context(), "Chat failed", "error", err)
		respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) handleAssistantSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAssistantRequest(w, r)
	if !ok {
		return
	}
	if req.Query == "" {
		respondError(w, http.StatusBadRequest, "missing query")
		return
	}

	result, err := s.assistant.Search(r.Context(), req.Query, req.Language)
	if err != nil {
		slog.ErrorContext(r.Context(), "Search failed", "error", err)
		respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAssistantImage(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAssistantRequest(w, r)
	if !ok {
		return
	}
	if req.Prompt == "" {
		respondError(w, http.StatusBadRequest, "missing prompt")
		return
	}
	switch req.AspectRatio {
	case "", assistant.AspectSquare, assistant.AspectLandscape, assistant.AspectPortrait:
	default:
		respondError(w, http.StatusBadRequest, "unsupported aspect ratio")
		return
	}

	imageURL, err := s.assistant.GoalImage(r.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		slog.ErrorContext(r.Context(), "Image generation failed", "error", err)
		respondError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}
