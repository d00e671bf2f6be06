package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finanza/internal/core"
	applog "finanza/internal/log"
)

type onboardingRequest struct {
	Name           string               `json:"name"`
	Avatar         string               `json:"avatar,omitempty"`
	RecurringItems []core.RecurringItem `json:"recurringItems"`
}

type onboardingResponse struct {
	Name         string `json:"name"`
	Avatar       string `json:"avatar,omitempty"`
	Transactions int    `json:"transactions"`
}

// handleProfile returns the stored name and avatar. Before onboarding both
// are empty and onboarded is false.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	name, avatar, err := s.tracker.Profile(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile load failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"name":      name,
		"avatar":    avatar,
		"onboarded": name != "",
	})
}

// handleOnboarding stores the profile and seeds three months of history from
// the recurring items.
func (s *Server) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var req onboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	txs, err := s.seeder.Seed(r.Context(), req.Name, req.Avatar, req.RecurringItems, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Onboarding seed failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to initialize profile")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Onboarding completed",
		applog.FieldTxCount, len(txs))

	s.invalidateViews()
	respondJSON(w, http.StatusCreated, onboardingResponse{
		Name:         req.Name,
		Avatar:       req.Avatar,
		Transactions: len(txs),
	})
}
