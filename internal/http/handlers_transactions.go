package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"finanza/internal/core"
)

type transactionRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.tracker.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	saved, err := s.tracker.Add(r.Context(), core.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        core.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Transaction create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateViews()
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.tracker.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateViews()
	w.WriteHeader(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidType) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrEmptyCategory) ||
		errors.Is(err, core.ErrInvalidDate)
}
