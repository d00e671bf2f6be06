package http

import (
	"log/slog"
	"net/http"
	"time"
)

// handleDashboard resolves the selected range and returns the window, its
// transactions and the summary, plus the previous-period summary for
// comparative ranges.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, custom, ok := parseRangeQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown range selector")
		return
	}

	key := cacheKey("dashboard", string(sel), custom.Start, custom.End)
	if report, hit := s.reportCache.Get(key); hit {
		respondJSON(w, http.StatusOK, report)
		return
	}

	report, err := s.tracker.Resolve(r.Context(), sel, time.Now(), custom)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard resolve failed", "range", sel, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	s.reportCache.Set(key, report)
	respondJSON(w, http.StatusOK, report)
}
