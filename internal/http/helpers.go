package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"finanza/internal/core"
)

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// first hop is the original client
		if idx := strings.IndexByte(ip, ','); idx > 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// parseRangeQuery reads the range selector and custom bounds from the query
// string. Missing range defaults to thisMonth.
func parseRangeQuery(r *http.Request) (core.RangeSelector, core.CustomBounds, bool) {
	sel := core.RangeSelector(strings.TrimSpace(r.URL.Query().Get("range")))
	if sel == "" {
		sel = core.RangeThisMonth
	}
	if !sel.Valid() {
		return "", core.CustomBounds{}, false
	}

	custom := core.CustomBounds{
		Start: strings.TrimSpace(r.URL.Query().Get("start")),
		End:   strings.TrimSpace(r.URL.Query().Get("end")),
	}
	return sel, custom, true
}

// cacheKey builds the lookup key for a cached derived view.
func cacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}
