package http

import (
	"log/slog"
	"net/http"
	"time"

	"finanza/internal/core"
)

type analyticsResponse struct {
	Range        core.RangeSelector    `json:"range"`
	Window       core.Window           `json:"window"`
	Summary      core.Summary          `json:"summary"`
	CategoryData []core.CategoryAmount `json:"categoryData"`
	MonthlyData  []core.MonthAmount    `json:"monthlyData"`
}

func (s *Server) analyticsReport(r *http.Request) (analyticsResponse, int, string) {
	sel, custom, ok := parseRangeQuery(r)
	if !ok {
		return analyticsResponse{}, http.StatusBadRequest, "unknown range selector"
	}

	key := cacheKey("analytics", string(sel), custom.Start, custom.End)
	report, hit := s.reportCache.Get(key)
	if !hit {
		var err error
		report, err = s.tracker.Resolve(r.Context(), sel, time.Now(), custom)
		if err != nil {
			slog.ErrorContext(r.Context(), "Analytics resolve failed", "range", sel, "error", err)
			return analyticsResponse{}, http.StatusInternalServerError, "failed to load analytics"
		}
		s.reportCache.Set(key, report)
	}

	return analyticsResponse{
		Range:        report.Range,
		Window:       report.Window,
		Summary:      report.Summary,
		CategoryData: core.CategoryBreakdown(report.Transactions),
		MonthlyData:  core.MonthlyBreakdown(report.Transactions),
	}, http.StatusOK, ""
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	resp, status, errMsg := s.analyticsReport(r)
	if errMsg != "" {
		respondError(w, status, errMsg)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleAnalyticsChart renders the analytics aggregates as a PNG. kind=pie
// draws the category breakdown, kind=bar the monthly totals.
func (s *Server) handleAnalyticsChart(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "pie"
	}
	if kind != "pie" && kind != "bar" {
		respondError(w, http.StatusBadRequest, "unknown chart kind")
		return
	}

	sel, custom, ok := parseRangeQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown range selector")
		return
	}

	key := cacheKey("chart", kind, string(sel), custom.Start, custom.End)
	png, hit := s.chartCache.Get(key)
	if !hit {
		resp, status, errMsg := s.analyticsReport(r)
		if errMsg != "" {
			respondError(w, status, errMsg)
			return
		}

		var err error
		png, err = s.renderChart(kind, resp)
		if err != nil {
			slog.ErrorContext(r.Context(), "Chart render failed", "kind", kind, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to render chart")
			return
		}
		if png != nil {
			s.chartCache.Set(key, png)
		}
	}

	if len(png) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) renderChart(kind string, resp analyticsResponse) ([]byte, error) {
	if kind == "bar" {
		return s.charts.MonthlyBars(resp.MonthlyData)
	}
	return s.charts.CategoryPie(resp.CategoryData)
}
