package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finanza/internal/codec"
	applog "finanza/internal/log"
)

// maxImportSize caps the uploaded CSV body.
const maxImportSize = 10 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename, content, err := s.tracker.Export(r.Context(), time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

type importResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// handleImport replaces the whole list with the decoded file. Malformed
// lines are skipped and reported, not fatal.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportSize))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	text := string(body)
	imported, err := s.tracker.Import(r.Context(), text, time.Now())
	if err != nil {
		if errors.Is(err, codec.ErrEmptyFile) {
			respondError(w, http.StatusBadRequest, "empty file")
			return
		}
		slog.ErrorContext(r.Context(), "Import failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to import transactions")
		return
	}

	skipped := countDataLines(text) - imported
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Import completed",
		applog.FieldTxCount, imported,
		applog.FieldSkippedRows, skipped)

	s.invalidateViews()
	respondJSON(w, http.StatusOK, importResponse{
		Imported: imported,
		Skipped:  skipped,
	})
}

// countDataLines counts the non-blank lines after the header.
func countDataLines(text string) int {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return 0
	}
	n := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
