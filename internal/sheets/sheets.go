// Package sheets mirrors the transaction list into a Google Spreadsheet.
// The mirror is write-only: the store stays authoritative and every push
// rewrites the whole sheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finanza/internal/core"
)

var headerRow = []any{"fecha", "categoria", "nombre", "cantidad", "tipo"}

type Mirror struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a mirror from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transacciones").
func NewFromEnv(ctx context.Context) (*Mirror, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transacciones"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Mirror{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Replace clears the sheet and writes the header plus one row per
// transaction, in list order.
func (m *Mirror) Replace(ctx context.Context, txs []core.Transaction) error {
	if m.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := fmt.Sprintf("%s!A:E", m.sheetName)
	_, err := m.svc.Spreadsheets.Values.Clear(m.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", m.sheetName, err)
	}

	values := make([][]any, 0, len(txs)+1)
	values = append(values, headerRow)
	for _, t := range txs {
		values = append(values, TransactionRow(t))
	}

	writeRange := fmt.Sprintf("%s!A1", m.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err = m.svc.Spreadsheets.Values.Update(m.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", m.sheetName, err)
	}

	slog.InfoContext(ctx, "Transaction list mirrored to sheet",
		"sheet", m.sheetName,
		"rows", len(txs))
	return nil
}

// TransactionRow renders one transaction in the sheet's column layout,
// matching the CSV export columns.
func TransactionRow(t core.Transaction) []any {
	tipo := "gasto"
	if t.Type == core.Income {
		tipo = "ingreso"
	}
	return []any{t.Date, t.Category, t.Description, core.FormatAmount(t.Signed()), tipo}
}
