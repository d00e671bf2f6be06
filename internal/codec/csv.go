// Package codec converts transaction lists to and from the delimited export
// format used for backup and migration.
//
// The format is comma-separated with one header line
// (fecha,categoria,nombre,cantidad,tipo) and a \n line terminator. Decoding
// is best-effort per line: a partially corrupt file still yields whatever
// valid rows it contains.
package codec

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"finanza/internal/core"
)

// Header is the fixed first line of every export.
const Header = "fecha,categoria,nombre,cantidad,tipo"

// Spanish type labels written on export. They are informational only: on
// import the sign of the amount is the source of truth.
const (
	labelIncome  = "ingreso"
	labelExpense = "gasto"
)

// ErrEmptyFile is the only decode error; it signals entirely empty input.
var ErrEmptyFile = errors.New("empty file")

// Encode serializes transactions in input order, no re-sorting.
//
// Field mapping: fecha (date, unmodified), categoria (raw), nombre (always
// quote-wrapped, inner quotes doubled), cantidad (signed, two decimals, dot
// separator), tipo (ingreso/gasto).
func Encode(txs []core.Transaction) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, t := range txs {
		label := labelIncome
		if t.Type == core.Expense {
			label = labelExpense
		}
		b.WriteString(t.Date)
		b.WriteByte(',')
		b.WriteString(t.Category)
		b.WriteByte(',')
		b.WriteString(quote(t.Description))
		b.WriteByte(',')
		b.WriteString(core.FormatAmount(t.Signed()))
		b.WriteByte(',')
		b.WriteString(label)
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode parses export text back into transactions. It fails only on
// entirely empty input; malformed individual lines are skipped. Every decoded
// transaction gets a newly generated id, and rows with a missing date get
// today's.
func Decode(text string, now time.Time) ([]core.Transaction, error) {
	if text == "" {
		return nil, ErrEmptyFile
	}

	lines := strings.Split(text, "\n")
	txs := make([]core.Transaction, 0, len(lines))

	// First line is assumed to be the header.
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitLine(line)
		if len(fields) < 4 {
			continue
		}

		date := fields[0]
		category := fields[1]
		description := fields[2]
		amount, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			continue
		}

		typ := core.Income
		if amount < 0 {
			typ = core.Expense
			amount = -amount
		}
		if date == "" {
			date = core.Today(now)
		}

		txs = append(txs, core.NewTransaction(description, amount, typ, category, date))
	}
	return txs, nil
}

// ExportFilename suggests the download name for an export taken at now.
func ExportFilename(now time.Time) string {
	return "finanza_export_" + core.Today(now) + ".csv"
}

// quote wraps s in double quotes, doubling any embedded quote. Descriptions
// are always quoted so embedded commas survive the round trip.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// splitLine splits one record on commas, respecting quoted spans. A doubled
// quote inside a quoted span is one literal quote. Whitespace around fields
// (common in files from other tools) is trimmed.
func splitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
