package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the calendar date form used everywhere in the tracker.
// Transactions carry no time-of-day semantics.
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Transaction is an immutable record once created; edits replace it wholesale.
	// Amount is always a non-negative magnitude, the sign is carried by Type.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Date        string          `json:"date"` // YYYY-MM-DD
	}

	// RecurringItem is a template describing a monthly transaction, used by
	// onboarding to seed synthetic history.
	RecurringItem struct {
		ID            string          `json:"id"`
		Label         string          `json:"label"`
		Type          TransactionType `json:"type"`
		Category      string          `json:"category"`
		DefaultAmount float64         `json:"defaultAmount"`
		DayOfMonth    int             `json:"dayOfMonth,omitempty"` // 1-31, clamped to month end
		Icon          string          `json:"icon,omitempty"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidDate      = errors.New("invalid date")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// NewID returns a fresh opaque transaction id. Ids are never reused; imports
// always mint new ones.
func NewID() string {
	return uuid.New().String()
}

// NewTransaction builds a transaction with a freshly assigned id.
func NewTransaction(description string, amount float64, typ TransactionType, category, date string) Transaction {
	return Transaction{
		ID:          NewID(),
		Description: description,
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Date:        date,
	}
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if _, ok := ParseDate(t.Date); !ok {
		return ErrInvalidDate
	}
	return nil
}

// Signed returns the display magnitude: negative for expenses, positive for income.
func (t Transaction) Signed() float64 {
	if t.Type == Expense {
		return -t.Amount
	}
	return t.Amount
}

// ParseDate parses a YYYY-MM-DD date string. Malformed dates report ok=false
// instead of an error; range-bounded views drop such records silently.
func ParseDate(s string) (time.Time, bool) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Today formats now as the tracker's calendar date.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ClampDay resolves a day-of-month against a target month, clamping overflow
// (e.g. day 31 in a 30-day month) to the last valid day instead of rolling
// into the next month.
func ClampDay(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
