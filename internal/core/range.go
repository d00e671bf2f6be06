package core

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	RangeAnnual       RangeSelector = "annual"
	RangeLast15Days   RangeSelector = "last15Days"
	RangeLast30Days   RangeSelector = "last30Days"
	RangeLastPaycheck RangeSelector = "lastPaycheck"
	RangeThisMonth    RangeSelector = "thisMonth"
	RangeLastMonth    RangeSelector = "lastMonth"
	RangeYearToDate   RangeSelector = "yearToDate"
	RangeCustom       RangeSelector = "custom"
	RangeAll          RangeSelector = "all"
)

// SalaryCategory is the reserved income category treated as a paycheck marker.
const SalaryCategory = "Salario"

// salaryKeywords match paycheck-like income by description substring.
// Matching is case- and accent-insensitive, so "Nómina" and "nomina" are equal.
var salaryKeywords = []string{"nomina", "salario", "sueldo", "paga", "salary", "paycheck", "wage"}

type (
	RangeSelector string

	// Window is a closed date interval used to filter transactions.
	Window struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}

	// CustomBounds carries user-supplied YYYY-MM-DD bounds for RangeCustom.
	// Empty fields default to epoch start and now respectively.
	CustomBounds struct {
		Start string
		End   string
	}

	// Resolved pairs the selected window with the preceding window of the
	// same type, when the selector defines a period-over-period comparison.
	Resolved struct {
		Current  Window  `json:"current"`
		Previous *Window `json:"previous,omitempty"`
	}
)

func (s RangeSelector) Valid() bool {
	switch s {
	case RangeAnnual, RangeLast15Days, RangeLast30Days, RangeLastPaycheck,
		RangeThisMonth, RangeLastMonth, RangeYearToDate, RangeCustom, RangeAll:
		return true
	}
	return false
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Resolve maps a selector plus the current instant into one or two concrete
// date windows. It is total: any selector value and any transaction list
// (malformed dates included) yield a valid result without error.
//
// now is reduced to its local calendar day and windows are built in UTC,
// the zone ParseDate uses, so a transaction dated on a boundary day stays
// inside the window regardless of the server zone. The end-of-day
// normalization keeps "today" inside any "last N days" window.
func Resolve(sel RangeSelector, now time.Time, txs []Transaction, custom CustomBounds) Resolved {
	now = endOfDay(calendarDate(now))

	switch sel {
	case RangeAnnual:
		cur := Window{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
			End:   endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())),
		}
		prev := Window{
			Start: time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location()),
			End:   endOfDay(time.Date(now.Year()-1, time.December, 31, 0, 0, 0, 0, now.Location())),
		}
		return Resolved{Current: cur, Previous: &prev}

	case RangeLast15Days:
		return lastNDays(now, 15)

	case RangeLast30Days:
		return lastNDays(now, 30)

	case RangeLastPaycheck:
		return lastPaycheck(now, txs)

	case RangeThisMonth:
		return Resolved{Current: monthWindow(now.Year(), now.Month(), now.Location())}

	case RangeLastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return Resolved{Current: monthWindow(first.Year(), first.Month(), now.Location())}

	case RangeYearToDate:
		return Resolved{Current: Window{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
			End:   now,
		}}

	case RangeCustom:
		w := Window{Start: time.Unix(0, 0).UTC(), End: now}
		if d, ok := ParseDate(custom.Start); ok {
			w.Start = startOfDay(d)
		}
		if d, ok := ParseDate(custom.End); ok {
			w.End = endOfDay(d)
		}
		return Resolved{Current: w}

	default: // RangeAll and anything unrecognized
		return Resolved{Current: Window{Start: time.Unix(0, 0).UTC(), End: now}}
	}
}

// Filter returns the transactions whose dates fall inside the window.
// Records with unparseable dates match no window and are dropped.
func Filter(txs []Transaction, w Window) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		d, ok := ParseDate(t.Date)
		if !ok {
			continue
		}
		if w.Contains(d) {
			out = append(out, t)
		}
	}
	return out
}

func lastNDays(now time.Time, n int) Resolved {
	curStart := startOfDay(now.AddDate(0, 0, -n))
	prev := Window{
		Start: startOfDay(curStart.AddDate(0, 0, -n)),
		End:   endOfDay(curStart.AddDate(0, 0, -1)),
	}
	return Resolved{
		Current:  Window{Start: curStart, End: now},
		Previous: &prev,
	}
}

// lastPaycheck anchors the window on the most recent salary income. With a
// single match the previous window falls back to the preceding 30 days; with
// no matches at all, the whole resolution falls back to last30Days.
func lastPaycheck(now time.Time, txs []Transaction) Resolved {
	type match struct {
		date time.Time
	}
	var matches []match
	for _, t := range txs {
		if t.Type != Income || !isSalary(t) {
			continue
		}
		d, ok := ParseDate(t.Date)
		if !ok {
			continue
		}
		matches = append(matches, match{date: d})
	}
	if len(matches) == 0 {
		return lastNDays(now, 30)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].date.After(matches[j].date) })

	curStart := startOfDay(matches[0].date)
	cur := Window{Start: curStart, End: now}

	var prev Window
	if len(matches) > 1 {
		prev = Window{
			Start: startOfDay(matches[1].date),
			End:   endOfDay(curStart.AddDate(0, 0, -1)),
		}
	} else {
		prev = Window{
			Start: startOfDay(curStart.AddDate(0, 0, -30)),
			End:   endOfDay(curStart.AddDate(0, 0, -1)),
		}
	}
	return Resolved{Current: cur, Previous: &prev}
}

func isSalary(t Transaction) bool {
	if foldAccents(strings.TrimSpace(t.Category)) == foldAccents(SalaryCategory) {
		return true
	}
	desc := foldAccents(t.Description)
	for _, kw := range salaryKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents lowercases and strips combining marks so "Nómina" == "nomina".
func foldAccents(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func monthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := endOfDay(start.AddDate(0, 1, -1))
	return Window{Start: start, End: end}
}

// calendarDate keeps t's local calendar day and drops the zone.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
