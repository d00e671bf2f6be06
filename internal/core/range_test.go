package core

import (
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2024, time.February, 15, 10, 30, 0, 0, time.UTC)

func tx(typ TransactionType, amount float64, category, desc, date string) Transaction {
	return Transaction{ID: NewID(), Description: desc, Amount: amount, Type: typ, Category: category, Date: date}
}

func TestResolveStartNeverAfterEnd(t *testing.T) {
	txs := []Transaction{
		tx(Income, 200, SalaryCategory, "Nómina enero", "2024-01-28"),
		tx(Expense, 100, "Food", "groceries", "2024-02-01"),
	}
	selectors := []RangeSelector{
		RangeAnnual, RangeLast15Days, RangeLast30Days, RangeLastPaycheck,
		RangeThisMonth, RangeLastMonth, RangeYearToDate, RangeCustom, RangeAll,
	}
	for _, sel := range selectors {
		r := Resolve(sel, testNow, txs, CustomBounds{})
		if r.Current.Start.After(r.Current.End) {
			t.Fatalf("%s: start %v after end %v", sel, r.Current.Start, r.Current.End)
		}
		if r.Previous != nil && r.Previous.Start.After(r.Previous.End) {
			t.Fatalf("%s: previous start %v after end %v", sel, r.Previous.Start, r.Previous.End)
		}
	}
}

func TestResolveLast30Days(t *testing.T) {
	r := Resolve(RangeLast30Days, testNow, nil, CustomBounds{})

	wantStart := time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)
	if !r.Current.Start.Equal(wantStart) {
		t.Fatalf("current start = %v, want %v", r.Current.Start, wantStart)
	}
	if got := r.Current.End.Format(DateLayout); got != "2024-02-15" {
		t.Fatalf("current end day = %s, want today", got)
	}
	if r.Previous == nil {
		t.Fatal("expected previous window")
	}
	// Contiguous, non-overlapping: previous ends the day before current starts.
	if got := r.Previous.End.Format(DateLayout); got != "2024-01-15" {
		t.Fatalf("previous end day = %s, want 2024-01-15", got)
	}
	if !r.Current.Start.AddDate(0, 0, 30).Equal(startOfDay(r.Current.End)) {
		t.Fatalf("current window does not span 30 days: %v .. %v", r.Current.Start, r.Current.End)
	}
	// Previous covers the 30 days immediately preceding current's start.
	if !r.Previous.Start.AddDate(0, 0, 29).Equal(startOfDay(r.Previous.End)) {
		t.Fatalf("previous window does not span 30 days: %v .. %v", r.Previous.Start, r.Previous.End)
	}
	if !r.Previous.End.Equal(endOfDay(r.Current.Start.AddDate(0, 0, -1))) {
		t.Fatalf("previous end %v not adjacent to current start %v", r.Previous.End, r.Current.Start)
	}
}

func TestResolveWestOfUTCIncludesWindowStartDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	localNow := time.Date(2024, time.February, 15, 10, 30, 0, 0, loc)
	txs := []Transaction{
		tx(Expense, 30, "Food", "groceries", "2024-02-01"),
		tx(Expense, 12, "Food", "dinner", "2024-02-15"),
	}

	r := Resolve(RangeThisMonth, localNow, txs, CustomBounds{})
	got := Filter(txs, r.Current)
	if len(got) != 2 {
		t.Fatalf("window [%v, %v] filtered to %d records, want both", r.Current.Start, r.Current.End, len(got))
	}
}

func TestResolveAnnual(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 40, "Food", "new year's eve dinner", "2023-12-31"),
		tx(Expense, 10, "Food", "coffee", "2024-01-02"),
	}
	r := Resolve(RangeAnnual, testNow, txs, CustomBounds{})

	cur := Filter(txs, r.Current)
	if len(cur) != 1 || cur[0].Date != "2024-01-02" {
		t.Fatalf("current year filter = %+v, want only the 2024 record", cur)
	}
	if r.Previous == nil {
		t.Fatal("expected previous year window")
	}
	prev := Filter(txs, *r.Previous)
	if len(prev) != 1 || prev[0].Date != "2023-12-31" {
		t.Fatalf("previous year filter = %+v, want only the 2023 record", prev)
	}
}

func TestResolveThisMonthAggregate(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 100, "Food", "groceries", "2024-01-05"),
		tx(Income, 200, "Freelance", "project", "2024-02-10"),
	}
	r := Resolve(RangeThisMonth, testNow, txs, CustomBounds{})
	s := Summarize(Filter(txs, r.Current))
	if s.Income != 200 || s.Expense != 0 || s.Balance != 200 {
		t.Fatalf("thisMonth summary = %+v, want income=200 expense=0 balance=200", s)
	}
	if r.Previous != nil {
		t.Fatal("thisMonth must not carry a previous window")
	}
}

func TestResolveLastMonth(t *testing.T) {
	r := Resolve(RangeLastMonth, testNow, nil, CustomBounds{})
	if got := r.Current.Start.Format(DateLayout); got != "2024-01-01" {
		t.Fatalf("start = %s, want 2024-01-01", got)
	}
	if got := r.Current.End.Format(DateLayout); got != "2024-01-31" {
		t.Fatalf("end = %s, want 2024-01-31", got)
	}
}

func TestResolveLastPaycheck(t *testing.T) {
	t.Run("no matches falls back to last30Days", func(t *testing.T) {
		txs := []Transaction{tx(Expense, 10, "Food", "coffee", "2024-02-01")}
		got := Resolve(RangeLastPaycheck, testNow, txs, CustomBounds{})
		want := Resolve(RangeLast30Days, testNow, txs, CustomBounds{})
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("fallback mismatch:\ngot  %+v\nwant %+v", got, want)
		}
	})

	t.Run("two matches anchor both windows", func(t *testing.T) {
		txs := []Transaction{
			tx(Income, 1500, SalaryCategory, "enero", "2024-01-01"),
			tx(Income, 1500, SalaryCategory, "febrero", "2024-02-01"),
			tx(Expense, 10, "Food", "coffee", "2024-02-05"),
		}
		r := Resolve(RangeLastPaycheck, testNow, txs, CustomBounds{})
		if got := r.Current.Start.Format(DateLayout); got != "2024-02-01" {
			t.Fatalf("current start = %s, want 2024-02-01", got)
		}
		if r.Previous == nil {
			t.Fatal("expected previous window")
		}
		if got := r.Previous.Start.Format(DateLayout); got != "2024-01-01" {
			t.Fatalf("previous start = %s, want 2024-01-01", got)
		}
		if got := r.Previous.End.Format(DateLayout); got != "2024-01-31" {
			t.Fatalf("previous end = %s, want 2024-01-31", got)
		}
	})

	t.Run("single match uses preceding 30 days", func(t *testing.T) {
		txs := []Transaction{
			tx(Income, 1500, "Trabajo", "pago de nómina", "2024-02-01"),
		}
		r := Resolve(RangeLastPaycheck, testNow, txs, CustomBounds{})
		if got := r.Current.Start.Format(DateLayout); got != "2024-02-01" {
			t.Fatalf("current start = %s, want 2024-02-01", got)
		}
		if r.Previous == nil {
			t.Fatal("expected previous window")
		}
		if got := r.Previous.Start.Format(DateLayout); got != "2024-01-02" {
			t.Fatalf("previous start = %s, want 2024-01-02", got)
		}
		if got := r.Previous.End.Format(DateLayout); got != "2024-01-31" {
			t.Fatalf("previous end = %s, want 2024-01-31", got)
		}
	})

	t.Run("accent and case insensitive keyword match", func(t *testing.T) {
		for _, desc := range []string{"NÓMINA EMPRESA", "nomina empresa", "Salário mensual"} {
			txs := []Transaction{tx(Income, 1500, "Otros", desc, "2024-02-01")}
			r := Resolve(RangeLastPaycheck, testNow, txs, CustomBounds{})
			if got := r.Current.Start.Format(DateLayout); got != "2024-02-01" {
				t.Fatalf("%q: current start = %s, want anchor on the match", desc, got)
			}
		}
	})

	t.Run("expense rows never match", func(t *testing.T) {
		txs := []Transaction{tx(Expense, 20, SalaryCategory, "nomina refund", "2024-02-01")}
		got := Resolve(RangeLastPaycheck, testNow, txs, CustomBounds{})
		want := Resolve(RangeLast30Days, testNow, txs, CustomBounds{})
		if !reflect.DeepEqual(got, want) {
			t.Fatal("expense rows must not anchor the paycheck window")
		}
	})
}

func TestResolveCustom(t *testing.T) {
	r := Resolve(RangeCustom, testNow, nil, CustomBounds{Start: "2024-01-10", End: "2024-01-20"})
	if got := r.Current.Start.Format(DateLayout); got != "2024-01-10" {
		t.Fatalf("start = %s", got)
	}
	if got := r.Current.End.Format(DateLayout); got != "2024-01-20" {
		t.Fatalf("end = %s", got)
	}

	// Absent bounds default to epoch / now.
	open := Resolve(RangeCustom, testNow, nil, CustomBounds{})
	if open.Current.Start.Unix() != 0 {
		t.Fatalf("open start = %v, want epoch", open.Current.Start)
	}
	if got := open.Current.End.Format(DateLayout); got != "2024-02-15" {
		t.Fatalf("open end = %s, want today", got)
	}
}

func TestFilterDropsMalformedDates(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 10, "Food", "ok", "2024-02-10"),
		tx(Expense, 10, "Food", "broken", "10/02/2024"),
		tx(Expense, 10, "Food", "empty", ""),
	}
	r := Resolve(RangeThisMonth, testNow, txs, CustomBounds{})
	got := Filter(txs, r.Current)
	if len(got) != 1 || got[0].Description != "ok" {
		t.Fatalf("filter = %+v, want only the well-formed record", got)
	}
}
