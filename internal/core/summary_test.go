package core

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name string
		txs  []Transaction
		want Summary
	}{
		{
			name: "mixed",
			txs: []Transaction{
				tx(Income, 1000, SalaryCategory, "nomina", "2024-02-01"),
				tx(Expense, 250, "Food", "groceries", "2024-02-03"),
				tx(Expense, 150, "Transport", "fuel", "2024-02-04"),
			},
			want: Summary{Income: 1000, Expense: 400, Balance: 600, SavingsRate: 60},
		},
		{
			name: "zero income yields zero rate",
			txs: []Transaction{
				tx(Expense, 50, "Food", "lunch", "2024-02-03"),
			},
			want: Summary{Income: 0, Expense: 50, Balance: -50, SavingsRate: 0},
		},
		{
			name: "overspending stays finite",
			txs: []Transaction{
				tx(Income, 100, "Otros", "gift", "2024-02-01"),
				tx(Expense, 300, "Food", "dinner", "2024-02-03"),
			},
			want: Summary{Income: 100, Expense: 300, Balance: -200, SavingsRate: -200},
		},
		{
			name: "empty",
			txs:  nil,
			want: Summary{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.txs)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if got.Income > 0 && got.SavingsRate > 100 {
				t.Fatalf("savings rate %v above 100", got.SavingsRate)
			}
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 30, "Food", "a", "2024-02-01"),
		tx(Expense, 70, "Transport", "b", "2024-02-02"),
		tx(Expense, 40, "Food", "c", "2024-02-03"),
		tx(Income, 500, SalaryCategory, "nomina", "2024-02-04"), // ignored
		tx(Expense, 70, "Leisure", "d", "2024-02-05"),
	}
	got := CategoryBreakdown(txs)

	wantNames := []string{"Food", "Transport", "Leisure"}
	if len(got) != len(wantNames) {
		t.Fatalf("got %d groups, want %d", len(got), len(wantNames))
	}
	// Transport and Leisure tie at 70: first-encountered order must win.
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Fatalf("position %d = %s, want %s (got %+v)", i, got[i].Name, name, got)
		}
	}

	var sum float64
	for _, c := range got {
		sum += c.Value
	}
	if sum != 210 {
		t.Fatalf("category totals sum to %v, want total filtered expense 210", sum)
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	txs := []Transaction{
		tx(Expense, 10, "Food", "a", "2024-02-01"),
		tx(Income, 100, SalaryCategory, "nomina", "2023-12-28"),
		tx(Expense, 20, "Food", "b", "2024-01-15"),
		tx(Income, 50, "Otros", "c", "2024-02-20"),
		tx(Expense, 5, "Food", "broken date", "garbage"),
	}
	got := MonthlyBreakdown(txs)

	want := []MonthAmount{
		{Year: 2023, Month: 12, Income: 100},
		{Year: 2024, Month: 1, Expense: 20},
		{Year: 2024, Month: 2, Income: 50, Expense: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSavingsRateNeverNaN(t *testing.T) {
	s := Summarize([]Transaction{})
	if math.IsNaN(s.SavingsRate) || math.IsInf(s.SavingsRate, 0) {
		t.Fatalf("savings rate = %v", s.SavingsRate)
	}
}
