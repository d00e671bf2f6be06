package core

import "sort"

type (
	// Summary holds the aggregate totals for a set of transactions.
	Summary struct {
		Income      float64 `json:"income"`
		Expense     float64 `json:"expense"`
		Balance     float64 `json:"balance"`
		SavingsRate float64 `json:"savingsRate"` // percent of income retained
	}

	// CategoryAmount is an expense total for one category.
	CategoryAmount struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	// MonthAmount is the income/expense pair for one calendar month.
	MonthAmount struct {
		Year    int     `json:"year"`
		Month   int     `json:"month"` // 1-12
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}
)

// Summarize partitions transactions by type and derives the window totals.
// Zero income yields a savings rate of exactly 0, never a division error.
func Summarize(txs []Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.Income += t.Amount
		case Expense:
			s.Expense += t.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	if s.Income > 0 {
		s.SavingsRate = (s.Income - s.Expense) / s.Income * 100
	}
	return s
}

// CategoryBreakdown groups expense transactions by category and sorts the
// sums descending. Ties keep first-encountered order so chart legends stay
// deterministic.
func CategoryBreakdown(txs []Transaction) []CategoryAmount {
	sums := map[string]float64{}
	var order []string
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Value: sums[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// MonthlyBreakdown groups all transactions by (year, month) and sums income
// and expense independently, sorted ascending chronologically. Records with
// unparseable dates are skipped.
func MonthlyBreakdown(txs []Transaction) []MonthAmount {
	type key struct{ year, month int }
	sums := map[key]*MonthAmount{}
	for _, t := range txs {
		d, ok := ParseDate(t.Date)
		if !ok {
			continue
		}
		k := key{d.Year(), int(d.Month())}
		m := sums[k]
		if m == nil {
			m = &MonthAmount{Year: k.year, Month: k.month}
			sums[k] = m
		}
		switch t.Type {
		case Income:
			m.Income += t.Amount
		case Expense:
			m.Expense += t.Amount
		}
	}

	out := make([]MonthAmount, 0, len(sums))
	for _, m := range sums {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
