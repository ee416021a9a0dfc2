package ledger

import (
	"strings"

	"gagyebu/internal/core"
)

// Derived reads. Each one filters a snapshot of the store and never
// mutates it; order of the source list is preserved.

// Search returns transactions whose description contains the term,
// case-insensitive. An empty term passes everything.
func (s *Store) Search(term string) []core.Transaction {
	return Filter(s.List(), func(tx core.Transaction) bool {
		return MatchesDescription(tx, term)
	})
}

// OnDate returns transactions dated exactly the given calendar day.
func (s *Store) OnDate(d core.Date) []core.Transaction {
	return Filter(s.List(), func(tx core.Transaction) bool {
		return tx.Date.SameDay(d)
	})
}

// SearchOnDate combines the description and day filters, the default
// ledger-list view when a calendar day is selected.
func (s *Store) SearchOnDate(term string, d core.Date) []core.Transaction {
	return Filter(s.List(), func(tx core.Transaction) bool {
		return MatchesDescription(tx, term) && tx.Date.SameDay(d)
	})
}

// InMonth returns transactions dated in the given year and month.
func (s *Store) InMonth(year, month int) []core.Transaction {
	return Filter(s.List(), func(tx core.Transaction) bool {
		return tx.Date.InMonth(year, month)
	})
}

// ByCategoryInMonth returns the month's expense rows for one category,
// backing the per-slice drill-down dialog.
func (s *Store) ByCategoryInMonth(category string, year, month int) []core.Transaction {
	return Filter(s.List(), func(tx core.Transaction) bool {
		return tx.Type == core.Expense && tx.Category == category && tx.Date.InMonth(year, month)
	})
}

// CountOn returns the number of transactions on a calendar day, used to
// decorate calendar cells.
func (s *Store) CountOn(d core.Date) int {
	return len(s.OnDate(d))
}

// CategoriesOn returns the distinct categories that appear on a day, in
// first-seen order, capped at limit (the calendar shows at most three
// dots). limit <= 0 means no cap.
func (s *Store) CategoriesOn(d core.Date, limit int) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, tx := range s.OnDate(d) {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// TotalIncome sums all income rows across the ledger.
func (s *Store) TotalIncome() core.Money {
	return sumByType(s.List(), core.Income)
}

// TotalExpense sums all expense rows across the ledger.
func (s *Store) TotalExpense() core.Money {
	return sumByType(s.List(), core.Expense)
}

// Balance is total income minus total expense; it may be negative.
func (s *Store) Balance() core.Money {
	items := s.List()
	return core.Money{Won: sumByType(items, core.Income).Won - sumByType(items, core.Expense).Won}
}

// Filter returns the order-preserving subsequence of txs matching keep.
func Filter(txs []core.Transaction, keep func(core.Transaction) bool) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// MatchesDescription reports a case-insensitive substring match of term
// against the transaction description. Empty terms match everything.
func MatchesDescription(tx core.Transaction, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(tx.Description), strings.ToLower(term))
}

func sumByType(txs []core.Transaction, t core.TxType) core.Money {
	var sum int64
	for _, tx := range txs {
		if tx.Type == t {
			sum += tx.Amount.Won
		}
	}
	return core.Money{Won: sum}
}
