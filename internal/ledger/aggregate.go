package ledger

import (
	"gagyebu/internal/core"
)

// BudgetFunc resolves the monthly budget for an expense category. The
// registry supplies it so budgets stay configurable without the
// aggregation code knowing where they live.
type BudgetFunc func(category string) int64

// CategorySpend is one row of the monthly breakdown.
type CategorySpend struct {
	Name       string
	Spent      core.Money
	Budget     core.Money
	Percentage float64 // spent/budget*100, shown rounded to one decimal
	OverBudget bool
	Remaining  core.Money // budget - spent, negative when over
}

// MonthSummary is the aggregated view of one calendar month.
type MonthSummary struct {
	Year        int
	Month       int
	Income      core.Money
	Expense     core.Money
	Balance     core.Money
	SavingsRate float64 // share of income not spent, 0 when income is 0
	ByCategory  []CategorySpend
}

// Aggregate folds the expense rows dated in year+month into per-category
// totals. Membership compares year and month components only. Categories
// with no matching rows are omitted; callers needing zero rows merge with
// the registry's category list. Insertion order of the result follows
// first appearance in txs.
func Aggregate(txs []core.Transaction, year, month int) ([]string, map[string]int64) {
	totals := make(map[string]int64)
	var order []string
	for _, tx := range txs {
		if tx.Type != core.Expense || !tx.Date.InMonth(year, month) {
			continue
		}
		if _, ok := totals[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		totals[tx.Category] += tx.Amount.Won
	}
	return order, totals
}

// MonthSummary derives the full monthly rollup: income/expense totals,
// balance, savings rate and the budget-usage rows.
func (s *Store) MonthSummary(year, month int, budget BudgetFunc) MonthSummary {
	if budget == nil {
		budget = func(string) int64 { return 0 }
	}
	items := s.InMonth(year, month)

	sum := MonthSummary{Year: year, Month: month}
	sum.Income = sumByType(items, core.Income)
	sum.Expense = sumByType(items, core.Expense)
	sum.Balance = core.Money{Won: sum.Income.Won - sum.Expense.Won}
	if sum.Income.Won > 0 {
		sum.SavingsRate = float64(sum.Balance.Won) / float64(sum.Income.Won) * 100
	}

	order, totals := Aggregate(items, year, month)
	for _, name := range order {
		spent := totals[name]
		b := budget(name)
		row := CategorySpend{
			Name:      name,
			Spent:     core.Money{Won: spent},
			Budget:    core.Money{Won: b},
			Remaining: core.Money{Won: b - spent},
		}
		if b > 0 {
			row.Percentage = float64(spent) / float64(b) * 100
			row.OverBudget = row.Percentage > 100
		}
		sum.ByCategory = append(sum.ByCategory, row)
	}
	return sum
}
