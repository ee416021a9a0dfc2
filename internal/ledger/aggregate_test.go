package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gagyebu/internal/core"
)

func seedAugust(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	err := s.Seed([]core.Transaction{
		{ID: 1, Description: "Salary", Amount: core.Money{Won: 2_800_000}, Category: "급여", Date: core.NewDate(2025, 8, 1), Type: core.Income},
		{ID: 2, Description: "Coffee", Amount: core.Money{Won: 6500}, Category: "식비", Date: core.NewDate(2025, 8, 14), Type: core.Expense, AutoClassified: true},
		{ID: 3, Description: "Subway", Amount: core.Money{Won: 1400}, Category: "교통", Date: core.NewDate(2025, 8, 14), Type: core.Expense, AutoClassified: true},
		{ID: 4, Description: "Coupang", Amount: core.Money{Won: 89000}, Category: "쇼핑", Date: core.NewDate(2025, 8, 13), Type: core.Expense, AutoClassified: true},
		{ID: 5, Description: "Cinema", Amount: core.Money{Won: 15000}, Category: "문화생활", Date: core.NewDate(2025, 8, 13), Type: core.Expense, AutoClassified: true},
		{ID: 6, Description: "Lunch July", Amount: core.Money{Won: 12000}, Category: "식비", Date: core.NewDate(2025, 7, 20), Type: core.Expense},
	})
	require.NoError(t, err)
	return s
}

func TestAggregateMonthMembership(t *testing.T) {
	s := seedAugust(t)
	_, totals := Aggregate(s.List(), 2025, 8)

	// July's lunch never contributes to August
	assert.Equal(t, int64(6500), totals["식비"])
	assert.Equal(t, int64(1400), totals["교통"])
	assert.Equal(t, int64(89000), totals["쇼핑"])
	assert.Equal(t, int64(15000), totals["문화생활"])

	// income rows are excluded
	_, hasIncome := totals["급여"]
	assert.False(t, hasIncome)

	// zero categories are omitted, not reported as zero rows
	_, hasMedical := totals["의료"]
	assert.False(t, hasMedical)
}

func TestAggregateTotalsMatchExpenseSum(t *testing.T) {
	s := seedAugust(t)
	_, totals := Aggregate(s.List(), 2025, 8)

	var byCategory int64
	for _, v := range totals {
		byCategory += v
	}
	var direct int64
	for _, tx := range s.InMonth(2025, 8) {
		if tx.Type == core.Expense {
			direct += tx.Amount.Won
		}
	}
	assert.Equal(t, direct, byCategory)
}

func TestMonthSummaryBudgets(t *testing.T) {
	s := seedAugust(t)
	budget := func(category string) int64 {
		if category == "쇼핑" {
			return 80_000
		}
		return 300_000
	}

	sum := s.MonthSummary(2025, 8, budget)
	assert.Equal(t, int64(2_800_000), sum.Income.Won)
	assert.Equal(t, int64(111_900), sum.Expense.Won)
	assert.Equal(t, int64(2_688_100), sum.Balance.Won)
	assert.InDelta(t, 96.0, sum.SavingsRate, 0.1)

	byName := map[string]CategorySpend{}
	for _, row := range sum.ByCategory {
		byName[row.Name] = row
	}
	shopping := byName["쇼핑"]
	assert.True(t, shopping.OverBudget)
	assert.InDelta(t, 111.25, shopping.Percentage, 0.01)
	assert.Equal(t, int64(-9000), shopping.Remaining.Won)

	food := byName["식비"]
	assert.False(t, food.OverBudget)
	assert.InDelta(t, 2.17, food.Percentage, 0.01)
}

func TestMonthSummaryEmptyMonth(t *testing.T) {
	s := seedAugust(t)
	sum := s.MonthSummary(2024, 1, nil)
	assert.Empty(t, sum.ByCategory)
	assert.Equal(t, int64(0), sum.Income.Won)
	assert.Equal(t, float64(0), sum.SavingsRate)
}

func TestFilterIdempotentAndOrderPreserving(t *testing.T) {
	s := seedAugust(t)

	once := s.Search("co")
	twice := Filter(once, func(tx core.Transaction) bool { return MatchesDescription(tx, "co") })
	assert.Equal(t, once, twice, "filtering twice equals filtering once")

	// matches appear in store order (last seeded first)
	require.Len(t, once, 2)
	assert.Equal(t, "Coupang", once[0].Description)
	assert.Equal(t, "Coffee", once[1].Description)

	// filtering never mutates the store
	assert.Len(t, s.List(), 6)
}

func TestDayViews(t *testing.T) {
	s := seedAugust(t)
	d := core.NewDate(2025, 8, 14)

	assert.Equal(t, 2, s.CountOn(d))
	assert.Equal(t, []string{"교통", "식비"}, s.CategoriesOn(d, 3))

	hits := s.SearchOnDate("coffee", d)
	require.Len(t, hits, 1)
	assert.Equal(t, "Coffee", hits[0].Description)

	// zero results is a valid state, not an error
	assert.Empty(t, s.SearchOnDate("coffee", core.NewDate(2025, 8, 1)))
}

func TestPieData(t *testing.T) {
	s := seedAugust(t)
	sum := s.MonthSummary(2025, 8, nil)

	slices := PieData(sum.ByCategory, nil)
	require.Len(t, slices, 4)
	var pct float64
	for i, sl := range slices {
		pct += sl.Percent
		assert.Equal(t, Palette[i%len(Palette)], sl.Color)
	}
	assert.InDelta(t, 100.0, pct, 0.001)

	// active filter recomputes percentages over the filtered total
	filtered := PieData(sum.ByCategory, []string{"식비", "교통"})
	require.Len(t, filtered, 2)
	assert.InDelta(t, 100.0, filtered[0].Percent+filtered[1].Percent, 0.001)

	assert.Empty(t, PieData(nil, nil))
}

func TestMonthlySeries(t *testing.T) {
	s := seedAugust(t)
	points := s.MonthlySeries(2025, 8, 3)
	require.Len(t, points, 3)
	assert.Equal(t, "2025-06", points[0].Label)
	assert.Equal(t, "2025-07", points[1].Label)
	assert.Equal(t, "2025-08", points[2].Label)
	assert.Equal(t, int64(12000), points[1].Expense)
	assert.Equal(t, int64(2_800_000), points[2].Income)

	// year wrap
	wrap := s.MonthlySeries(2025, 1, 3)
	require.Len(t, wrap, 3)
	assert.Equal(t, "2024-11", wrap[0].Label)
}
