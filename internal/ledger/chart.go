package ledger

import "fmt"

// Chart data adapters: reshape aggregation output into the tuple formats
// the pie and line renderers consume.

// Palette is the fixed chart color cycle, indexed modulo its length.
var Palette = []string{"#3b82f6", "#10b981", "#ef4444", "#8b5cf6", "#f59e0b"}

// PieSlice is one wedge of the expense donut.
type PieSlice struct {
	Name    string  `json:"name"`
	Value   int64   `json:"value"`
	Percent float64 `json:"percent"` // of the filtered total
	Color   string  `json:"color"`
}

// PieData reshapes the monthly category rows into pie slices. A
// non-empty active set keeps only those categories; percentages are
// relative to the filtered total. Colors follow the palette cycle in row
// order.
func PieData(rows []CategorySpend, active []string) []PieSlice {
	keep := func(string) bool { return true }
	if len(active) > 0 {
		set := make(map[string]struct{}, len(active))
		for _, name := range active {
			set[name] = struct{}{}
		}
		keep = func(name string) bool {
			_, ok := set[name]
			return ok
		}
	}

	var total int64
	var filtered []CategorySpend
	for _, row := range rows {
		if keep(row.Name) {
			filtered = append(filtered, row)
			total += row.Spent.Won
		}
	}

	slices := make([]PieSlice, 0, len(filtered))
	for i, row := range filtered {
		slice := PieSlice{
			Name:  row.Name,
			Value: row.Spent.Won,
			Color: Palette[i%len(Palette)],
		}
		if total > 0 {
			slice.Percent = float64(row.Spent.Won) / float64(total) * 100
		}
		slices = append(slices, slice)
	}
	return slices
}

// SeriesPoint is one month of the comparison line chart.
type SeriesPoint struct {
	Label   string `json:"label"` // "2025-08"
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Savings int64  `json:"savings"`
}

// MonthlySeries rolls up the trailing n months ending at year+month,
// oldest first, for the month-over-month comparison chart.
func (s *Store) MonthlySeries(year, month, n int) []SeriesPoint {
	if n <= 0 {
		return nil
	}
	points := make([]SeriesPoint, 0, n)
	y, m := year, month-(n-1)
	for m <= 0 {
		m += 12
		y--
	}
	for i := 0; i < n; i++ {
		sum := s.MonthSummary(y, m, nil)
		points = append(points, SeriesPoint{
			Label:   monthLabel(y, m),
			Income:  sum.Income.Won,
			Expense: sum.Expense.Won,
			Savings: sum.Balance.Won,
		})
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return points
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
