// Package dashboard assembles the home screen: quick stats with
// month-over-month deltas, derived notifications and the recent feed.
// Everything here is recomputed from the stores on every call.
package dashboard

import (
	"fmt"
	"math"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/journal"
	"gagyebu/internal/ledger"
)

// QuickStats is the headline card. Change fields are percent deltas
// against the previous month and are zero when last month had no data.
type QuickStats struct {
	Year          int        `json:"year"`
	Month         int        `json:"month"`
	Income        core.Money `json:"income"`
	Expense       core.Money `json:"expense"`
	Balance       core.Money `json:"balance"`
	SavingsRate   float64    `json:"savingsRate"`
	IncomeChange  float64    `json:"incomeChange"`
	ExpenseChange float64    `json:"expenseChange"`
}

type NotificationKind string

const (
	NoticeOverBudget  NotificationKind = "over_budget"
	NoticeSavingsGoal NotificationKind = "savings_goal"
	NoticeMonthEnd    NotificationKind = "month_end"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// DefaultSavingsGoal is the savings-rate target, in percent.
const DefaultSavingsGoal = 20.0

// monthEndWindow is how many remaining days trigger the month-end
// spending check.
const monthEndWindow = 3

type Service struct {
	ledger      *ledger.Store
	journal     *journal.Store
	budget      ledger.BudgetFunc
	savingsGoal float64
}

func NewService(l *ledger.Store, j *journal.Store, budget ledger.BudgetFunc) *Service {
	return &Service{
		ledger:      l,
		journal:     j,
		budget:      budget,
		savingsGoal: DefaultSavingsGoal,
	}
}

// Stats builds the quick-stats card for year+month.
func (s *Service) Stats(year, month int) QuickStats {
	cur := s.ledger.MonthSummary(year, month, s.budget)
	prevYear, prevMonth := previousMonth(year, month)
	prev := s.ledger.MonthSummary(prevYear, prevMonth, s.budget)

	return QuickStats{
		Year:          year,
		Month:         month,
		Income:        cur.Income,
		Expense:       cur.Expense,
		Balance:       cur.Balance,
		SavingsRate:   cur.SavingsRate,
		IncomeChange:  percentChange(prev.Income.Won, cur.Income.Won),
		ExpenseChange: percentChange(prev.Expense.Won, cur.Expense.Won),
	}
}

// Notifications derives the alert list for the given day. Nothing is
// stored; dismissing happens client-side.
func (s *Service) Notifications(today core.Date) []Notification {
	sum := s.ledger.MonthSummary(today.Year(), today.Month(), s.budget)

	var out []Notification
	for _, row := range sum.ByCategory {
		if !row.OverBudget {
			continue
		}
		out = append(out, Notification{
			Kind: NoticeOverBudget,
			Message: fmt.Sprintf("%s 예산을 초과했어요 (%.0f%%)",
				row.Name, math.Round(row.Percentage)),
		})
	}

	if sum.Income.Won > 0 && sum.SavingsRate >= s.savingsGoal {
		out = append(out, Notification{
			Kind:    NoticeSavingsGoal,
			Message: fmt.Sprintf("이번 달 저축률 %.1f%%로 목표를 달성했어요!", sum.SavingsRate),
		})
	}

	if left := daysLeftInMonth(today); left <= monthEndWindow {
		out = append(out, Notification{
			Kind:    NoticeMonthEnd,
			Message: fmt.Sprintf("이번 달이 %d일 남았어요. 지출을 점검해보세요.", left),
		})
	}
	return out
}

// RecentPosts returns up to n newest journal entries for the feed card.
func (s *Service) RecentPosts(n int) []journal.Entry {
	return s.journal.Recent(n)
}

// Comparison returns the trailing monthly income/expense series ending
// at year+month.
func (s *Service) Comparison(year, month, n int) []ledger.SeriesPoint {
	return s.ledger.MonthlySeries(year, month, n)
}

func percentChange(prev, cur int64) float64 {
	if prev == 0 {
		return 0
	}
	return float64(cur-prev) / float64(prev) * 100
}

func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

func daysLeftInMonth(d core.Date) int {
	lastDay := time.Date(d.Year(), time.Month(d.Month())+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return lastDay - d.Day()
}
