package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gagyebu/internal/core"
	"gagyebu/internal/ledger"
	"gagyebu/internal/log"
	"gagyebu/internal/metrics"
)

type transactionRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	PaymentMethod string `json:"paymentMethod"`
}

type transactionJSON struct {
	ID             int64  `json:"id"`
	Description    string `json:"description"`
	Amount         int64  `json:"amount"`
	AmountText     string `json:"amountText"`
	Category       string `json:"category"`
	Color          string `json:"color"`
	Date           string `json:"date"`
	Type           string `json:"type"`
	PaymentMethod  string `json:"paymentMethod"`
	AutoClassified bool   `json:"autoClassified"`
}

func (s *Server) transactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:             tx.ID,
		Description:    tx.Description,
		Amount:         tx.Amount.Won,
		AmountText:     tx.Amount.Korean(),
		Category:       tx.Category,
		Color:          s.registry.CategoryColor(tx.Type, tx.Category),
		Date:           tx.Date.ISO(),
		Type:           string(tx.Type),
		PaymentMethod:  tx.PaymentMethod,
		AutoClassified: tx.AutoClassified,
	}
}

func (s *Server) transactionsJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txs))
	for i, tx := range txs {
		out[i] = s.transactionJSON(tx)
	}
	return out
}

// parseTransactionInput maps the request body onto a ledger input. The
// string message of the returned error is shown inline on the form.
func parseTransactionInput(req transactionRequest) (ledger.Input, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return ledger.Input{}, err
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return ledger.Input{}, err
	}
	return ledger.Input{
		Description:   req.Description,
		Amount:        amount,
		Category:      req.Category,
		Date:          date,
		Type:          core.TxType(strings.ToLower(strings.TrimSpace(req.Type))),
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")

	date, hasDate, err := queryDate(r, "date")
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var txs []core.Transaction
	switch {
	case hasDate && term != "":
		txs = s.ledger.SearchOnDate(term, date)
	case hasDate:
		txs = s.ledger.OnDate(date)
	case term != "":
		txs = s.ledger.Search(term)
	case q.Get("year") != "" || q.Get("month") != "":
		year, month, err := queryYearMonth(r)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if category := q.Get("category"); category != "" {
			txs = s.ledger.ByCategoryInMonth(category, year, month)
		} else {
			txs = s.ledger.InMonth(year, month)
		}
	default:
		txs = s.ledger.List()
	}

	respondJSON(w, http.StatusOK, emptyList(s.transactionsJSON(txs)))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := parseTransactionInput(req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx, err := s.ledger.Add(in)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateSummaries()

	metrics.TransactionsCreated.WithLabelValues(string(tx.Type)).Inc()
	if tx.AutoClassified {
		metrics.TransactionsAutoClassified.Inc()
	}
	s.logger.InfoContext(r.Context(), "Transaction created",
		log.FieldTxID, tx.ID,
		log.FieldCategory, tx.Category,
		log.FieldAmountWon, tx.Amount.Won,
		log.FieldOperation, log.OpCreate)

	respondJSON(w, http.StatusCreated, s.transactionJSON(tx))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	tx, err := s.ledger.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	respondJSON(w, http.StatusOK, s.transactionJSON(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := parseTransactionInput(req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx, err := s.ledger.Update(id, in)
	if errors.Is(err, ledger.ErrNotFound) {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateSummaries()
	respondJSON(w, http.StatusOK, s.transactionJSON(tx))
}

type deleteTokenResponse struct {
	Token string `json:"token"`
}

type deleteTokenRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleTransactionDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	token, err := s.ledger.RequestDelete(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	respondJSON(w, http.StatusOK, deleteTokenResponse{Token: token})
}

func (s *Server) handleTransactionDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.ledger.ConfirmDelete(req.Token)
	if errors.Is(err, ledger.ErrUnknownToken) {
		respondError(w, http.StatusConflict, "confirmation token is not valid")
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "transaction not found")
		return
	}
	s.invalidateSummaries()
	metrics.TransactionsDeleted.Inc()
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleTransactionDeleteCancel(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.ledger.CancelDelete(req.Token)
	respondJSON(w, http.StatusNoContent, nil)
}

type categorySpendJSON struct {
	Name       string  `json:"name"`
	Spent      int64   `json:"spent"`
	Budget     int64   `json:"budget"`
	Percentage float64 `json:"percentage"`
	OverBudget bool    `json:"overBudget"`
	Remaining  int64   `json:"remaining"`
}

type monthSummaryJSON struct {
	Year        int                 `json:"year"`
	Month       int                 `json:"month"`
	Income      int64               `json:"income"`
	IncomeText  string              `json:"incomeText"`
	Expense     int64               `json:"expense"`
	ExpenseText string              `json:"expenseText"`
	Balance     int64               `json:"balance"`
	BalanceText string              `json:"balanceText"`
	SavingsRate float64             `json:"savingsRate"`
	ByCategory  []categorySpendJSON `json:"byCategory"`
}

func monthSummaryToJSON(sum ledger.MonthSummary) monthSummaryJSON {
	out := monthSummaryJSON{
		Year:        sum.Year,
		Month:       sum.Month,
		Income:      sum.Income.Won,
		IncomeText:  sum.Income.Korean(),
		Expense:     sum.Expense.Won,
		ExpenseText: sum.Expense.Korean(),
		Balance:     sum.Balance.Won,
		BalanceText: sum.Balance.Korean(),
		SavingsRate: sum.SavingsRate,
		ByCategory:  []categorySpendJSON{},
	}
	for _, row := range sum.ByCategory {
		out.ByCategory = append(out.ByCategory, categorySpendJSON{
			Name:       row.Name,
			Spent:      row.Spent.Won,
			Budget:     row.Budget.Won,
			Percentage: row.Percentage,
			OverBudget: row.OverBudget,
			Remaining:  row.Remaining.Won,
		})
	}
	return out
}

// monthSummary serves from the LRU cache when it can.
func (s *Server) monthSummary(year, month int) ledger.MonthSummary {
	key := summaryKey(year, month)
	if sum, ok := s.summaryCache.Get(key); ok {
		metrics.CacheHits.Inc()
		return sum
	}
	metrics.CacheMisses.Inc()
	sum := s.ledger.MonthSummary(year, month, s.registry.Budget)
	s.summaryCache.Set(key, sum)
	return sum
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, monthSummaryToJSON(s.monthSummary(year, month)))
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sum := s.monthSummary(year, month)
	var active []string
	if v := r.URL.Query()["category"]; len(v) > 0 {
		active = v
	} else {
		for _, row := range sum.ByCategory {
			active = append(active, row.Name)
		}
	}
	respondJSON(w, http.StatusOK, emptyList(ledger.PieData(sum.ByCategory, active)))
}

func (s *Server) handleMonthlySeries(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	n := queryInt(r, "months", 6)
	respondJSON(w, http.StatusOK, emptyList(s.ledger.MonthlySeries(year, month, n)))
}

type calendarDayJSON struct {
	Date       string   `json:"date"`
	Count      int      `json:"count"`
	Categories []string `json:"categories"`
}

// handleCalendar returns per-day transaction counts and up to three
// category names for each day of the month that has activity, feeding
// the calendar cell decorations.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	days := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var out []calendarDayJSON
	for day := 1; day <= days; day++ {
		d := core.NewDate(year, month, day)
		count := s.ledger.CountOn(d)
		if count == 0 {
			continue
		}
		cats := s.ledger.CategoriesOn(d, 3)
		if cats == nil {
			cats = []string{}
		}
		out = append(out, calendarDayJSON{Date: d.ISO(), Count: count, Categories: cats})
	}
	respondJSON(w, http.StatusOK, emptyList(out))
}
