package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gagyebu/internal/auth"
	"gagyebu/internal/avatar"
	"gagyebu/internal/dashboard"
	"gagyebu/internal/journal"
	"gagyebu/internal/ledger"
	"gagyebu/internal/registry"
	"gagyebu/internal/schedule"
	"gagyebu/internal/settings"
	"gagyebu/internal/share"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	sessions, err := auth.NewSessionStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	reg := registry.NewDefault()
	led := ledger.NewStore(nil)
	jrn := journal.NewStore()
	sch := schedule.NewStore()

	srv := NewServer(Options{
		Addr:         "127.0.0.1:0",
		Ledger:       led,
		Registry:     reg,
		Journal:      jrn,
		Schedule:     sch,
		Publisher:    share.NewPublisher(nil),
		Auth:         auth.NewService(sessions),
		Avatar:       avatar.NewFetcher("http://127.0.0.1:1/avatar"),
		Dashboard:    dashboard.NewService(led, jrn, reg.Budget),
		Settings:     settings.NewStore(),
		ShareBaseURL: "https://app.example.com",
	})
	ts := httptest.NewServer(srv.Server.Handler)
	t.Cleanup(ts.Close)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestCreateTransactionAutoClassifies(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", map[string]string{
		"description": "스타벅스 커피",
		"amount":      "4,500",
		"date":        "2025-08-14",
		"type":        "expense",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tx := decodeBody[transactionJSON](t, resp)
	assert.Equal(t, "식비", tx.Category)
	assert.True(t, tx.AutoClassified)
	assert.Equal(t, int64(4500), tx.Amount)
	assert.Equal(t, "4,500", tx.AmountText)
	assert.Equal(t, "#ef4444", tx.Color)
}

func TestCreateTransactionValidation(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", map[string]string{
		"description": "x",
		"amount":      "-5",
		"date":        "2025-08-14",
		"type":        "expense",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListTransactionsEmptyIsArray(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/transactions/")
	require.NoError(t, err)
	list := decodeBody[[]transactionJSON](t, resp)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMonthSummaryCacheInvalidation(t *testing.T) {
	srv, ts := newTestServer(t)

	url := ts.URL + "/api/v1/transactions/summary?year=2025&month=8"
	resp, err := http.Get(url)
	require.NoError(t, err)
	first := decodeBody[monthSummaryJSON](t, resp)
	assert.Zero(t, first.Expense)
	assert.Equal(t, 1, srv.summaryCache.Len())

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", map[string]string{
		"description": "버스 요금",
		"amount":      "1500",
		"date":        "2025-08-14",
		"type":        "expense",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Zero(t, srv.summaryCache.Len(), "ledger mutation purges the cache")

	resp, err = http.Get(url)
	require.NoError(t, err)
	second := decodeBody[monthSummaryJSON](t, resp)
	assert.Equal(t, int64(1500), second.Expense)
	require.Len(t, second.ByCategory, 1)
	assert.Equal(t, "교통", second.ByCategory[0].Name)
	assert.Equal(t, registry.DefaultBudget, second.ByCategory[0].Budget)
}

func TestTransactionTwoStepDelete(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", map[string]string{
		"description": "영화 티켓",
		"amount":      "15000",
		"date":        "2025-08-13",
		"type":        "expense",
	})
	tx := decodeBody[transactionJSON](t, resp)

	base := fmt.Sprintf("%s/api/v1/transactions/%d", ts.URL, tx.ID)
	resp = doJSON(t, http.MethodPost, base+"/delete-request", nil)
	tok := decodeBody[deleteTokenResponse](t, resp)
	require.NotEmpty(t, tok.Token)

	resp = doJSON(t, http.MethodPost, base+"/delete-confirm", deleteTokenRequest{Token: tok.Token})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// token is single use
	resp = doJSON(t, http.MethodPost, base+"/delete-confirm", deleteTokenRequest{Token: tok.Token})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCalendarDecorations(t *testing.T) {
	_, ts := newTestServer(t)

	for _, body := range []map[string]string{
		{"description": "스타벅스 커피", "amount": "4500", "date": "2025-08-14", "type": "expense"},
		{"description": "버스 요금", "amount": "1500", "date": "2025-08-14", "type": "expense"},
		{"description": "영화 티켓", "amount": "15000", "date": "2025-08-20", "type": "expense"},
	} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", body)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(ts.URL + "/api/v1/transactions/calendar?year=2025&month=8")
	require.NoError(t, err)
	days := decodeBody[[]calendarDayJSON](t, resp)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-08-14", days[0].Date)
	assert.Equal(t, 2, days[0].Count)
	assert.ElementsMatch(t, []string{"식비", "교통"}, days[0].Categories)
	assert.Equal(t, "2025-08-20", days[1].Date)
	assert.Equal(t, 1, days[1].Count)
}

func TestJournalFlow(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/journal/", map[string]any{
		"title":   "한강 러닝",
		"content": "오늘은 5km 달렸다",
		"mood":    "good",
		"tags":    []string{"러닝", "운동"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decodeBody[entryJSON](t, resp)
	assert.Equal(t, "기타", entry.Category)

	likeURL := fmt.Sprintf("%s/api/v1/journal/%d/like", ts.URL, entry.ID)
	resp = doJSON(t, http.MethodPost, likeURL, nil)
	likes := decodeBody[likeResponse](t, resp)
	assert.Equal(t, 1, likes.Likes)

	resp = doJSON(t, http.MethodPost, likeURL, nil)
	likes = decodeBody[likeResponse](t, resp)
	assert.Zero(t, likes.Likes, "second toggle removes the like")

	resp, err := http.Get(ts.URL + "/api/v1/journal/search?mode=tag&q=러닝")
	require.NoError(t, err)
	found := decodeBody[[]entryJSON](t, resp)
	require.Len(t, found, 1)
	assert.Equal(t, "한강 러닝", found[0].Title)
}

func TestScheduleShare(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/schedule/", map[string]string{
		"date":        "2025-11-15",
		"title":       "팀 회의",
		"description": "월간 회의",
		"color":       "green",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	event := decodeBody[eventJSON](t, resp)
	assert.Equal(t, "#22c55e", event.ColorHex)

	shareURL := fmt.Sprintf("%s/api/v1/schedule/%d/share", ts.URL, event.ID)
	resp = doJSON(t, http.MethodPost, shareURL, shareRequest{Target: "telegram"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	payload := decodeBody[schedule.SharePayload](t, resp)
	assert.Equal(t, fmt.Sprintf("https://app.example.com/?schedule=%d&date=2025-11-15", event.ID), payload.URL)
	assert.Contains(t, payload.HandoffURL, "t.me/share")

	resp = doJSON(t, http.MethodPost, shareURL, shareRequest{Target: "sms"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBudgetOverrideChangesSummary(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/transactions/", map[string]string{
		"description": "쿠팡 주문",
		"amount":      "350000",
		"date":        "2025-08-10",
		"type":        "expense",
	})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/v1/settings/budgets", budgetRequest{Category: "쇼핑", Budget: 200_000})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/v1/transactions/summary?year=2025&month=8")
	require.NoError(t, err)
	sum := decodeBody[monthSummaryJSON](t, resp)
	require.Len(t, sum.ByCategory, 1)
	assert.Equal(t, "쇼핑", sum.ByCategory[0].Name)
	assert.Equal(t, int64(200_000), sum.ByCategory[0].Budget)
	assert.True(t, sum.ByCategory[0].OverBudget)
}

func TestLoginValidationCopy(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", loginRequest{})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody[errorResponse](t, resp)
	assert.Equal(t, "이메일과 비밀번호를 입력해주세요.", body.Error)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", loginRequest{Email: "a@b.c", Password: "short"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body = decodeBody[errorResponse](t, resp)
	assert.Equal(t, "비밀번호는 최소 8자 이상이어야 합니다.", body.Error)

	resp, err := http.Get(ts.URL + "/api/v1/auth/session")
	require.NoError(t, err)
	session := decodeBody[sessionResponse](t, resp)
	assert.False(t, session.LoggedIn)
}

func TestAvatarDegradesToPlaceholder(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/avatar")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "true", resp.Header.Get("X-Avatar-Degraded"))
}
