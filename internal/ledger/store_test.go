package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gagyebu/internal/confirm"
	"gagyebu/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(nil)
}

func TestAddAutoClassifies(t *testing.T) {
	s := newTestStore(t)

	tx, err := s.Add(Input{
		Description: "스타벅스 커피",
		Amount:      4500,
		Date:        core.NewDate(2025, 8, 14),
		Type:        core.Expense,
	})
	require.NoError(t, err)
	assert.Equal(t, "식비", tx.Category)
	assert.True(t, tx.AutoClassified)
	assert.Equal(t, int64(4500), s.TotalExpense().Won)
}

func TestAddExplicitCategoryOverridesClassifier(t *testing.T) {
	s := newTestStore(t)

	// description would classify as 식비, but the user chose 기타
	tx, err := s.Add(Input{
		Description: "스타벅스 커피",
		Amount:      4500,
		Category:    "기타",
		Date:        core.NewDate(2025, 8, 14),
		Type:        core.Expense,
	})
	require.NoError(t, err)
	assert.Equal(t, "기타", tx.Category)
	assert.False(t, tx.AutoClassified)
}

func TestAddValidation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(Input{Description: "", Amount: 100, Date: core.NewDate(2025, 8, 1), Type: core.Expense})
	assert.ErrorIs(t, err, core.ErrEmptyDescription)

	_, err = s.Add(Input{Description: "x", Amount: 0, Date: core.NewDate(2025, 8, 1), Type: core.Expense})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	// failed validation leaves the store unchanged
	assert.Empty(t, s.List())
}

func TestAddNewestFirstWithDistinctIDs(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	a, err := s.Add(Input{Description: "first", Amount: 100, Date: core.NewDate(2025, 8, 1), Type: core.Expense})
	require.NoError(t, err)
	b, err := s.Add(Input{Description: "second", Amount: 200, Date: core.NewDate(2025, 8, 1), Type: core.Expense})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "same-millisecond submits must stay distinct")
	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Description)
}

func TestUpdateKeepsCategoryWhenBlank(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.Add(Input{Description: "버스", Amount: 1400, Date: core.NewDate(2025, 8, 14), Type: core.Expense})
	require.NoError(t, err)
	require.Equal(t, "교통", tx.Category)
	require.True(t, tx.AutoClassified)

	got, err := s.Update(tx.ID, Input{
		Description: "버스 요금",
		Amount:      1500,
		Date:        core.NewDate(2025, 8, 15),
		Type:        core.Expense,
	})
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, "교통", got.Category, "blank category keeps the old one")
	assert.True(t, got.AutoClassified)

	got, err = s.Update(tx.ID, Input{
		Description: "버스 요금",
		Amount:      1500,
		Category:    "기타",
		Date:        core.NewDate(2025, 8, 15),
		Type:        core.Expense,
	})
	require.NoError(t, err)
	assert.Equal(t, "기타", got.Category)
	assert.False(t, got.AutoClassified, "explicit category resets the auto flag")
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Update(42, Input{Description: "x", Amount: 1, Date: core.NewDate(2025, 8, 1), Type: core.Expense})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTwoStepDelete(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.Add(Input{Description: "쿠팡 주문", Amount: 89000, Date: core.NewDate(2025, 8, 13), Type: core.Expense})
	require.NoError(t, err)

	token, err := s.RequestDelete(tx.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// nothing is mutated until confirmation
	assert.Len(t, s.List(), 1)

	require.NoError(t, s.ConfirmDelete(token))
	assert.Empty(t, s.List())

	// the transaction is gone from every derived view
	assert.Empty(t, s.Search("쿠팡"))
	assert.Equal(t, int64(0), s.TotalExpense().Won)
	sum := s.MonthSummary(2025, 8, nil)
	assert.Empty(t, sum.ByCategory)

	// tokens are single-use
	assert.ErrorIs(t, s.ConfirmDelete(token), ErrUnknownToken)
}

func TestCancelDeleteLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	tx, err := s.Add(Input{Description: "영화", Amount: 15000, Date: core.NewDate(2025, 8, 13), Type: core.Expense})
	require.NoError(t, err)

	token, err := s.RequestDelete(tx.ID)
	require.NoError(t, err)
	s.CancelDelete(token)

	assert.ErrorIs(t, s.ConfirmDelete(token), ErrUnknownToken)
	assert.Len(t, s.List(), 1)
}

func TestConfirmDeleteExpiredToken(t *testing.T) {
	s := newTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)
	s.pending.SetClock(func() time.Time { return base })

	tx, err := s.Add(Input{Description: "영화", Amount: 15000, Date: core.NewDate(2025, 8, 13), Type: core.Expense})
	require.NoError(t, err)
	token, err := s.RequestDelete(tx.ID)
	require.NoError(t, err)

	s.pending.SetClock(func() time.Time { return base.Add(confirm.DefaultTTL + time.Second) })
	assert.ErrorIs(t, s.ConfirmDelete(token), ErrUnknownToken)
	assert.Len(t, s.List(), 1)
}

func TestRequestDeleteUnknownID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.RequestDelete(7)
	assert.ErrorIs(t, err, ErrNotFound)
}
