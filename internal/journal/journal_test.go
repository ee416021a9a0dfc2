package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gagyebu/internal/core"
)

func addEntry(t *testing.T, s *Store, in Input) Entry {
	t.Helper()
	e, err := s.Add(in)
	require.NoError(t, err)
	return e
}

func TestAddValidation(t *testing.T) {
	s := NewStore()
	d := core.NewDate(2025, 8, 14)

	_, err := s.Add(Input{Title: "", Content: "x", Mood: MoodGood, Date: d})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = s.Add(Input{Title: "x", Content: "  ", Mood: MoodGood, Date: d})
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = s.Add(Input{Title: "x", Content: "y", Mood: "great", Date: d})
	assert.ErrorIs(t, err, ErrInvalidMood)

	_, err = s.Add(Input{Title: "x", Content: "y", Mood: MoodGood, Date: d, Media: []MediaItem{{URL: "http://a/b.png", Kind: "gif"}}})
	assert.ErrorIs(t, err, ErrInvalidMedia)

	assert.Empty(t, s.List())
}

func TestAddDefaultsAndTagNormalization(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{
		UserID:  1,
		Date:    core.NewDate(2025, 8, 14),
		Title:   "한강 러닝",
		Content: "오늘은 5km",
		Mood:    MoodGood,
		Tags:    []string{"#러닝", "운동", "러닝", " "},
	})

	assert.Equal(t, "기타", e.Category, "blank category falls back to the last selectable one")
	assert.Equal(t, []string{"러닝", "운동"}, e.Tags)
}

func TestToggleLikeIsIdempotentInPairs(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "t", Content: "c", Mood: MoodNeutral})

	n, err := s.ToggleLike(e.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.ToggleLike(e.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.ToggleLike(e.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.False(t, got.LikedByUser(42))
	assert.True(t, got.LikedByUser(7))
}

func TestCommentThread(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "t", Content: "c", Mood: MoodGood})

	c, err := s.AddComment(e.ID, 2, "민수", "좋아요!")
	require.NoError(t, err)
	r, err := s.AddReply(e.ID, c.ID, 1, "지은", "고마워요")
	require.NoError(t, err)
	assert.NotEqual(t, c.ID, r.ID)

	got, err := s.Get(e.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	require.Len(t, got.Comments[0].Replies, 1)
	assert.Equal(t, "고마워요", got.Comments[0].Replies[0].Content)

	// deleting the comment takes its replies with it
	require.NoError(t, s.DeleteComment(e.ID, c.ID))
	got, err = s.Get(e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)

	_, err = s.AddReply(e.ID, c.ID, 2, "민수", "?")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestTwoStepDeleteCascades(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "t", Content: "c", Mood: MoodBad})
	_, err := s.ToggleLike(e.ID, 9)
	require.NoError(t, err)
	_, err = s.AddComment(e.ID, 2, "민수", "힘내요")
	require.NoError(t, err)

	token, err := s.RequestDelete(e.ID)
	require.NoError(t, err)

	// nothing changes until the confirmation
	assert.Len(t, s.List(), 1)

	require.NoError(t, s.ConfirmDelete(token))
	assert.Empty(t, s.List())
	_, err = s.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.ConfirmDelete(token), ErrUnknownToken)
}

func TestCancelDeleteKeepsEntry(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "t", Content: "c", Mood: MoodGood})

	token, err := s.RequestDelete(e.ID)
	require.NoError(t, err)
	s.CancelDelete(token)

	assert.ErrorIs(t, s.ConfirmDelete(token), ErrUnknownToken)
	assert.Len(t, s.List(), 1)
}

func TestSearchModes(t *testing.T) {
	s := NewStore()
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 10), Title: "제주 여행", Content: "바다", Mood: MoodGood, Category: "여행", Tags: []string{"제주", "바다"}})
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 12), Title: "홈트", Content: "스쿼트 100개", Mood: MoodNeutral, Category: "운동", Tags: []string{"홈트"}})
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "바다 사진 정리", Content: "여행 사진", Mood: MoodGood, Category: "일상"})

	// text mode matches title or content, case-insensitively
	got := s.Search(Query{Mode: SearchText, Term: "바다"})
	require.Len(t, got, 2)
	assert.Equal(t, "바다 사진 정리", got[0].Title)
	assert.Equal(t, "제주 여행", got[1].Title)

	// tag mode is a substring match, with or without the leading #
	got = s.Search(Query{Mode: SearchTag, Term: "#제주"})
	require.Len(t, got, 1)
	assert.Equal(t, "제주 여행", got[0].Title)

	got = s.Search(Query{Mode: SearchTag, Term: "홈"})
	require.Len(t, got, 1)
	assert.Equal(t, "홈트", got[0].Title)

	// range bounds are inclusive; a nil bound is open
	start := core.NewDate(2025, 8, 12)
	got = s.Search(Query{Mode: SearchDateRange, Start: &start})
	assert.Len(t, got, 2)
	end := core.NewDate(2025, 8, 10)
	got = s.Search(Query{Mode: SearchDateRange, End: &end})
	require.Len(t, got, 1)
	assert.Equal(t, "제주 여행", got[0].Title)

	// empty term matches everything
	assert.Len(t, s.Search(Query{Mode: SearchText}), 3)
}

func TestTagSearchMatchesSubstrings(t *testing.T) {
	s := NewStore()
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 10), Title: "아침 조깅", Content: "공원 한 바퀴", Mood: MoodGood, Tags: []string{"러닝기록"}})
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 11), Title: "독서", Content: "소설 완독", Mood: MoodNeutral, Tags: []string{"책"}})

	got := s.Search(Query{Mode: SearchTag, Term: "러닝"})
	require.Len(t, got, 1)
	assert.Equal(t, "아침 조깅", got[0].Title)

	assert.Empty(t, s.Search(Query{Mode: SearchTag, Term: "수영"}))
}

func TestMoodStatsAndRecent(t *testing.T) {
	s := NewStore()
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 10), Title: "a", Content: "x", Mood: MoodGood})
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 11), Title: "b", Content: "x", Mood: MoodGood})
	addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 12), Title: "c", Content: "x", Mood: MoodBad})

	stats := s.MoodStats()
	assert.Equal(t, 2, stats[MoodGood])
	assert.Equal(t, 1, stats[MoodBad])
	assert.Zero(t, stats[MoodNeutral])

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Title)
	assert.Equal(t, "b", recent[1].Title)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore()
	e := addEntry(t, s, Input{UserID: 1, Date: core.NewDate(2025, 8, 14), Title: "t", Content: "c", Mood: MoodGood, Tags: []string{"x"}})

	got, err := s.Get(e.ID)
	require.NoError(t, err)
	got.LikedBy[99] = struct{}{}
	got.Tags[0] = "mutated"

	fresh, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.Likes())
	assert.Equal(t, "x", fresh.Tags[0])
}
