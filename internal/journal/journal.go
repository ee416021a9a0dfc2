// Package journal implements the daily-life feed: posts with mood,
// category, tags and media, plus likes and threaded comments.
package journal

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gagyebu/internal/confirm"
	"gagyebu/internal/core"
)

var (
	ErrNotFound        = errors.New("journal entry not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrInvalidMood     = errors.New("invalid mood")
	ErrInvalidMedia    = errors.New("invalid media item")
	ErrUnknownToken    = confirm.ErrUnknownToken
)

type Mood string

const (
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodBad     Mood = "bad"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodGood, MoodNeutral, MoodBad:
		return true
	}
	return false
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaItem is one attachment on a post.
type MediaItem struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
}

// Categories lists the selectable post categories, in display order.
var Categories = []string{"일상", "취미", "여행", "운동", "음식", "친구", "가족", "자기개발", "기타"}

// Reply is a second-level comment. Threads do not nest further.
type Reply struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"authorId"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	Posted   time.Time `json:"posted"`
}

type Comment struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"authorId"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	Posted   time.Time `json:"posted"`
	Replies  []Reply   `json:"replies"`
}

// Entry is one feed post. LikedBy is the set of user ids that have the
// post liked right now; toggling twice restores the original set.
type Entry struct {
	ID       int64               `json:"id"`
	UserID   int64               `json:"userId"`
	Date     core.Date           `json:"date"`
	Title    string              `json:"title"`
	Content  string              `json:"content"`
	Mood     Mood                `json:"mood"`
	Category string              `json:"category"`
	Tags     []string            `json:"tags"`
	Media    []MediaItem         `json:"media"`
	LikedBy  map[int64]struct{}  `json:"-"`
	Comments []Comment           `json:"comments"`
}

// Likes returns the current like count.
func (e Entry) Likes() int {
	return len(e.LikedBy)
}

// LikedByUser reports whether the given user has the post liked.
func (e Entry) LikedByUser(userID int64) bool {
	_, ok := e.LikedBy[userID]
	return ok
}

// Input carries the submitted fields for a new post.
type Input struct {
	UserID   int64
	Date     core.Date
	Title    string
	Content  string
	Mood     Mood
	Category string
	Tags     []string
	Media    []MediaItem
}

// Store holds the feed, newest first. Deleting an entry cascades to its
// likes and comment thread; deleting a comment cascades to its replies.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	pending *confirm.Registry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		pending: confirm.NewRegistry(),
		now:     time.Now,
	}
}

// Add validates the input and prepends a new entry.
func (s *Store) Add(in Input) (Entry, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Entry{}, ErrEmptyTitle
	}
	if strings.TrimSpace(in.Content) == "" {
		return Entry{}, ErrEmptyContent
	}
	if !in.Mood.Valid() {
		return Entry{}, ErrInvalidMood
	}
	for _, m := range in.Media {
		if m.URL == "" || (m.Kind != MediaImage && m.Kind != MediaVideo) {
			return Entry{}, ErrInvalidMedia
		}
	}
	category := in.Category
	if category == "" {
		category = Categories[len(Categories)-1]
	}

	e := Entry{
		UserID:   in.UserID,
		Date:     in.Date,
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Mood:     in.Mood,
		Category: category,
		Tags:     normalizeTags(in.Tags),
		Media:    append([]MediaItem(nil), in.Media...),
		LikedBy:  make(map[int64]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.entries = append([]Entry{e}, s.entries...)
	return snapshot(e), nil
}

// Get returns a copy of an entry by id.
func (s *Store) Get(id int64) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return snapshot(s.entries[idx]), nil
	}
	return Entry{}, ErrNotFound
}

// List returns a copy of the feed, newest first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = snapshot(e)
	}
	return out
}

// ToggleLike flips the user's like on the entry and returns the new
// count. Toggling twice is a no-op overall.
func (s *Store) ToggleLike(entryID, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(entryID)
	if idx < 0 {
		return 0, ErrNotFound
	}
	likes := s.entries[idx].LikedBy
	if _, ok := likes[userID]; ok {
		delete(likes, userID)
	} else {
		likes[userID] = struct{}{}
	}
	return len(likes), nil
}

// AddComment appends a top-level comment to the entry's thread.
func (s *Store) AddComment(entryID, authorID int64, author, content string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, ErrEmptyContent
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(entryID)
	if idx < 0 {
		return Comment{}, ErrNotFound
	}
	c := Comment{
		ID:       s.nextCommentID(idx),
		AuthorID: authorID,
		Author:   author,
		Content:  strings.TrimSpace(content),
		Posted:   s.now(),
	}
	s.entries[idx].Comments = append(s.entries[idx].Comments, c)
	return c, nil
}

// AddReply appends a reply under an existing comment.
func (s *Store) AddReply(entryID, commentID, authorID int64, author, content string) (Reply, error) {
	if strings.TrimSpace(content) == "" {
		return Reply{}, ErrEmptyContent
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(entryID)
	if idx < 0 {
		return Reply{}, ErrNotFound
	}
	for i := range s.entries[idx].Comments {
		c := &s.entries[idx].Comments[i]
		if c.ID != commentID {
			continue
		}
		r := Reply{
			ID:       s.nextCommentID(idx),
			AuthorID: authorID,
			Author:   author,
			Content:  strings.TrimSpace(content),
			Posted:   s.now(),
		}
		c.Replies = append(c.Replies, r)
		return r, nil
	}
	return Reply{}, ErrCommentNotFound
}

// DeleteComment removes a top-level comment and all of its replies.
func (s *Store) DeleteComment(entryID, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(entryID)
	if idx < 0 {
		return ErrNotFound
	}
	comments := s.entries[idx].Comments
	for i := range comments {
		if comments[i].ID == commentID {
			s.entries[idx].Comments = append(comments[:i], comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

// RequestDelete starts the two-step entry delete and returns a
// single-use confirmation token. Nothing changes until ConfirmDelete.
func (s *Store) RequestDelete(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return "", ErrNotFound
	}
	return s.pending.Request(id), nil
}

// ConfirmDelete consumes the token and removes the entry along with its
// likes and comment thread.
func (s *Store) ConfirmDelete(token string) error {
	id, err := s.pending.Redeem(token)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	return nil
}

// CancelDelete discards a pending confirmation.
func (s *Store) CancelDelete(token string) {
	s.pending.Cancel(token)
}

// MoodStats counts posts per mood over the whole feed.
func (s *Store) MoodStats() map[Mood]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := make(map[Mood]int)
	for _, e := range s.entries {
		stats[e.Mood]++
	}
	return stats
}

// Recent returns up to n newest entries.
func (s *Store) Recent(n int) []Entry {
	all := s.List()
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// snapshot deep-copies the mutable parts so callers cannot reach the
// store's internals.
func snapshot(e Entry) Entry {
	liked := make(map[int64]struct{}, len(e.LikedBy))
	for id := range e.LikedBy {
		liked[id] = struct{}{}
	}
	e.LikedBy = liked
	e.Tags = append([]string(nil), e.Tags...)
	e.Media = append([]MediaItem(nil), e.Media...)
	comments := make([]Comment, len(e.Comments))
	for i, c := range e.Comments {
		c.Replies = append([]Reply(nil), c.Replies...)
		comments[i] = c
	}
	e.Comments = comments
	return e
}

// indexOf is called with the lock held.
func (s *Store) indexOf(id int64) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is called with the lock held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for i := range s.entries {
		if s.entries[i].ID >= id {
			id = s.entries[i].ID + 1
		}
	}
	return id
}

// nextCommentID is called with the lock held. Comment and reply ids are
// unique within an entry's thread.
func (s *Store) nextCommentID(idx int) int64 {
	id := s.now().UnixMilli()
	for _, c := range s.entries[idx].Comments {
		if c.ID >= id {
			id = c.ID + 1
		}
		for _, r := range c.Replies {
			if r.ID >= id {
				id = r.ID + 1
			}
		}
	}
	return id
}
