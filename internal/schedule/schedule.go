// Package schedule implements the shared calendar: events keyed by day
// with likes and comments, and share payloads for handing an event to
// an external target.
package schedule

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gagyebu/internal/confirm"
	"gagyebu/internal/core"
)

var (
	ErrNotFound        = errors.New("schedule event not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrUnknownToken    = confirm.ErrUnknownToken
)

// DefaultColor is applied when an event comes in without one.
const DefaultColor = "blue"

// Colors maps the selectable event color names to their hex values.
var Colors = map[string]string{
	"blue":   "#3b82f6",
	"green":  "#22c55e",
	"red":    "#ef4444",
	"yellow": "#eab308",
	"purple": "#a855f7",
	"pink":   "#ec4899",
	"orange": "#f97316",
	"gray":   "#6b7280",
}

// ColorHex resolves a color name, falling back to the default.
func ColorHex(name string) string {
	if hex, ok := Colors[name]; ok {
		return hex
	}
	return Colors[DefaultColor]
}

type Comment struct {
	ID       int64     `json:"id"`
	AuthorID int64     `json:"authorId"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	Posted   time.Time `json:"posted"`
}

// Event is one calendar entry. Several events may share a date.
type Event struct {
	ID          int64              `json:"id"`
	Date        core.Date          `json:"date"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Color       string             `json:"color"`
	Author      string             `json:"author"`
	LikedBy     map[int64]struct{} `json:"-"`
	Comments    []Comment          `json:"comments"`
}

func (e Event) Likes() int {
	return len(e.LikedBy)
}

func (e Event) LikedByUser(userID int64) bool {
	_, ok := e.LikedBy[userID]
	return ok
}

// Input carries the submitted fields for a create or update.
type Input struct {
	Date        core.Date
	Title       string
	Description string
	Color       string
	Author      string
}

// Store holds all events, ordered by insertion, newest first.
type Store struct {
	mu      sync.Mutex
	events  []Event
	pending *confirm.Registry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		pending: confirm.NewRegistry(),
		now:     time.Now,
	}
}

// Add validates the input and prepends a new event.
func (s *Store) Add(in Input) (Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Event{}, ErrEmptyTitle
	}
	if in.Date.IsZero() {
		return Event{}, core.ErrInvalidDate
	}
	color := in.Color
	if _, ok := Colors[color]; !ok {
		color = DefaultColor
	}

	e := Event{
		Date:        in.Date,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Color:       color,
		Author:      in.Author,
		LikedBy:     make(map[int64]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.events = append([]Event{e}, s.events...)
	return snapshot(e), nil
}

// Update replaces the editable fields of an event. Likes and comments
// ride along untouched.
func (s *Store) Update(id int64, in Input) (Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Event{}, ErrEmptyTitle
	}
	if in.Date.IsZero() {
		return Event{}, core.ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Event{}, ErrNotFound
	}
	e := &s.events[idx]
	e.Date = in.Date
	e.Title = strings.TrimSpace(in.Title)
	e.Description = strings.TrimSpace(in.Description)
	if _, ok := Colors[in.Color]; ok {
		e.Color = in.Color
	}
	return snapshot(*e), nil
}

// Get returns a copy of an event by id.
func (s *Store) Get(id int64) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return snapshot(s.events[idx]), nil
	}
	return Event{}, ErrNotFound
}

// List returns a copy of all events.
func (s *Store) List() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	for i, e := range s.events {
		out[i] = snapshot(e)
	}
	return out
}

// EventsOn returns the events scheduled for the given day.
func (s *Store) EventsOn(d core.Date) []Event {
	var out []Event
	for _, e := range s.List() {
		if e.Date.SameDay(d) {
			out = append(out, e)
		}
	}
	return out
}

// ToggleLike flips the user's like on the event and returns the new
// count.
func (s *Store) ToggleLike(eventID, userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(eventID)
	if idx < 0 {
		return 0, ErrNotFound
	}
	likes := s.events[idx].LikedBy
	if _, ok := likes[userID]; ok {
		delete(likes, userID)
	} else {
		likes[userID] = struct{}{}
	}
	return len(likes), nil
}

// AddComment appends a comment to the event.
func (s *Store) AddComment(eventID, authorID int64, author, content string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, errors.New("comment must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(eventID)
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
	s.events[idx].Comments = append(s.events[idx].Comments, c)
	return c, nil
}

// DeleteComment removes a comment from the event.
func (s *Store) DeleteComment(eventID, commentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(eventID)
	if idx < 0 {
		return ErrNotFound
	}
	comments := s.events[idx].Comments
	for i := range comments {
		if comments[i].ID == commentID {
			s.events[idx].Comments = append(comments[:i], comments[i+1:]...)
			return nil
		}
	}
	return ErrCommentNotFound
}

// RequestDelete starts the two-step event delete.
func (s *Store) RequestDelete(id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return "", ErrNotFound
	}
	return s.pending.Request(id), nil
}

// ConfirmDelete consumes the token and removes the event with its likes
// and comments.
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
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	return nil
}

// CancelDelete discards a pending confirmation.
func (s *Store) CancelDelete(token string) {
	s.pending.Cancel(token)
}

func snapshot(e Event) Event {
	liked := make(map[int64]struct{}, len(e.LikedBy))
	for id := range e.LikedBy {
		liked[id] = struct{}{}
	}
	e.LikedBy = liked
	e.Comments = append([]Comment(nil), e.Comments...)
	return e
}

// indexOf is called with the lock held.
func (s *Store) indexOf(id int64) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID is called with the lock held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for i := range s.events {
		if s.events[i].ID >= id {
			id = s.events[i].ID + 1
		}
	}
	return id
}

// nextCommentID is called with the lock held.
func (s *Store) nextCommentID(idx int) int64 {
	id := s.now().UnixMilli()
	for _, c := range s.events[idx].Comments {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	return id
}
