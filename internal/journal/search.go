package journal

import (
	"strings"

	"gagyebu/internal/core"
)

// SearchMode selects which fields a query matches against.
type SearchMode string

const (
	// SearchText matches the term against title and content.
	SearchText SearchMode = "text"
	// SearchTag matches the term against tags as a substring.
	SearchTag SearchMode = "tag"
	// SearchDateRange matches entries by date, both bounds inclusive.
	SearchDateRange SearchMode = "range"
)

// Query describes one feed search. A nil bound leaves that side of a
// date range open.
type Query struct {
	Mode  SearchMode
	Term  string
	Start *core.Date
	End   *core.Date
}

// Search filters the feed, preserving newest-first order. An empty text
// or tag term matches everything.
func (s *Store) Search(q Query) []Entry {
	var out []Entry
	for _, e := range s.List() {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (q Query) matches(e Entry) bool {
	switch q.Mode {
	case SearchTag:
		term := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(q.Term), "#"))
		if term == "" {
			return true
		}
		for _, t := range e.Tags {
			if strings.Contains(strings.ToLower(t), term) {
				return true
			}
		}
		return false
	case SearchDateRange:
		if q.Start != nil && e.Date.BeforeDay(*q.Start) {
			return false
		}
		if q.End != nil && q.End.BeforeDay(e.Date) {
			return false
		}
		return true
	default:
		term := strings.ToLower(strings.TrimSpace(q.Term))
		if term == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Content), term)
	}
}

// ByCategory filters the feed to one category, preserving order.
func (s *Store) ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range s.List() {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// OnDate returns entries posted on the given day.
func (s *Store) OnDate(d core.Date) []Entry {
	var out []Entry
	for _, e := range s.List() {
		if e.Date.SameDay(d) {
			out = append(out, e)
		}
	}
	return out
}
