package http

import (
	"net/http"

	"gagyebu/internal/core"
	"gagyebu/internal/dashboard"
)

func (s *Server) handleQuickStats(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.dashboard.Stats(year, month))
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	today := core.Today()
	if d, ok, err := queryDate(r, "date"); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	} else if ok {
		today = d
	}
	notifications := s.dashboard.Notifications(today)
	if notifications == nil {
		notifications = []dashboard.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleRecentPosts(w http.ResponseWriter, r *http.Request) {
	n := queryInt(r, "limit", 3)
	respondJSON(w, http.StatusOK, emptyList(entriesToJSON(s.dashboard.RecentPosts(n))))
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	year, month, err := queryYearMonth(r)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	n := queryInt(r, "months", 6)
	respondJSON(w, http.StatusOK, emptyList(s.dashboard.Comparison(year, month, n)))
}
