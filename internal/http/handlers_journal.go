package http

import (
	"errors"
	"net/http"

	"gagyebu/internal/core"
	"gagyebu/internal/journal"
	"gagyebu/internal/log"
	"gagyebu/internal/metrics"
)

type entryRequest struct {
	Title    string              `json:"title"`
	Content  string              `json:"content"`
	Mood     string              `json:"mood"`
	Category string              `json:"category"`
	Date     string              `json:"date"`
	Tags     []string            `json:"tags"`
	Media    []journal.MediaItem `json:"media"`
}

type entryJSON struct {
	journal.Entry
	LikeCount int  `json:"likes"`
	Liked     bool `json:"liked"`
}

func entryToJSON(e journal.Entry) entryJSON {
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Media == nil {
		e.Media = []journal.MediaItem{}
	}
	if e.Comments == nil {
		e.Comments = []journal.Comment{}
	}
	return entryJSON{
		Entry:     e,
		LikeCount: e.Likes(),
		Liked:     e.LikedByUser(demoUserID),
	}
}

func entriesToJSON(entries []journal.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryToJSON(e)
	}
	return out
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		respondJSON(w, http.StatusOK, emptyList(entriesToJSON(s.journal.ByCategory(category))))
		return
	}
	respondJSON(w, http.StatusOK, emptyList(entriesToJSON(s.journal.List())))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date := core.Today()
	if req.Date != "" {
		var err error
		if date, err = core.ParseDate(req.Date); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	e, err := s.journal.Add(journal.Input{
		UserID:   demoUserID,
		Date:     date,
		Title:    req.Title,
		Content:  req.Content,
		Mood:     journal.Mood(req.Mood),
		Category: req.Category,
		Tags:     req.Tags,
		Media:    req.Media,
	})
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.logger.InfoContext(r.Context(), "Journal entry created",
		log.FieldEntryID, e.ID,
		log.FieldCategory, e.Category,
		log.FieldOperation, log.OpCreate)
	respondJSON(w, http.StatusCreated, entryToJSON(e))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	e, err := s.journal.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	respondJSON(w, http.StatusOK, entryToJSON(e))
}

func (s *Server) handleSearchEntries(w http.ResponseWriter, r *http.Request) {
	q := journal.Query{
		Mode: journal.SearchMode(r.URL.Query().Get("mode")),
		Term: r.URL.Query().Get("q"),
	}
	if q.Mode == "" {
		q.Mode = journal.SearchText
	}

	if start, ok, err := queryDate(r, "start"); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	} else if ok {
		q.Start = &start
	}
	if end, ok, err := queryDate(r, "end"); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	} else if ok {
		q.End = &end
	}

	respondJSON(w, http.StatusOK, emptyList(entriesToJSON(s.journal.Search(q))))
}

func (s *Server) handleMoodStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.journal.MoodStats())
}

type likeResponse struct {
	Likes int `json:"likes"`
}

func (s *Server) handleToggleEntryLike(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	likes, err := s.journal.ToggleLike(id, demoUserID)
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	metrics.JournalLikes.Inc()
	respondJSON(w, http.StatusOK, likeResponse{Likes: likes})
}

type commentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (s *Server) handleAddEntryComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.journal.AddComment(id, demoUserID, req.Author, req.Content)
	if errors.Is(err, journal.ErrNotFound) {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleAddEntryReply(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	commentID, err := urlID(r, "commentID")
	if err != nil {
		respondError(w, http.StatusNotFound, "comment not found")
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := s.journal.AddReply(id, commentID, demoUserID, req.Author, req.Content)
	switch {
	case errors.Is(err, journal.ErrNotFound):
		respondError(w, http.StatusNotFound, "journal entry not found")
	case errors.Is(err, journal.ErrCommentNotFound):
		respondError(w, http.StatusNotFound, "comment not found")
	case err != nil:
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondJSON(w, http.StatusCreated, reply)
	}
}

func (s *Server) handleDeleteEntryComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	commentID, err := urlID(r, "commentID")
	if err != nil {
		respondError(w, http.StatusNotFound, "comment not found")
		return
	}

	err = s.journal.DeleteComment(id, commentID)
	switch {
	case errors.Is(err, journal.ErrNotFound):
		respondError(w, http.StatusNotFound, "journal entry not found")
	case errors.Is(err, journal.ErrCommentNotFound):
		respondError(w, http.StatusNotFound, "comment not found")
	default:
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func (s *Server) handleEntryDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	token, err := s.journal.RequestDelete(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	respondJSON(w, http.StatusOK, deleteTokenResponse{Token: token})
}

func (s *Server) handleEntryDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.journal.ConfirmDelete(req.Token)
	if errors.Is(err, journal.ErrUnknownToken) {
		respondError(w, http.StatusConflict, "confirmation token is not valid")
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "journal entry not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleEntryDeleteCancel(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.journal.CancelDelete(req.Token)
	respondJSON(w, http.StatusNoContent, nil)
}
