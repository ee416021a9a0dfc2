package http

import (
	"errors"
	"net/http"

	"gagyebu/internal/core"
	"gagyebu/internal/log"
	"gagyebu/internal/metrics"
	"gagyebu/internal/schedule"
)

type eventRequest struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Author      string `json:"author"`
}

type eventJSON struct {
	schedule.Event
	ColorHex  string `json:"colorHex"`
	LikeCount int    `json:"likes"`
	Liked     bool   `json:"liked"`
}

func eventToJSON(e schedule.Event) eventJSON {
	if e.Comments == nil {
		e.Comments = []schedule.Comment{}
	}
	return eventJSON{
		Event:     e,
		ColorHex:  schedule.ColorHex(e.Color),
		LikeCount: e.Likes(),
		Liked:     e.LikedByUser(demoUserID),
	}
}

func eventsToJSON(events []schedule.Event) []eventJSON {
	out := make([]eventJSON, len(events))
	for i, e := range events {
		out[i] = eventToJSON(e)
	}
	return out
}

func parseEventInput(req eventRequest) (schedule.Input, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return schedule.Input{}, err
	}
	return schedule.Input{
		Date:        date,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Author:      req.Author,
	}, nil
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if date, ok, err := queryDate(r, "date"); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	} else if ok {
		respondJSON(w, http.StatusOK, emptyList(eventsToJSON(s.schedule.EventsOn(date))))
		return
	}
	respondJSON(w, http.StatusOK, emptyList(eventsToJSON(s.schedule.List())))
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := parseEventInput(req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	e, err := s.schedule.Add(in)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.InfoContext(r.Context(), "Schedule event created",
		log.FieldEventID, e.ID,
		log.FieldOperation, log.OpCreate)
	respondJSON(w, http.StatusCreated, eventToJSON(e))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	e, err := s.schedule.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	respondJSON(w, http.StatusOK, eventToJSON(e))
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := parseEventInput(req)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	e, err := s.schedule.Update(id, in)
	if errors.Is(err, schedule.ErrNotFound) {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, eventToJSON(e))
}

func (s *Server) handleToggleEventLike(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	likes, err := s.schedule.ToggleLike(id, demoUserID)
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	respondJSON(w, http.StatusOK, likeResponse{Likes: likes})
}

func (s *Server) handleAddEventComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.schedule.AddComment(id, demoUserID, req.Author, req.Content)
	if errors.Is(err, schedule.ErrNotFound) {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteEventComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	commentID, err := urlID(r, "commentID")
	if err != nil {
		respondError(w, http.StatusNotFound, "comment not found")
		return
	}

	err = s.schedule.DeleteComment(id, commentID)
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		respondError(w, http.StatusNotFound, "schedule event not found")
	case errors.Is(err, schedule.ErrCommentNotFound):
		respondError(w, http.StatusNotFound, "comment not found")
	default:
		respondJSON(w, http.StatusNoContent, nil)
	}
}

type shareRequest struct {
	Target string `json:"target"`
}

// handleShareEvent builds the payload and hands it to the publisher.
// The response never waits on the broker.
func (s *Server) handleShareEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := s.schedule.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}

	payload, err := schedule.BuildShare(s.shareBaseURL, e, schedule.Target(req.Target))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.publisher.Dispatch(r.Context(), payload)
	metrics.SharePublishes.WithLabelValues(string(payload.Target)).Inc()
	s.logger.InfoContext(r.Context(), "Schedule event shared",
		log.FieldEventID, e.ID,
		log.FieldTarget, string(payload.Target),
		log.FieldOperation, log.OpShare)

	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleEventDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	token, err := s.schedule.RequestDelete(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	respondJSON(w, http.StatusOK, deleteTokenResponse{Token: token})
}

func (s *Server) handleEventDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.schedule.ConfirmDelete(req.Token)
	if errors.Is(err, schedule.ErrUnknownToken) {
		respondError(w, http.StatusConflict, "confirmation token is not valid")
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "schedule event not found")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleEventDeleteCancel(w http.ResponseWriter, r *http.Request) {
	var req deleteTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.schedule.CancelDelete(req.Token)
	respondJSON(w, http.StatusNoContent, nil)
}
