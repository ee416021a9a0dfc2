package http

import (
	"context"
	"errors"
	"net/http"

	"gagyebu/internal/auth"
	"gagyebu/internal/log"
	"gagyebu/internal/metrics"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	LoggedIn bool `json:"loggedIn"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrPasswordTooShort):
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.LoginAttempts.WithLabelValues("cancelled").Inc()
		respondError(w, http.StatusRequestTimeout, "로그인이 취소되었습니다.")
	case err != nil:
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.logger.ErrorContext(r.Context(), "Login failed",
			log.FieldError, err, log.FieldOperation, log.OpLogin)
		respondError(w, http.StatusInternalServerError, "로그인에 실패했습니다.")
	default:
		metrics.LoginAttempts.WithLabelValues("success").Inc()
		s.logger.InfoContext(r.Context(), "User logged in", log.FieldOperation, log.OpLogin)
		respondJSON(w, http.StatusOK, sessionResponse{LoggedIn: true})
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Logout failed",
			log.FieldError, err, log.FieldOperation, log.OpLogout)
		respondError(w, http.StatusInternalServerError, "로그아웃에 실패했습니다.")
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{LoggedIn: false})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	loggedIn, err := s.auth.LoggedIn(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "세션 상태를 확인할 수 없습니다.")
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{LoggedIn: loggedIn})
}

// handleAvatar proxies the external profile image, with the embedded
// placeholder on any upstream failure.
func (s *Server) handleAvatar(w http.ResponseWriter, r *http.Request) {
	img := s.avatar.Fetch(r.Context())
	w.Header().Set("Content-Type", img.ContentType)
	if img.Degraded {
		w.Header().Set("X-Avatar-Degraded", "true")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}
