// Package auth handles credential validation and the persisted login
// session flag.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Inline form errors, surfaced to the client verbatim.
var (
	ErrMissingCredentials = errors.New("이메일과 비밀번호를 입력해주세요.")
	ErrPasswordTooShort   = errors.New("비밀번호는 최소 8자 이상이어야 합니다.")
)

const minPasswordLength = 8

// ValidateCredentials checks the login form. Both fields are required
// and the password must be at least 8 characters.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Service runs the login flow against the persisted session flag.
type Service struct {
	sessions *SessionStore
	latency  time.Duration
}

// DefaultLatency approximates the upstream auth round trip.
const DefaultLatency = 500 * time.Millisecond

func NewService(sessions *SessionStore) *Service {
	return &Service{sessions: sessions, latency: DefaultLatency}
}

// Login validates the credentials and marks the session signed in. The
// call honors ctx cancellation while the auth round trip is in flight.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}

	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		return ctx.Err()
	}

	return s.sessions.SetLoggedIn(ctx, true)
}

// Logout clears the persisted flag.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.SetLoggedIn(ctx, false)
}

// LoggedIn reports the persisted session state.
func (s *Service) LoggedIn(ctx context.Context) (bool, error) {
	return s.sessions.IsLoggedIn(ctx)
}
