// Package settings keeps the per-session profile and preference
// toggles. Everything here is in-memory and last-write-wins.
package settings

import (
	"errors"
	"strings"
	"sync"
)

var ErrEmptyName = errors.New("name must not be empty")

type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

// Notifications mirrors the toggle list on the settings screen.
type Notifications struct {
	BudgetAlerts   bool `json:"budgetAlerts"`
	DailyReminders bool `json:"dailyReminders"`
	WeeklyReports  bool `json:"weeklyReports"`
	Email          bool `json:"email"`
	Push           bool `json:"push"`
}

type Privacy struct {
	ProfilePublic bool `json:"profilePublic"`
	ShowActivity  bool `json:"showActivity"`
	AllowMessages bool `json:"allowMessages"`
}

type Settings struct {
	Profile       Profile       `json:"profile"`
	Notifications Notifications `json:"notifications"`
	Privacy       Privacy       `json:"privacy"`
}

// Store guards the current settings with a mutex. Snapshots are values,
// so readers never see a torn write.
type Store struct {
	mu      sync.Mutex
	current Settings
}

// NewStore seeds the defaults the app ships with.
func NewStore() *Store {
	return &Store{
		current: Settings{
			Profile: Profile{Name: "김민수", Email: "minsu@example.com"},
			Notifications: Notifications{
				BudgetAlerts:   true,
				DailyReminders: true,
				Push:           true,
			},
			Privacy: Privacy{ShowActivity: true, AllowMessages: true},
		},
	}
}

// Get returns the current settings snapshot.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// UpdateProfile replaces the profile. The name is required; the rest of
// the fields are taken as submitted.
func (s *Store) UpdateProfile(p Profile) (Profile, error) {
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, ErrEmptyName
	}
	p.Name = strings.TrimSpace(p.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Profile = p
	return p, nil
}

// UpdateNotifications replaces the notification toggles wholesale.
func (s *Store) UpdateNotifications(n Notifications) Notifications {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Notifications = n
	return n
}

// UpdatePrivacy replaces the privacy toggles wholesale.
func (s *Store) UpdatePrivacy(p Privacy) Privacy {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Privacy = p
	return p
}
