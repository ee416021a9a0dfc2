package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := NewStore().Get()
	assert.Equal(t, "김민수", s.Profile.Name)
	assert.True(t, s.Notifications.BudgetAlerts)
	assert.False(t, s.Notifications.WeeklyReports)
	assert.True(t, s.Privacy.ShowActivity)
}

func TestUpdateProfile(t *testing.T) {
	store := NewStore()

	_, err := store.UpdateProfile(Profile{Name: "  "})
	assert.ErrorIs(t, err, ErrEmptyName)

	p, err := store.UpdateProfile(Profile{Name: " 이지은 ", Email: "jieun@example.com", Phone: "010-1234-5678"})
	require.NoError(t, err)
	assert.Equal(t, "이지은", p.Name)
	assert.Equal(t, "이지은", store.Get().Profile.Name)
}

func TestTogglesAreLastWriteWins(t *testing.T) {
	store := NewStore()

	store.UpdateNotifications(Notifications{WeeklyReports: true})
	n := store.Get().Notifications
	assert.True(t, n.WeeklyReports)
	assert.False(t, n.BudgetAlerts, "wholesale replace drops untouched toggles")

	store.UpdatePrivacy(Privacy{ProfilePublic: true})
	assert.True(t, store.Get().Privacy.ProfilePublic)
	assert.False(t, store.Get().Privacy.ShowActivity)
}
