package share

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gagyebu/internal/core"
	"gagyebu/internal/schedule"
)

func TestNewMessageCarriesPayload(t *testing.T) {
	e := schedule.Event{ID: 42, Date: core.NewDate(2025, 11, 15), Title: "팀 회의", Description: "월간 회의"}
	p, err := schedule.BuildShare("https://app.example.com", e, schedule.TargetTelegram)
	require.NoError(t, err)

	msg := NewMessage(p)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, schedule.TargetTelegram, msg.Target)
	assert.Equal(t, p.URL, msg.URL)
	assert.Equal(t, p.Text, msg.Text)
	assert.False(t, msg.RequestedAt.IsZero())

	other := NewMessage(p)
	assert.NotEqual(t, msg.ID, other.ID)
}

func TestDispatchWithoutClientIsANoOp(t *testing.T) {
	e := schedule.Event{ID: 1, Date: core.NewDate(2025, 11, 15), Title: "t"}
	p, err := schedule.BuildShare("https://app.example.com", e, schedule.TargetClipboard)
	require.NoError(t, err)

	// must not panic or block
	NewPublisher(nil).Dispatch(context.Background(), p)

	var nilPub *Publisher
	nilPub.Dispatch(context.Background(), p)
}
