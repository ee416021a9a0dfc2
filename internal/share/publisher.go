package share

import (
	"context"
	"log/slog"

	"gagyebu/internal/schedule"
)

// Publisher is the optional share pipeline. A nil client turns every
// dispatch into a logged skip, so the app runs without a broker.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Dispatch enqueues a share payload. Errors are logged, never returned:
// the calendar response does not wait on the broker.
func (p *Publisher) Dispatch(ctx context.Context, payload schedule.SharePayload) {
	if p == nil || p.client == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping share dispatch",
			"target", payload.Target,
			"event_id", payload.EventID)
		return
	}

	msg := NewMessage(payload)
	if err := p.client.Publish(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish share message",
			"error", err,
			"id", msg.ID,
			"target", msg.Target)
	}
}
