package share

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gagyebu/internal/schedule"
)

// Message is the queued form of one share request. The relay worker
// only needs the payload; it never touches the schedule store.
type Message struct {
	ID          string          `json:"id"`
	Target      schedule.Target `json:"target"`
	URL         string          `json:"url"`
	Text        string          `json:"text"`
	RequestedAt time.Time       `json:"requestedAt"`
}

func NewMessage(p schedule.SharePayload) *Message {
	return &Message{
		ID:          uuid.NewString(),
		Target:      p.Target,
		URL:         p.URL,
		Text:        p.Text,
		RequestedAt: time.Now(),
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
