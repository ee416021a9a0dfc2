package schedule

import (
	"fmt"
	"net/url"

	"gagyebu/internal/core"
)

// Target names where a share payload is headed.
type Target string

const (
	TargetClipboard Target = "clipboard"
	TargetKakao     Target = "kakao"
	TargetTelegram  Target = "telegram"
)

func (t Target) Valid() bool {
	switch t {
	case TargetClipboard, TargetKakao, TargetTelegram:
		return true
	}
	return false
}

// SharePayload is everything a client needs to hand an event to a
// target: the deep link back into the app, the localized text block and
// the target-specific handoff URL (empty for the clipboard).
type SharePayload struct {
	Target     Target `json:"target"`
	EventID    int64  `json:"eventId"`
	URL        string `json:"url"`
	Text       string `json:"text"`
	HandoffURL string `json:"handoffUrl,omitempty"`
}

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// koreanDate renders a date the way the calendar shows it, weekday
// included: "2025년 8월 14일 (목)".
func koreanDate(d core.Date) string {
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", d.Year(), d.Month(), d.Day(), koreanWeekdays[d.Weekday()])
}

// DeepLink builds the in-app link that reopens this event on its date.
func DeepLink(base string, e Event) string {
	return fmt.Sprintf("%s/?schedule=%d&date=%s", base, e.ID, e.Date.ISO())
}

// BuildShare assembles the payload for one event and target. Payload
// construction is pure; delivery happens elsewhere.
func BuildShare(base string, e Event, target Target) (SharePayload, error) {
	if !target.Valid() {
		return SharePayload{}, fmt.Errorf("unknown share target %q", target)
	}

	link := DeepLink(base, e)
	text := fmt.Sprintf("%s\n%s\n%s", e.Title, e.Description, koreanDate(e.Date))

	p := SharePayload{
		Target:  target,
		EventID: e.ID,
		URL:     link,
		Text:    text,
	}
	switch target {
	case TargetKakao:
		p.HandoffURL = "https://sharer.kakao.com/talk/friends/picker/link?url=" +
			url.QueryEscape(link) + "&text=" + url.QueryEscape(text)
	case TargetTelegram:
		p.HandoffURL = "https://t.me/share/url?url=" +
			url.QueryEscape(link) + "&text=" + url.QueryEscape(text)
	}
	return p, nil
}
