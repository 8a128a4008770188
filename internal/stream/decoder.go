package stream

import (
	"encoding/json"
	"strings"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

const (
	// dataPrefix marks protocol data lines. Lines without it (comments,
	// keep-alives, log noise sharing the channel) carry no events.
	dataPrefix = "data: "

	// endSentinel is the transport-level stream terminator. Distinct from
	// a done event: either one ends the turn.
	endSentinel = "[DONE]"
)

// wireEvent accepts both discriminator spellings and both error-text
// fields seen on the wire.
type wireEvent struct {
	Type      string            `json:"type"`
	Kind      string            `json:"kind"`
	Text      string            `json:"text"`
	Content   string            `json:"content"`
	Message   string            `json:"message"`
	Citations []domain.Citation `json:"citations"`
}

// Decode parses one framed line into a stream event. ok is false for
// non-data lines and for malformed or unknown payloads. Those are
// skipped, never errors, so noise on the channel cannot kill a healthy
// turn.
func Decode(line string) (domain.StreamEvent, bool) {
	if !strings.HasPrefix(line, dataPrefix) {
		return domain.StreamEvent{}, false
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])

	if payload == endSentinel {
		return domain.StreamEvent{Type: domain.StreamEventEnd}, true
	}

	var we wireEvent
	if err := json.Unmarshal([]byte(payload), &we); err != nil {
		return domain.StreamEvent{}, false
	}

	kind := we.Type
	if kind == "" {
		kind = we.Kind
	}

	switch domain.StreamEventType(kind) {
	case domain.StreamEventToken:
		text := we.Text
		if text == "" {
			text = we.Content
		}
		return domain.StreamEvent{Type: domain.StreamEventToken, Text: text}, true

	case domain.StreamEventError:
		msg := we.Message
		if msg == "" {
			msg = we.Content
		}
		return domain.StreamEvent{Type: domain.StreamEventError, Message: msg}, true

	case domain.StreamEventDone:
		return domain.StreamEvent{Type: domain.StreamEventDone, Citations: we.Citations}, true
	}

	return domain.StreamEvent{}, false
}
