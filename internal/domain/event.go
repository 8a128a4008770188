package domain

// StreamEventType discriminates the streaming event union.
type StreamEventType string

const (
	StreamEventToken StreamEventType = "token"
	StreamEventError StreamEventType = "error"
	StreamEventDone  StreamEventType = "done"

	// StreamEventEnd is the transport-level terminator (the "[DONE]"
	// sentinel line). It may arrive with or without a preceding done
	// event; either ends the turn.
	StreamEventEnd StreamEventType = "end"
)

// StreamEvent is one decoded unit of an in-flight turn. Ephemeral; never
// persisted.
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	Text      string          `json:"text,omitempty"`      // token
	Message   string          `json:"message,omitempty"`   // error
	Citations []Citation      `json:"citations,omitempty"` // done
}
