package tutor

import (
	"github.com/oklog/ulid/v2"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

// Accumulator builds one assistant message from a turn's event stream.
//
// Creating an Accumulator appends a placeholder streaming message to the
// session; it is always the last message and the only streaming one.
// Exactly one message transitions streaming to final per turn, whichever
// of done, error, or transport close arrives first.
type Accumulator struct {
	sess    *domain.Session
	idx     int
	final   bool
	errText string
}

// NewAccumulator begins a turn on the session.
func NewAccumulator(sess *domain.Session) *Accumulator {
	sess.Messages = append(sess.Messages, domain.Message{
		ID:        ulid.Make().String(),
		Role:      domain.RoleAssistant,
		Streaming: true,
	})
	return &Accumulator{sess: sess, idx: len(sess.Messages) - 1}
}

func (a *Accumulator) msg() *domain.Message {
	return &a.sess.Messages[a.idx]
}

// Apply folds one event into the in-progress message. Events after
// finalization are ignored.
func (a *Accumulator) Apply(ev domain.StreamEvent) {
	if a.final {
		return
	}

	switch ev.Type {
	case domain.StreamEventToken:
		a.msg().Content += ev.Text

	case domain.StreamEventError:
		// The error text replaces whatever accumulated; it is the
		// user-visible outcome of the turn.
		a.errText = ev.Message
		a.msg().Content = ev.Message
		a.finalize(nil)

	case domain.StreamEventDone:
		a.finalize(ev.Citations)
	}
}

// Finish ends the turn at transport close. If no done or error event was
// seen, the message finalizes with whatever text accumulated (a short
// read, not an error). Returns the final message.
func (a *Accumulator) Finish() *domain.Message {
	if !a.final {
		a.finalize(nil)
	}
	return a.msg()
}

// Errored reports whether the turn ended with an in-band error event, and
// its message text.
func (a *Accumulator) Errored() (string, bool) {
	return a.errText, a.errText != ""
}

func (a *Accumulator) finalize(citations []domain.Citation) {
	m := a.msg()
	m.Streaming = false
	// Citations attach atomically at finalization, never incrementally.
	m.Citations = citations
	a.final = true
}
