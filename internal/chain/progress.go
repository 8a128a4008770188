// Package chain tracks ordered study-plan progression for a session.
//
// The index is server-authoritative: the only transition is adopting the
// index and completion flag returned by a backend advance call. The client
// never increments locally, so retried, rejected, or racing advance
// requests cannot make the UI and the backend diverge.
package chain

import (
	"fmt"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

// State is the coarse progression state.
type State int

const (
	// StateNoChain means the session was started without blocks. Permanent
	// for the session's lifetime.
	StateNoChain State = iota
	StateAt
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateNoChain:
		return "no-chain"
	case StateAt:
		return "at"
	case StateComplete:
		return "complete"
	}
	return "unknown"
}

// Progress is the client-side view of chain progression.
type Progress struct {
	total    int
	index    int
	complete bool
}

// New builds a Progress from session-start (or resume) data.
func New(blocks []domain.ChainBlock, index int, complete bool) *Progress {
	return &Progress{total: len(blocks), index: index, complete: complete}
}

// State returns the current progression state.
func (p *Progress) State() State {
	switch {
	case p.total == 0:
		return StateNoChain
	case p.complete || p.index >= p.total:
		return StateComplete
	default:
		return StateAt
	}
}

// Index returns the authoritative current block index.
func (p *Progress) Index() int { return p.index }

// Complete reports whether the chain has finished.
func (p *Progress) Complete() bool { return p.State() == StateComplete }

// CheckAdvance reports whether an advance request may be issued at all.
// Repeated requests are protocol-safe (the backend computes the next
// index), so this only rejects the two states where advancing is
// meaningless.
func (p *Progress) CheckAdvance() error {
	switch p.State() {
	case StateNoChain:
		return &domain.AdvanceError{Reason: "session has no chain configured"}
	case StateComplete:
		return &domain.AdvanceError{Reason: "chain is already complete"}
	}
	return nil
}

// Apply adopts the backend's answer to an advance request verbatim.
// Rejects indexes outside [0, total] since those can only mean the client
// and backend disagree about which chain this is.
func (p *Progress) Apply(bp domain.BlockProgress) error {
	if bp.Index < 0 || bp.Index > p.total {
		return &domain.AdvanceError{
			Reason: fmt.Sprintf("backend returned index %d for a %d-block chain", bp.Index, p.total),
		}
	}
	p.index = bp.Index
	p.complete = bp.Complete
	return nil
}
