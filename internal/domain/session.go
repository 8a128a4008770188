// Package domain defines the core entities of the tutoring session engine:
// sessions, messages, chain blocks, artifacts, and the streaming event union.
package domain

import (
	"time"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusActive SessionStatus = "active"
	StatusEnded  SessionStatus = "ended"
)

// Session represents one tutoring session with the backend.
// The backend is the system of record; this struct is the client's cache
// of the session state, mutated only by the tutor controller.
type Session struct {
	ID            string        `json:"id"`
	Mode          Mode          `json:"mode"`
	Topic         string        `json:"topic,omitempty"`
	CourseID      string        `json:"course_id,omitempty"`
	Status        SessionStatus `json:"status"`
	TurnCount     int           `json:"turn_count"`
	StartedAt     time.Time     `json:"started_at"`
	Blocks        []ChainBlock  `json:"blocks,omitempty"`
	BlockIndex    int           `json:"block_index"`
	ChainComplete bool          `json:"chain_complete"`
	Messages      []Message     `json:"messages,omitempty"`
	Artifacts     []Artifact    `json:"artifacts,omitempty"`
}

// Ended reports whether the session has been terminally ended.
func (s *Session) Ended() bool {
	return s.Status == StatusEnded
}

// CurrentBlock returns the block at the authoritative index, if any.
func (s *Session) CurrentBlock() (ChainBlock, bool) {
	if len(s.Blocks) == 0 || s.ChainComplete || s.BlockIndex >= len(s.Blocks) {
		return ChainBlock{}, false
	}
	return s.Blocks[s.BlockIndex], true
}

// Config is the session-create configuration accepted by the backend.
type Config struct {
	CourseID        string   `json:"course_id,omitempty"`
	Mode            Mode     `json:"mode"`
	Topic           string   `json:"topic,omitempty"`
	MaterialIDs     []string `json:"material_ids,omitempty"`
	Model           string   `json:"model,omitempty"`
	WebSearch       bool     `json:"web_search,omitempty"`
	ChainTemplateID string   `json:"chain_template_id,omitempty"`
}
