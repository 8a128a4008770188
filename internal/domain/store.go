package domain

import "context"

// Store is the local cache of session descriptors and artifacts. The
// backend stays authoritative; the cache only makes `sessions` listing and
// resume lookups work offline.
type Store interface {
	SaveSession(ctx context.Context, sess *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, limit int) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error

	SaveArtifact(ctx context.Context, sessionID string, a *Artifact) error
	ListArtifacts(ctx context.Context, sessionID string) ([]*Artifact, error)

	Close() error
}
