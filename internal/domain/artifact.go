package domain

import "time"

// ArtifactType classifies what kind of study object an artifact is.
type ArtifactType string

const (
	ArtifactNote ArtifactType = "note"
	ArtifactCard ArtifactType = "card"
	ArtifactMap  ArtifactType = "map"
)

// Artifact is a durable study object materialized from a turn's content.
// Artifacts are append-only within a session from the client's view.
type Artifact struct {
	ID         string       `json:"id"`
	Type       ArtifactType `json:"type"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"created_at"`
	ExternalID string       `json:"external_id,omitempty"`
}

// ArtifactSpec is the request to materialize an artifact.
type ArtifactSpec struct {
	Type    ArtifactType `json:"type"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
}
