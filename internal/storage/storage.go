// Package storage is the sqlite-backed local cache of session
// descriptors and artifacts. The backend is the system of record; this
// cache only exists so listing and resume lookups work offline.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

type Storage struct {
	db   *sql.DB
	path string
}

// Verify Storage implements domain.Store
var _ domain.Store = (*Storage)(nil)

func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ptstudy.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Storage{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		topic TEXT,
		course_id TEXT,
		status TEXT NOT NULL,
		turn_count INTEGER NOT NULL DEFAULT 0,
		block_index INTEGER NOT NULL DEFAULT 0,
		chain_complete INTEGER NOT NULL DEFAULT 0,
		blocks_json TEXT,
		started_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);

	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		external_id TEXT,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_session ON artifacts(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Session operations

// SaveSession inserts or refreshes a session descriptor. Messages are not
// cached; transcripts live with the backend.
func (s *Storage) SaveSession(ctx context.Context, sess *domain.Session) error {
	blocksJSON, _ := json.Marshal(sess.Blocks)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, mode, topic, course_id, status, turn_count, block_index, chain_complete, blocks_json, started_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			turn_count = excluded.turn_count,
			block_index = excluded.block_index,
			chain_complete = excluded.chain_complete,
			updated_at = excluded.updated_at
	`, sess.ID, string(sess.Mode), sess.Topic, sess.CourseID, string(sess.Status),
		sess.TurnCount, sess.BlockIndex, sess.ChainComplete, string(blocksJSON),
		sess.StartedAt, time.Now())
	return err
}

func (s *Storage) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, mode, topic, course_id, status, turn_count, block_index, chain_complete, blocks_json, started_at
		FROM sessions WHERE id = ?
	`, id)
	return scanSession(row)
}

func (s *Storage) ListSessions(ctx context.Context, limit int) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, topic, course_id, status, turn_count, block_index, chain_complete, blocks_json, started_at
		FROM sessions ORDER BY updated_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var sess domain.Session
	var topic, courseID, blocksJSON sql.NullString
	var chainComplete int

	err := row.Scan(&sess.ID, &sess.Mode, &topic, &courseID, &sess.Status,
		&sess.TurnCount, &sess.BlockIndex, &chainComplete, &blocksJSON, &sess.StartedAt)
	if err != nil {
		return nil, err
	}

	sess.Topic = topic.String
	sess.CourseID = courseID.String
	sess.ChainComplete = chainComplete != 0
	if blocksJSON.Valid && blocksJSON.String != "" {
		if err := json.Unmarshal([]byte(blocksJSON.String), &sess.Blocks); err != nil {
			return nil, fmt.Errorf("decode blocks for session %s: %w", sess.ID, err)
		}
	}
	return &sess, nil
}

// Artifact operations

func (s *Storage) SaveArtifact(ctx context.Context, sessionID string, a *domain.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, session_id, type, title, content, external_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			external_id = excluded.external_id
	`, a.ID, sessionID, string(a.Type), a.Title, a.Content, a.ExternalID, a.CreatedAt)
	return err
}

func (s *Storage) ListArtifacts(ctx context.Context, sessionID string) ([]*domain.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, content, external_id, created_at
		FROM artifacts WHERE session_id = ? ORDER BY created_at ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []*domain.Artifact
	for rows.Next() {
		var a domain.Artifact
		var externalID sql.NullString
		if err := rows.Scan(&a.ID, &a.Type, &a.Title, &a.Content, &externalID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ExternalID = externalID.String
		artifacts = append(artifacts, &a)
	}
	return artifacts, rows.Err()
}
