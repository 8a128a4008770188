package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

func testStore(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSession() *domain.Session {
	return &domain.Session{
		ID:        "s1",
		Mode:      domain.ModeCore,
		Topic:     "sliding filament",
		CourseID:  "PT614",
		Status:    domain.StatusActive,
		TurnCount: 2,
		Blocks: []domain.ChainBlock{
			{ID: 1, Name: "Warmup", Category: "recall", Minutes: 5},
			{ID: 2, Name: "Deep dive", Category: "learn", Minutes: 25},
		},
		BlockIndex: 1,
		StartedAt:  time.Now().Truncate(time.Second),
	}
}

func TestSaveAndGetSession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleSession()))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCore, got.Mode)
	assert.Equal(t, "sliding filament", got.Topic)
	assert.Equal(t, 2, got.TurnCount)
	assert.Equal(t, 1, got.BlockIndex)
	require.Len(t, got.Blocks, 2)
	assert.Equal(t, "Deep dive", got.Blocks[1].Name)
}

func TestSaveSessionUpsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	sess := sampleSession()
	require.NoError(t, s.SaveSession(ctx, sess))

	sess.TurnCount = 7
	sess.Status = domain.StatusEnded
	sess.ChainComplete = true
	require.NoError(t, s.SaveSession(ctx, sess))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 7, got.TurnCount)
	assert.Equal(t, domain.StatusEnded, got.Status)
	assert.True(t, got.ChainComplete)
}

func TestListSessionsMostRecentFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		sess := sampleSession()
		sess.ID = id
		require.NoError(t, s.SaveSession(ctx, sess))
		time.Sleep(5 * time.Millisecond) // distinct updated_at
	}

	sessions, err := s.ListSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s3", sessions[0].ID)
	assert.Equal(t, "s2", sessions[1].ID)
}

func TestGetSessionCorruptBlocks(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleSession()))
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET blocks_json = '{not json' WHERE id = 's1'`)
	require.NoError(t, err)

	_, err = s.GetSession(ctx, "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode blocks")
}

func TestDeleteSession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleSession()))
	require.NoError(t, s.DeleteSession(ctx, "s1"))

	_, err := s.GetSession(ctx, "s1")
	assert.Error(t, err)
}

func TestArtifacts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, sampleSession()))

	a := &domain.Artifact{
		ID:         "a1",
		Type:       domain.ArtifactCard,
		Title:      "Define hypertrophy",
		Content:    "Hypertrophy is...",
		ExternalID: "anki-99",
		CreatedAt:  time.Now().Truncate(time.Second),
	}
	require.NoError(t, s.SaveArtifact(ctx, "s1", a))

	got, err := s.ListArtifacts(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ArtifactCard, got[0].Type)
	assert.Equal(t, "anki-99", got[0].ExternalID)

	none, err := s.ListArtifacts(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, none)
}
