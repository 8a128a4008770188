package render

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

func init() {
	color.NoColor = true
}

func sampleSession() *domain.Session {
	return &domain.Session{
		ID:        "sess-1",
		Mode:      domain.ModeCore,
		Topic:     "sliding filament theory",
		Status:    domain.StatusActive,
		TurnCount: 2,
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Blocks: []domain.ChainBlock{
			{ID: 1, Name: "Warmup", Minutes: 5},
			{ID: 2, Name: "Main Set", Category: "retrieval"},
			{ID: 3, Name: "Wrap"},
		},
		BlockIndex: 1,
	}
}

func TestSessionShowsChainPosition(t *testing.T) {
	out := New(false).Session(sampleSession())
	assert.Contains(t, out, "Mode:    Core")
	assert.Contains(t, out, "Chain:   2/3 Main Set")
}

func TestSessionChainComplete(t *testing.T) {
	s := sampleSession()
	s.BlockIndex = 3
	s.ChainComplete = true
	out := New(false).Session(s)
	assert.Contains(t, out, "complete (3 blocks)")
}

func TestBlocksMarksCurrent(t *testing.T) {
	out := New(false).Blocks(sampleSession())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "  1. Warmup (5m)", lines[0])
	assert.Equal(t, "* 2. Main Set", lines[1])
	assert.Equal(t, "  3. Wrap", lines[2])
}

func TestBlocksEmptyChain(t *testing.T) {
	s := sampleSession()
	s.Blocks = nil
	assert.Equal(t, "Session has no study chain", New(true).Blocks(s))
}

func TestTranscriptRendersCitationFootnotes(t *testing.T) {
	s := sampleSession()
	s.Messages = []domain.Message{
		{Role: domain.RoleUser, Content: "what is a sarcomere?"},
		{Role: domain.RoleAssistant, Content: "The contractile unit of muscle.", Citations: []domain.Citation{
			{Index: 1, Source: "anatomy/muscle.md"},
		}},
	}
	out := New(false).Transcript(s)
	assert.Contains(t, out, "you: what is a sarcomere?")
	assert.Contains(t, out, "tutor: The contractile unit of muscle.")
	assert.Contains(t, out, "  [1] anatomy/muscle.md")
}

func TestArtifacts(t *testing.T) {
	arts := []domain.Artifact{
		{Type: domain.ArtifactCard, Title: "Define hypertrophy", CreatedAt: time.Date(2026, 3, 14, 9, 45, 12, 0, time.UTC), ExternalID: "anki-99"},
	}
	out := New(false).Artifacts(arts)
	assert.Contains(t, out, "[09:45:12] card Define hypertrophy → anki-99")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "2.5s", FormatDuration(2500*time.Millisecond))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second))
}
