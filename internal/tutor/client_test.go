package tutor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

func collect(events <-chan domain.StreamEvent) []domain.StreamEvent {
	var out []domain.StreamEvent
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func turnServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
}

func TestTurnStreamsTokens(t *testing.T) {
	server := turnServer(t, `data: {"type":"token","text":"The "}
data: {"type":"token","text":"sliding "}
data: {"type":"token","text":"filament..."}
data: {"type":"done","citations":[{"index":1,"source":"Textbook Ch.4"}]}
`)
	defer server.Close()

	client := NewClient(server.URL)
	events, err := client.Turn(context.Background(), "s1", "Explain the sliding filament theory")
	require.NoError(t, err)

	got := collect(events)
	require.Len(t, got, 4)

	var text string
	for _, ev := range got[:3] {
		require.Equal(t, domain.StreamEventToken, ev.Type)
		text += ev.Text
	}
	assert.Equal(t, "The sliding filament...", text)

	done := got[3]
	assert.Equal(t, domain.StreamEventDone, done.Type)
	require.Len(t, done.Citations, 1)
	assert.Equal(t, 1, done.Citations[0].Index)
}

func TestTurnSentinelWithoutDone(t *testing.T) {
	server := turnServer(t, `data: {"type":"token","text":"hi"}
data: [DONE]
data: {"type":"token","text":"after sentinel"}
`)
	defer server.Close()

	client := NewClient(server.URL)
	events, err := client.Turn(context.Background(), "s1", "x")
	require.NoError(t, err)

	got := collect(events)
	// Sentinel ends the stream and is itself not surfaced.
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Text)
}

func TestTurnMalformedFramesAreSkipped(t *testing.T) {
	server := turnServer(t, `data: {"type":"token","text":"a"}
data: {not json at all
: comment noise
some log line sharing the channel
data: {"type":"token","text":"b"}
data: {"type":"done"}
`)
	defer server.Close()

	client := NewClient(server.URL)
	events, err := client.Turn(context.Background(), "s1", "x")
	require.NoError(t, err)

	got := collect(events)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "b", got[1].Text)
	assert.Equal(t, domain.StreamEventDone, got[2].Type)
}

func TestTurnErrorEventEndsStream(t *testing.T) {
	server := turnServer(t, `data: {"type":"token","text":"part"}
data: {"type":"error","content":"backend exploded"}
data: {"type":"token","text":"ignored"}
`)
	defer server.Close()

	client := NewClient(server.URL)
	events, err := client.Turn(context.Background(), "s1", "x")
	require.NoError(t, err)

	got := collect(events)
	require.Len(t, got, 2)
	assert.Equal(t, domain.StreamEventError, got[1].Type)
	assert.Equal(t, "backend exploded", got[1].Message)
}

func TestTurnTransportCloseWithoutTerminator(t *testing.T) {
	server := turnServer(t, `data: {"type":"token","text":"short "}
data: {"type":"token","text":"read"}
data: {"type":"token","tex`)
	defer server.Close()

	client := NewClient(server.URL)
	events, err := client.Turn(context.Background(), "s1", "x")
	require.NoError(t, err)

	got := collect(events)
	// Truncated trailing frame is discarded, complete ones survive.
	require.Len(t, got, 2)
	assert.Equal(t, "short ", got[0].Text)
	assert.Equal(t, "read", got[1].Text)
}

func TestTurnHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Turn(context.Background(), "missing", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var cfg domain.Config
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
		assert.Equal(t, domain.ModeCore, cfg.Mode)

		json.NewEncoder(w).Encode(map[string]any{
			"id":   "sess-1",
			"mode": "Core",
			"blocks": []map[string]any{
				{"id": 1, "name": "Warmup", "category": "recall", "minutes": 5},
				{"id": 2, "name": "Deep dive", "category": "learn", "minutes": 25},
			},
			"block_index": 0,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithToken("tok"))
	sess, err := client.CreateSession(context.Background(), domain.Config{Mode: domain.ModeCore})
	require.NoError(t, err)

	assert.Equal(t, "sess-1", sess.ID)
	assert.Equal(t, domain.StatusActive, sess.Status) // defaulted
	require.Len(t, sess.Blocks, 2)
	assert.Equal(t, "Warmup", sess.Blocks[0].Name)
}

func TestCreateSessionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid mode", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateSession(context.Background(), domain.Config{Mode: "Bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestAdvance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/s1/advance", r.URL.Path)
		json.NewEncoder(w).Encode(domain.BlockProgress{Index: 2, Complete: false})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	bp, err := client.Advance(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, bp.Index)
	assert.False(t, bp.Complete)
}

func TestGetSessionRestoresTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "s1",
			"mode":       "Review",
			"topic":      "gait",
			"status":     "active",
			"turn_count": 3,
			"messages": []map[string]any{
				{"role": "user", "content": "q1"},
				{"role": "assistant", "content": "a1", "streaming": true}, // stray flag on the wire
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	sess, err := client.GetSession(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 3, sess.TurnCount)
	require.Len(t, sess.Messages, 2)
	// Restored transcript messages are always final.
	assert.False(t, sess.Messages[1].Streaming)
}

func TestCreateArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var spec domain.ArtifactSpec
		require.NoError(t, json.NewDecoder(r.Body).Decode(&spec))
		assert.Equal(t, domain.ArtifactCard, spec.Type)

		json.NewEncoder(w).Encode(map[string]any{
			"id":          "a1",
			"type":        "card",
			"title":       spec.Title,
			"content":     spec.Content,
			"external_id": "anki-99",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	a, err := client.CreateArtifact(context.Background(), "s1", domain.ArtifactSpec{
		Type:    domain.ArtifactCard,
		Title:   "Define hypertrophy",
		Content: "Hypertrophy is...",
	})
	require.NoError(t, err)
	assert.Equal(t, "anki-99", a.ExternalID)
}
