package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

func TestDecodeToken(t *testing.T) {
	ev, ok := Decode(`data: {"type":"token","text":"The "}`)
	require.True(t, ok)
	assert.Equal(t, domain.StreamEventToken, ev.Type)
	assert.Equal(t, "The ", ev.Text)
}

func TestDecodeKindDiscriminator(t *testing.T) {
	ev, ok := Decode(`data: {"kind":"token","text":"hi"}`)
	require.True(t, ok)
	assert.Equal(t, domain.StreamEventToken, ev.Type)
	assert.Equal(t, "hi", ev.Text)
}

func TestDecodeError(t *testing.T) {
	ev, ok := Decode(`data: {"type":"error","content":"model overloaded"}`)
	require.True(t, ok)
	assert.Equal(t, domain.StreamEventError, ev.Type)
	assert.Equal(t, "model overloaded", ev.Message)
}

func TestDecodeDoneWithCitations(t *testing.T) {
	ev, ok := Decode(`data: {"type":"done","citations":[{"index":1,"source":"Textbook Ch.4"}]}`)
	require.True(t, ok)
	assert.Equal(t, domain.StreamEventDone, ev.Type)
	require.Len(t, ev.Citations, 1)
	assert.Equal(t, 1, ev.Citations[0].Index)
	assert.Equal(t, "Textbook Ch.4", ev.Citations[0].Source)
}

func TestDecodeEndSentinel(t *testing.T) {
	ev, ok := Decode("data: [DONE]")
	require.True(t, ok)
	assert.Equal(t, domain.StreamEventEnd, ev.Type)
}

func TestDecodeSkipsNonDataLines(t *testing.T) {
	for _, line := range []string{
		"",
		": keep-alive",
		"event: ping",
		"random log output",
	} {
		_, ok := Decode(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestDecodeSkipsMalformedPayloads(t *testing.T) {
	for _, line := range []string{
		"data: not json",
		"data: {\"type\":\"token\",", // truncated JSON
		`data: {"type":"unknown_kind"}`,
		`data: {"no":"discriminator"}`,
	} {
		_, ok := Decode(line)
		assert.False(t, ok, "line %q", line)
	}
}
