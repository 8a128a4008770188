package stream

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pushAll(f *Framer, chunks ...string) []string {
	var lines []string
	for _, c := range chunks {
		lines = append(lines, f.Push([]byte(c))...)
	}
	return lines
}

func TestFramerSplitMidLine(t *testing.T) {
	var f Framer
	lines := pushAll(&f, "data: {\"ty", "pe\":\"token\"}\ndata: x\n")
	require.Equal(t, []string{`data: {"type":"token"}`, "data: x"}, lines)
	assert.Empty(t, f.Flush())
}

func TestFramerEmptyAndMultiLineChunks(t *testing.T) {
	var f Framer
	lines := pushAll(&f, "", "a\nb\nc", "", "\n")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestFramerCRLF(t *testing.T) {
	var f Framer
	lines := pushAll(&f, "one\r\ntwo\r", "\n")
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestFramerFlushDiscardsTruncatedTail(t *testing.T) {
	var f Framer
	lines := pushAll(&f, "complete\npartial fra")
	assert.Equal(t, []string{"complete"}, lines)
	assert.Equal(t, "partial fra", f.Flush())
	assert.Empty(t, f.Flush())
}

// Any partition of the byte stream into chunks must yield the same lines
// as framing the unsplit stream.
func TestFramerRechunkingInvariance(t *testing.T) {
	input := "data: {\"type\":\"token\",\"text\":\"The \"}\n" +
		": comment line\n" +
		"\n" +
		"data: {\"type\":\"token\",\"text\":\"sliding filament\"}\n" +
		"data: [DONE]\n" +
		"trailing junk without newline"

	var whole Framer
	want := whole.Push([]byte(input))

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		var f Framer
		var got []string
		rest := input
		for len(rest) > 0 {
			n := 1 + rng.Intn(len(rest))
			got = append(got, f.Push([]byte(rest[:n]))...)
			rest = rest[n:]
		}
		require.Equal(t, want, got, "trial %d", trial)
		require.Equal(t, "trailing junk without newline", f.Flush())
	}
}

func TestFramerLongLineAcrossManyChunks(t *testing.T) {
	var f Framer
	long := strings.Repeat("x", 10_000)
	for i := 0; i < len(long); i += 100 {
		assert.Empty(t, f.Push([]byte(long[i:i+100])))
	}
	lines := f.Push([]byte("\n"))
	require.Len(t, lines, 1)
	assert.Equal(t, long, lines[0])
}
