// Package stream turns the raw byte stream of a turn into decoded events:
// a carry-buffer line framer and a tagged-union event decoder.
package stream

import "strings"

// Framer assembles complete lines from chunks that arrive at arbitrary
// boundaries. A chunk may end mid-line, contain many lines, or be empty;
// the trailing fragment is carried into the next Push. Framing is
// invariant under re-chunking: any partition of the same bytes yields the
// same line sequence.
type Framer struct {
	carry strings.Builder
}

// Push appends a chunk and returns every complete line it closes, in
// order. Line terminator is "\n"; a trailing "\r" is stripped so CRLF
// streams frame identically.
func (f *Framer) Push(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	f.carry.Write(chunk)

	buf := f.carry.String()
	if !strings.Contains(buf, "\n") {
		return nil
	}

	parts := strings.Split(buf, "\n")
	f.carry.Reset()
	// Last element is the unterminated remainder (possibly empty).
	f.carry.WriteString(parts[len(parts)-1])

	lines := parts[:len(parts)-1]
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Flush discards and returns any buffered fragment. A truncated final
// frame is not a valid event and is never surfaced as a line; the return
// value exists only so callers can log what was dropped.
func (f *Framer) Flush() string {
	rest := f.carry.String()
	f.carry.Reset()
	return rest
}
