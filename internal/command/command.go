// Package command extracts in-band artifact directives from user input.
//
// A directive asks for a study artifact (note, flashcard, concept map) to
// be materialized from the upcoming assistant turn. The user text is still
// sent to the backend unchanged; the directive only schedules a side
// effect for after the turn finalizes.
package command

import (
	"strings"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

// Directive is a recognized artifact request.
type Directive struct {
	Type domain.ArtifactType
	// Title is the text after the command token, trimmed. May be empty;
	// the caller falls back to a derived title.
	Title string
}

// keywords maps each trigger word to its artifact type. The keyword sets
// are disjoint, so a message matches at most one intent.
var keywords = map[string]domain.ArtifactType{
	"note":      domain.ArtifactNote,
	"save":      domain.ArtifactNote,
	"card":      domain.ArtifactCard,
	"flashcard": domain.ArtifactCard,
	"map":       domain.ArtifactMap,
	"diagram":   domain.ArtifactMap,
}

// Extract scans raw user input for an artifact directive. The command must
// be the first token, case-insensitive, in any of the forms
// "card ...", "/card ..." or "card: ...". Keywords appearing later in the
// message do not trigger.
func Extract(input string) (Directive, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Directive{}, false
	}

	token := trimmed
	rest := ""
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		token = trimmed[:i]
		rest = trimmed[i+1:]
	}

	token = strings.ToLower(strings.TrimPrefix(token, "/"))
	token = strings.TrimSuffix(token, ":")

	typ, ok := keywords[token]
	if !ok {
		return Directive{}, false
	}

	return Directive{Type: typ, Title: strings.TrimSpace(rest)}, true
}
