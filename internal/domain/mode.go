package domain

import "strings"

// Mode is the pedagogical mode a session runs in.
type Mode string

const (
	ModeCore   Mode = "Core"
	ModeDrill  Mode = "Drill"
	ModeReview Mode = "Review"
	ModeExam   Mode = "Exam"
)

// Modes lists every valid mode, in display order.
func Modes() []Mode {
	return []Mode{ModeCore, ModeDrill, ModeReview, ModeExam}
}

// ParseMode resolves a case-insensitive mode name. Returns false for
// anything outside the enumerated set; mode validity is ultimately the
// backend's call, this only catches typos before a round trip.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes() {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}
