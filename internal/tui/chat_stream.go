package tui

import (
	"fmt"
	"strings"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

// handleStreamEvent paints one decoded turn event into the transcript.
func (m *ChatModel) handleStreamEvent(event domain.StreamEvent) {
	switch event.Type {
	case domain.StreamEventToken:
		m.shared.transcript.WriteString(tutorStyle.Render(event.Text))

	case domain.StreamEventError:
		m.shared.transcript.WriteString("\n" + errorStyle.Render("✗ "+event.Message) + "\n\n")

	case domain.StreamEventDone:
		m.shared.transcript.WriteString("\n")
		writeCitations(m.shared.transcript, event.Citations)
		m.shared.transcript.WriteString("\n")
	}
}

// writeCitations renders numbered source footnotes under an answer.
func writeCitations(sb *strings.Builder, citations []domain.Citation) {
	for _, c := range citations {
		sb.WriteString(citationStyle.Render(fmt.Sprintf("  [%d] %s", c.Index, c.Source)) + "\n")
	}
}
