package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	ptstrings "github.com/buckjoewild/pt-study-sop-sub002/internal/strings"
)

// View renders the TUI.
func (m ChatModel) View() string {
	if m.quitting {
		if m.ended {
			return "Session ended.\n"
		}
		return "Session left active. Resume with: ptstudy resume " + m.sess.ID + "\n"
	}

	if !m.ready {
		return fmt.Sprintf("\n  %s Connecting...", m.spinner.View())
	}

	var b strings.Builder

	header := titleStyle.Render("◆ "+string(m.sess.Mode)+" session") + "  " +
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.sess.ID)
	if m.chainLine != "" {
		header += "  " + chainStyle.Render(m.chainLine)
	}
	b.WriteString(header + "\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderStatus() + "\n")
	b.WriteString(m.renderInputArea())

	return b.String()
}

func (m ChatModel) renderInputArea() string {
	if m.turnActive {
		return fmt.Sprintf("  %s Tutoring...", m.spinner.View())
	}
	if m.input.Focused() {
		return focusedInputStyle.Width(m.width - 4).Render(m.input.View())
	}
	return inputBorderStyle.Width(m.width - 4).Render(m.input.View())
}

func (m ChatModel) renderStatus() string {
	var parts []string

	if m.sess.Topic != "" {
		parts = append(parts, ptstrings.Truncate(m.sess.Topic, 30))
	}
	parts = append(parts, fmt.Sprintf("Turns:%d", m.turns))

	if m.turnActive {
		parts = append(parts, "Ctrl+C: cancel turn")
	} else if len(m.sess.Blocks) > 0 {
		parts = append(parts, "Enter: send │ /advance: next block │ /end: finish │ Esc: leave")
	} else {
		parts = append(parts, "Enter: send │ /end: finish │ Esc: leave")
	}

	return statusStyle.Width(m.width).Render(strings.Join(parts, " │ "))
}

func (m ChatModel) renderTranscript() string {
	content := m.shared.transcript.String()
	if m.width > 4 {
		content = ptstrings.WordWrap(content, m.width-4)
	}
	return content
}

// chainHeader formats the chain position for the header line.
func chainHeader(s *domain.Session) string {
	if len(s.Blocks) == 0 {
		return ""
	}
	if s.ChainComplete {
		return "chain ✓"
	}
	block, ok := s.CurrentBlock()
	if !ok {
		return fmt.Sprintf("%d/%d", s.BlockIndex, len(s.Blocks))
	}
	return fmt.Sprintf("%d/%d %s", s.BlockIndex+1, len(s.Blocks), block.Name)
}
