// Package render provides output formatting for CLI commands.
// Separates presentation from session logic.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	ptstrings "github.com/buckjoewild/pt-study-sop-sub002/internal/strings"
)

// Renderer handles output formatting for session state.
type Renderer struct {
	pretty bool
}

// New creates a new renderer. Pretty mode adds color and rules for
// interactive terminals; plain mode stays grep-friendly.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Sessions formats a session list, most recent first.
func (r *Renderer) Sessions(sessions []domain.Session) string {
	if len(sessions) == 0 {
		return "No sessions found"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Study Sessions\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, s := range sessions {
		r.formatSessionLine(&sb, s)
	}

	return sb.String()
}

func (r *Renderer) formatSessionLine(sb *strings.Builder, s domain.Session) {
	timeStr := s.StartedAt.Format("Jan 02 15:04")

	status := color.GreenString("●")
	if s.Ended() {
		status = color.HiBlackString("○")
	}

	topic := s.Topic
	if topic == "" {
		topic = "(no topic)"
	}

	if r.pretty {
		fmt.Fprintf(sb, "%s %s %s %s  %s (%d turns)\n",
			status, color.HiBlackString(timeStr), s.ID, color.YellowString(string(s.Mode)), ptstrings.Truncate(topic, 40), s.TurnCount)
	} else {
		fmt.Fprintf(sb, "[%s] %s %s %s %s turns=%d\n", timeStr, s.ID, s.Status, s.Mode, topic, s.TurnCount)
	}
}

// Session formats a single session's header and chain position.
func (r *Renderer) Session(s *domain.Session) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Session %s\n", s.ID))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
	} else {
		fmt.Fprintf(&sb, "Session %s\n", s.ID)
	}

	fmt.Fprintf(&sb, "  Mode:    %s\n", s.Mode)
	if s.Topic != "" {
		fmt.Fprintf(&sb, "  Topic:   %s\n", s.Topic)
	}
	if s.CourseID != "" {
		fmt.Fprintf(&sb, "  Course:  %s\n", s.CourseID)
	}
	fmt.Fprintf(&sb, "  Status:  %s\n", s.Status)
	fmt.Fprintf(&sb, "  Started: %s\n", s.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "  Turns:   %d\n", s.TurnCount)

	if len(s.Blocks) > 0 {
		fmt.Fprintf(&sb, "  Chain:   %s\n", r.chainPosition(s))
	}

	return sb.String()
}

func (r *Renderer) chainPosition(s *domain.Session) string {
	if s.ChainComplete {
		if r.pretty {
			return color.GreenString("complete (%d blocks)", len(s.Blocks))
		}
		return fmt.Sprintf("complete (%d blocks)", len(s.Blocks))
	}
	block, ok := s.CurrentBlock()
	if !ok {
		return fmt.Sprintf("%d/%d", s.BlockIndex, len(s.Blocks))
	}
	return fmt.Sprintf("%d/%d %s", s.BlockIndex+1, len(s.Blocks), block.Name)
}

// Blocks formats the session's study chain with the current position marked.
func (r *Renderer) Blocks(s *domain.Session) string {
	if len(s.Blocks) == 0 {
		return "Session has no study chain"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Study Chain\n"))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
	}

	for i, b := range s.Blocks {
		r.formatBlock(&sb, s, i, b)
	}

	if s.ChainComplete {
		if r.pretty {
			sb.WriteString(color.GreenString("\nChain complete\n"))
		} else {
			sb.WriteString("\nchain complete\n")
		}
	}

	return sb.String()
}

func (r *Renderer) formatBlock(sb *strings.Builder, s *domain.Session, i int, b domain.ChainBlock) {
	marker := "○"
	switch {
	case s.ChainComplete || i < s.BlockIndex:
		marker = color.GreenString("✓")
	case i == s.BlockIndex:
		marker = color.YellowString("▶")
	}

	durStr := ""
	if b.Minutes > 0 {
		durStr = fmt.Sprintf(" (%dm)", b.Minutes)
	}

	if r.pretty {
		fmt.Fprintf(sb, "%s %d. %s%s\n", marker, i+1, b.Name, durStr)
		if b.Category != "" {
			fmt.Fprintf(sb, "     %s\n", color.HiBlackString(b.Category))
		}
	} else {
		current := " "
		if !s.ChainComplete && i == s.BlockIndex {
			current = "*"
		}
		fmt.Fprintf(sb, "%s %d. %s%s\n", current, i+1, b.Name, durStr)
	}
}

// Transcript formats the session's message history. Citations attached to
// assistant messages render as numbered footnotes below the message body.
func (r *Renderer) Transcript(s *domain.Session) string {
	if len(s.Messages) == 0 {
		return "No messages yet"
	}

	var sb strings.Builder

	for _, m := range s.Messages {
		r.formatMessage(&sb, m)
	}

	return sb.String()
}

func (r *Renderer) formatMessage(sb *strings.Builder, m domain.Message) {
	label := "you"
	if m.Role == domain.RoleAssistant {
		label = "tutor"
	}

	if r.pretty {
		if m.Role == domain.RoleAssistant {
			fmt.Fprintf(sb, "%s %s\n", color.CyanString(label+":"), m.Content)
		} else {
			fmt.Fprintf(sb, "%s %s\n", color.YellowString(label+":"), m.Content)
		}
	} else {
		fmt.Fprintf(sb, "%s: %s\n", label, m.Content)
	}

	for _, c := range m.Citations {
		if r.pretty {
			fmt.Fprintf(sb, "  %s\n", color.HiBlackString("[%d] %s", c.Index, c.Source))
		} else {
			fmt.Fprintf(sb, "  [%d] %s\n", c.Index, c.Source)
		}
	}
	sb.WriteString("\n")
}

// Artifacts formats the study objects created during a session.
func (r *Renderer) Artifacts(artifacts []domain.Artifact) string {
	if len(artifacts) == 0 {
		return "No artifacts found"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Artifacts\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, a := range artifacts {
		r.formatArtifact(&sb, a)
	}

	return sb.String()
}

func (r *Renderer) formatArtifact(sb *strings.Builder, a domain.Artifact) {
	timeStr := a.CreatedAt.Format("15:04:05")

	ext := ""
	if a.ExternalID != "" {
		ext = fmt.Sprintf(" → %s", a.ExternalID)
	}

	if r.pretty {
		fmt.Fprintf(sb, "%s %s %s%s\n", color.HiBlackString(timeStr), color.YellowString("%-5s", string(a.Type)), a.Title, ext)
	} else {
		fmt.Fprintf(sb, "[%s] %s %s%s\n", timeStr, a.Type, a.Title, ext)
	}
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
