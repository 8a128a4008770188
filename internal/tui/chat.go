// Package tui provides the Bubble Tea interactive tutoring interface.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/tutor"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	tutorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	chainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	inputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	focusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205")).
				Padding(0, 1)
)

// sharedState holds state that must survive model copies.
// strings.Builder cannot be copied after use, so it lives behind a pointer.
type sharedState struct {
	cancelFunc context.CancelFunc
	transcript *strings.Builder
}

// ChatModel is the interactive tutoring session model.
type ChatModel struct {
	ctrl *tutor.Controller
	sess *domain.Session

	ready      bool
	quitting   bool
	ended      bool
	turnActive bool
	err        error

	// Chain position shown in the header; refreshed after each
	// advance from the session, never computed locally.
	chainLine string

	// Turn count snapshot for the status bar. View must not read the
	// session's counter while a turn command goroutine may write it.
	turns int

	shared *sharedState

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	width    int
	height   int
}

// Messages
type (
	streamEventMsg struct {
		sessionID string
		event     domain.StreamEvent
	}
	turnDoneMsg    struct{ err error }
	advanceDoneMsg struct {
		progress domain.BlockProgress
		err      error
	}
	endDoneMsg struct{ err error }
)

// NewChatModel creates the chat model for an active session.
func NewChatModel(ctrl *tutor.Controller, sess *domain.Session) ChatModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textarea.New()
	ti.Placeholder = "Ask your tutor... (Enter to send, /end to finish)"
	ti.CharLimit = 4000
	ti.SetWidth(80)
	ti.SetHeight(3)
	ti.Focus()

	m := ChatModel{
		ctrl:    ctrl,
		sess:    sess,
		shared:  &sharedState{transcript: &strings.Builder{}},
		spinner: s,
		input:   ti,
	}
	m.chainLine = chainHeader(sess)
	m.turns = sess.TurnCount
	m.renderHistory()
	return m
}

// renderHistory seeds the transcript from a resumed session's messages.
func (m *ChatModel) renderHistory() {
	for _, msg := range m.sess.Messages {
		if msg.Role == domain.RoleUser {
			m.shared.transcript.WriteString(userStyle.Render("you: ") + msg.Content + "\n\n")
			continue
		}
		m.shared.transcript.WriteString(tutorStyle.Render(msg.Content) + "\n")
		writeCitations(m.shared.transcript, msg.Citations)
		m.shared.transcript.WriteString("\n")
	}
}

// Init starts the spinner.
func (m ChatModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case streamEventMsg:
		if msg.sessionID == m.sess.ID {
			m.handleStreamEvent(msg.event)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
		}
		return m, nil

	case turnDoneMsg:
		return m.handleTurnDone(msg)

	case advanceDoneMsg:
		return m.handleAdvanceDone(msg)

	case endDoneMsg:
		m.ended = true
		m.quitting = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.turnActive {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m ChatModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.turnActive && m.shared.cancelFunc != nil {
			m.shared.cancelFunc()
			return m, nil
		}
		// Leaves the session active; resume picks it back up.
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if !m.turnActive {
			m.quitting = true
			return m, tea.Quit
		}

	case "enter":
		return m.handleEnterKey()

	case "alt+enter", "ctrl+j":
		if !m.turnActive {
			m.input.SetValue(m.input.Value() + "\n")
			return m, nil
		}

	case "ctrl+l":
		m.shared.transcript.Reset()
		m.viewport.SetContent("")

	case "up", "down", "pgup", "pgdown":
		if m.turnActive {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m ChatModel) handleEnterKey() (tea.Model, tea.Cmd) {
	if m.turnActive {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return m, cmd
	}

	switch text {
	case "/end":
		m.input.SetValue("")
		return m, endSession(m.ctrl, m.sess)
	case "/advance", "/next":
		m.input.SetValue("")
		return m, advanceBlock(m.ctrl, m.sess)
	}

	m.input.SetValue("")
	m.turnActive = true
	m.shared.transcript.WriteString(userStyle.Render("you: ") + text + "\n\n")
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spinner.Tick, runTurn(m.ctrl, m.sess, text, m.shared))
}

func (m ChatModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 2
	statusHeight := 1
	inputHeight := 5
	vpWidth := msg.Width
	vpHeight := msg.Height - headerHeight - statusHeight - inputHeight

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
		m.viewport.SetContent(m.renderTranscript())
	}

	m.input.SetWidth(msg.Width - 4)
	return m, nil
}

func (m ChatModel) handleTurnDone(msg turnDoneMsg) (tea.Model, tea.Cmd) {
	m.turnActive = false
	m.turns = m.sess.TurnCount
	// In-band turn errors were already painted by the stream handler.
	var turnErr *domain.TurnError
	if msg.err != nil && !(errors.As(msg.err, &turnErr) && turnErr.InBand) {
		m.shared.transcript.WriteString("\n" + errorStyle.Render("✗ "+msg.err.Error()) + "\n\n")
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, nil
}

func (m ChatModel) handleAdvanceDone(msg advanceDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.shared.transcript.WriteString(errorStyle.Render("✗ "+msg.err.Error()) + "\n\n")
	} else if msg.progress.Complete {
		m.shared.transcript.WriteString(successStyle.Render("✓ Study chain complete") + "\n\n")
	} else if block, ok := m.sess.CurrentBlock(); ok {
		m.shared.transcript.WriteString(chainStyle.Render("▶ "+block.Name) + "\n\n")
	}
	m.chainLine = chainHeader(m.sess)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
	return m, nil
}
