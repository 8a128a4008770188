package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/tutor"
)

func runTurn(ctrl *tutor.Controller, sess *domain.Session, text string, shared *sharedState) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		shared.cancelFunc = cancel
		defer cancel()

		err := ctrl.SubmitTurn(ctx, sess, text)
		return turnDoneMsg{err: err}
	}
}

func advanceBlock(ctrl *tutor.Controller, sess *domain.Session) tea.Cmd {
	return func() tea.Msg {
		progress, err := ctrl.AdvanceBlock(context.Background(), sess)
		return advanceDoneMsg{progress: progress, err: err}
	}
}

func endSession(ctrl *tutor.Controller, sess *domain.Session) tea.Cmd {
	return func() tea.Msg {
		return endDoneMsg{err: ctrl.End(context.Background(), sess)}
	}
}

// Run starts the interactive tutoring TUI over an active session. Stream
// events are bridged from the controller's observer into the program so
// tokens paint as they arrive. Quitting without /end leaves the session
// active on the backend.
func Run(ctrl *tutor.Controller, sess *domain.Session) error {
	model := NewChatModel(ctrl, sess)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	ctrl.OnStream(func(sessionID string, ev domain.StreamEvent) {
		p.Send(streamEventMsg{sessionID: sessionID, event: ev})
	})

	_, err := p.Run()
	return err
}
