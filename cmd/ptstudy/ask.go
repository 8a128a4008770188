package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <session-id> <question...>",
		Short: "Run one turn against a session, streaming to stdout",
		Long: `Send a single question and stream the answer as plain text.

Pipe-friendly: tokens go to stdout as they arrive, citations follow
as numbered footnotes. Directives work here too:

  ptstudy ask 01JX... "/card Define hypertrophy"
  ptstudy ask 01JX... "explain the sliding filament theory"`,
		Args: cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			text := strings.Join(args[1:], " ")

			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			ctrl.OnStream(func(sessionID string, ev domain.StreamEvent) {
				if ev.Type == domain.StreamEventToken {
					fmt.Print(ev.Text)
				}
			})

			if err := ctrl.SubmitTurn(context.Background(), sess, text); err != nil {
				fmt.Println()
				exitErr(err)
			}
			fmt.Println()

			if len(sess.Messages) > 0 {
				last := sess.Messages[len(sess.Messages)-1]
				for _, c := range last.Citations {
					fmt.Printf("[%d] %s\n", c.Index, c.Source)
				}
			}
		},
	}
}
