package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/render"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/tui"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [session-id]",
		Short: "Open the chat view, resuming or starting a session",
		Long: `Continue a session interactively, or start a fresh one with default
configuration when no session id is given.

The transcript is restored from the backend when it retains one.
Quitting without /end leaves the session active.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if !isInteractive() {
				fmt.Fprintln(os.Stderr, "Error: chat needs a terminal; use 'ptstudy ask' for piped turns")
				os.Exit(1)
			}

			if len(args) == 0 {
				runStart(startOptions{})
				return
			}

			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])
			if sess.Ended() {
				fmt.Fprintf(os.Stderr, "Error: session %s has ended\n", sess.ID)
				os.Exit(1)
			}

			if err := tui.Run(ctrl, sess); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func resumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <session-id>",
		Short: "Show a resumed session's state and transcript",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			r := render.New(pretty && isInteractive())
			fmt.Print(r.Session(sess))
			if len(sess.Messages) > 0 {
				fmt.Println()
				fmt.Print(r.Transcript(sess))
			}
			if !sess.Ended() {
				fmt.Printf("Continue with: ptstudy chat %s\n", sess.ID)
			}
		},
	}
}
