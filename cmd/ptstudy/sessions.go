package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/config"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/render"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/storage"
)

func sessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List cached sessions, most recent first",
		Long: `List sessions from the local cache.

The cache is written on every session change, so this works offline.
The backend remains the system of record; resume a listed session to
refresh it.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store, err := storage.New(config.GetPaths().Data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()

			cached, err := store.ListSessions(context.Background(), limit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			sessions := make([]domain.Session, 0, len(cached))
			for _, s := range cached {
				sessions = append(sessions, *s)
			}

			r := render.New(pretty && isInteractive())
			fmt.Print(r.Sessions(sessions))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of sessions to show")
	return cmd
}

func endCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <session-id>",
		Short: "End a session",
		Long:  "Terminally end a session. Ended sessions refuse further turns.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])
			if sess.Ended() {
				fmt.Printf("Session %s already ended\n", sess.ID)
				return
			}

			if err := ctrl.End(context.Background(), sess); err != nil {
				exitErr(err)
			}
			fmt.Printf("✓ Session %s ended (%d turns)\n", sess.ID, sess.TurnCount)
		},
	}
}
