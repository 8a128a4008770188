package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/render"
)

func blocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks <session-id>",
		Short: "Show a session's study chain and current position",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			r := render.New(pretty && isInteractive())
			fmt.Print(r.Blocks(sess))
		},
	}
}

func advanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <session-id>",
		Short: "Advance to the next chain block",
		Long: `Request the next block of the session's study chain.

The backend decides the resulting position; skipped or repeated
blocks come from its answer, never from local arithmetic.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			progress, err := ctrl.AdvanceBlock(context.Background(), sess)
			if err != nil {
				exitErr(err)
			}

			if progress.Complete {
				fmt.Println("✓ Study chain complete")
				return
			}
			if block, ok := sess.CurrentBlock(); ok {
				fmt.Printf("▶ Block %d/%d: %s\n", sess.BlockIndex+1, len(sess.Blocks), block.Name)
			}
		},
	}
}
