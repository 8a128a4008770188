// Package main provides the ptstudy CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	pretty  = true
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ptstudy",
		Short: "Personal study tutor - streaming tutoring sessions from the terminal",
		Long: `ptstudy: tutoring sessions against your study backend.

Usage modes:
  ptstudy              Start an interactive session with defaults
  ptstudy start        Start a session with explicit configuration
  ptstudy ask <id> <q> One-shot question against an existing session

Use 'ptstudy sessions' to list resumable sessions.
Use 'ptstudy help' for the full command list.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if !isInteractive() {
				cmd.Help()
				return
			}
			runStart(startOptions{})
		},
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "session", Title: "Sessions:"},
		&cobra.Group{ID: "study", Title: "Study:"},
	)

	start := startCmd()
	start.GroupID = "session"
	rootCmd.AddCommand(start)

	chat := chatCmd()
	chat.GroupID = "session"
	rootCmd.AddCommand(chat)

	resume := resumeCmd()
	resume.GroupID = "session"
	rootCmd.AddCommand(resume)

	sessions := sessionsCmd()
	sessions.GroupID = "session"
	rootCmd.AddCommand(sessions)

	end := endCmd()
	end.GroupID = "session"
	rootCmd.AddCommand(end)

	ask := askCmd()
	ask.GroupID = "study"
	rootCmd.AddCommand(ask)

	blocks := blocksCmd()
	blocks.GroupID = "study"
	rootCmd.AddCommand(blocks)

	advance := advanceCmd()
	advance.GroupID = "study"
	rootCmd.AddCommand(advance)

	artifacts := artifactsCmd()
	artifacts.GroupID = "study"
	rootCmd.AddCommand(artifacts)

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show ptstudy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ptstudy version %s\n", version)
		},
	}
}
