package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/render"
)

func artifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Study artifact commands",
	}

	// ptstudy artifacts list <session-id>
	listCmd := &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's artifacts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			r := render.New(pretty && isInteractive())
			fmt.Print(r.Artifacts(sess.Artifacts))
		},
	}

	// ptstudy artifacts create <session-id>
	var artifactType string
	var title string
	var content string
	createCmd := &cobra.Command{
		Use:   "create <session-id>",
		Short: "Create an artifact explicitly",
		Long: `Materialize a note, card, or map for a session.

Content defaults to the session's last assistant answer, which is how
in-chat directives (/note, /card, /map) behave.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctrl, cleanup := newController()
			defer cleanup()

			sess := resumeSession(ctrl, args[0])

			spec := domain.ArtifactSpec{
				Type:    domain.ArtifactType(artifactType),
				Title:   title,
				Content: content,
			}
			switch spec.Type {
			case domain.ArtifactNote, domain.ArtifactCard, domain.ArtifactMap:
			default:
				fmt.Fprintf(os.Stderr, "Error: unknown artifact type %q (valid: note, card, map)\n", artifactType)
				os.Exit(1)
			}

			if spec.Content == "" {
				for i := len(sess.Messages) - 1; i >= 0; i-- {
					if sess.Messages[i].Role == domain.RoleAssistant {
						spec.Content = sess.Messages[i].Content
						break
					}
				}
			}

			artifact, err := ctrl.CreateArtifact(context.Background(), sess, spec)
			if err != nil {
				exitErr(err)
			}

			fmt.Printf("✓ Created %s: %s", artifact.Type, artifact.Title)
			if artifact.ExternalID != "" {
				fmt.Printf(" → %s", artifact.ExternalID)
			}
			fmt.Println()
		},
	}
	createCmd.Flags().StringVarP(&artifactType, "type", "t", "note", "Artifact type: note, card, map")
	createCmd.Flags().StringVar(&title, "title", "", "Artifact title")
	createCmd.Flags().StringVar(&content, "content", "", "Artifact content (defaults to last answer)")

	cmd.AddCommand(listCmd, createCmd)
	return cmd
}
