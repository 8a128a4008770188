package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/config"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/materials"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/render"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/tui"
)

type startOptions struct {
	course    string
	mode      string
	topic     string
	materials []string
	model     string
	webSearch bool
	chain     string
	noTUI     bool
}

func startCmd() *cobra.Command {
	var opts startOptions

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new tutoring session",
		Long: `Start a tutoring session with the given configuration.

Interactive terminals drop straight into the chat view. Piped
invocations print the session id for scripting.

Examples:
  ptstudy start --topic "sliding filament theory"
  ptstudy start --course anat101 --mode Drill --materials "anatomy/**/*.pdf"
  ptstudy start --chain leg-day --mode Core`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runStart(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.course, "course", "c", "", "Course identifier")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "Session mode: Core, Drill, Review, Exam")
	cmd.Flags().StringVarP(&opts.topic, "topic", "t", "", "Session topic")
	cmd.Flags().StringArrayVar(&opts.materials, "materials", nil, "Material glob patterns (repeatable)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Backend model identifier")
	cmd.Flags().BoolVar(&opts.webSearch, "web-search", false, "Allow the tutor to search the web")
	cmd.Flags().StringVar(&opts.chain, "chain", "", "Chain template id for a structured study plan")
	cmd.Flags().BoolVar(&opts.noTUI, "no-tui", false, "Print the session id instead of opening the chat view")

	return cmd
}

func runStart(opts startOptions) {
	env := config.Env()

	modeName := opts.mode
	if modeName == "" {
		modeName = env.DefaultMode
	}
	mode, ok := domain.ParseMode(modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (valid: Core, Drill, Review, Exam)\n", modeName)
		os.Exit(1)
	}

	model := opts.model
	if model == "" {
		model = env.Model
	}

	cfg := domain.Config{
		CourseID:        opts.course,
		Mode:            mode,
		Topic:           opts.topic,
		Model:           model,
		WebSearch:       opts.webSearch,
		ChainTemplateID: opts.chain,
	}

	if len(opts.materials) > 0 {
		ids, err := materials.Resolve(config.GetPaths().Materials, opts.materials)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "Warning: material patterns matched nothing")
		}
		cfg.MaterialIDs = ids
	}

	ctrl, cleanup := newController()
	defer cleanup()

	sess, err := ctrl.Start(context.Background(), cfg)
	if err != nil {
		exitErr(err)
	}

	if opts.noTUI || !isInteractive() {
		r := render.New(pretty && isInteractive())
		fmt.Print(r.Session(sess))
		fmt.Printf("\nContinue with: ptstudy chat %s\n", sess.ID)
		return
	}

	if err := tui.Run(ctrl, sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
