package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/config"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/logging"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/storage"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/tutor"
)

// newController wires the backend client, the local cache, and the
// session controller. The returned cleanup closes the cache; call it
// before exit. A missing or unopenable cache degrades to no caching.
func newController() (*tutor.Controller, func()) {
	env := config.Env()
	logger := logging.New("cli")

	clientOpts := []tutor.ClientOption{
		tutor.WithClientLogger(logging.New("client")),
	}
	if env.APIToken != "" {
		clientOpts = append(clientOpts, tutor.WithToken(env.APIToken))
	}
	client := tutor.NewClient(env.APIURL, clientOpts...)

	ctrlOpts := []tutor.Option{tutor.WithLogger(logger)}
	cleanup := func() {}

	store, err := storage.New(config.GetPaths().Data)
	if err != nil {
		logger.Warn("cache_unavailable", nil, err)
	} else {
		ctrlOpts = append(ctrlOpts, tutor.WithStore(store))
		cleanup = func() { store.Close() }
	}

	return tutor.NewController(client, ctrlOpts...), cleanup
}

// resumeSession fetches session state, preferring the backend.
func resumeSession(ctrl *tutor.Controller, id string) *domain.Session {
	sess, err := ctrl.Resume(context.Background(), id)
	if err != nil {
		exitErr(err)
	}
	return sess
}

// exitErr prints a taxonomy-aware error message and exits.
func exitErr(err error) {
	var (
		concurrent *domain.ConcurrentTurnError
		ended      *domain.SessionEndedError
		turnErr    *domain.TurnError
		advanceErr *domain.AdvanceError
	)
	switch {
	case errors.As(err, &concurrent):
		fmt.Fprintf(os.Stderr, "Error: %v (wait for the current answer to finish)\n", err)
	case errors.As(err, &ended):
		fmt.Fprintf(os.Stderr, "Error: %v (start a new session with 'ptstudy start')\n", err)
	case errors.As(err, &turnErr) && turnErr.InBand:
		fmt.Fprintf(os.Stderr, "Error from tutor: %s\n", turnErr.Message)
	case errors.As(err, &advanceErr):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// isInteractive reports whether stdin and stdout are attached to a
// terminal; piped invocations get plain output and no TUI.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
