package tutor

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/chain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/command"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/logging"
)

// API is what the controller needs from the backend. *Client satisfies
// it; tests substitute fakes.
type API interface {
	CreateSession(ctx context.Context, cfg domain.Config) (*domain.Session, error)
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	EndSession(ctx context.Context, id string) error
	Turn(ctx context.Context, id string, text string) (<-chan domain.StreamEvent, error)
	Advance(ctx context.Context, id string) (domain.BlockProgress, error)
	CreateArtifact(ctx context.Context, id string, spec domain.ArtifactSpec) (*domain.Artifact, error)
}

// StreamObserver receives each decoded event of an in-flight turn, in
// order, before the turn finalizes. Used by interactive front ends to
// paint tokens live.
type StreamObserver func(sessionID string, ev domain.StreamEvent)

// Controller owns session lifecycle and serializes turns. One logical
// turn runs at a time per session; distinct sessions are independent and
// may run concurrently. The session's message list and block index are
// mutated only here.
type Controller struct {
	api    API
	store  domain.Store
	logger *logging.Logger

	onEvent StreamObserver

	mu       sync.Mutex
	inflight map[string]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithStore attaches the local session cache. Cache writes are
// best-effort: failures are logged, never surfaced.
func WithStore(store domain.Store) Option {
	return func(c *Controller) { c.store = store }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a session controller over the given backend API.
func NewController(api API, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		logger:   logging.New("tutor"),
		inflight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnStream sets the stream observer for subsequent turns.
func (c *Controller) OnStream(fn StreamObserver) {
	c.onEvent = fn
}

// Start creates a new session with the backend.
func (c *Controller) Start(ctx context.Context, cfg domain.Config) (*domain.Session, error) {
	sess, err := c.api.CreateSession(ctx, cfg)
	if err != nil {
		return nil, &domain.SessionCreateError{Err: err}
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	c.logger.WithSession(sess.ID).Info("session_started", map[string]any{
		"mode":   string(sess.Mode),
		"blocks": len(sess.Blocks),
	})
	c.cacheSession(ctx, sess)
	return sess, nil
}

// SubmitTurn sends user text and streams the assistant's answer into the
// session transcript. Refused with ConcurrentTurnError while another turn
// is streaming for the same session, and with SessionEndedError after
// End. A directive in the text (note/card/map) materializes an artifact
// from the finalized answer; artifact failure is returned but the turn
// stays finalized.
func (c *Controller) SubmitTurn(ctx context.Context, sess *domain.Session, text string) error {
	if sess.Ended() {
		return &domain.SessionEndedError{SessionID: sess.ID}
	}
	if !c.acquire(sess.ID) {
		return &domain.ConcurrentTurnError{SessionID: sess.ID}
	}
	defer c.release(sess.ID)

	log := c.logger.WithSession(sess.ID)
	start := time.Now()

	// The directive is extracted up front but the text still goes to the
	// backend unchanged; materialization happens only after the turn
	// finalizes successfully.
	directive, hasDirective := command.Extract(text)

	sess.Messages = append(sess.Messages, domain.Message{
		ID:      ulid.Make().String(),
		Role:    domain.RoleUser,
		Content: text,
	})

	events, err := c.api.Turn(ctx, sess.ID, text)
	if err != nil {
		turnErr := &domain.TurnError{Err: err, Message: err.Error()}
		// Transport failure still yields a terminal assistant message so
		// the transcript shows what happened.
		sess.Messages = append(sess.Messages, domain.Message{
			ID:      ulid.Make().String(),
			Role:    domain.RoleAssistant,
			Content: turnErr.Message,
		})
		log.Error("turn_failed", nil, err)
		return turnErr
	}

	acc := NewAccumulator(sess)
	for ev := range events {
		acc.Apply(ev)
		if c.onEvent != nil {
			c.onEvent(sess.ID, ev)
		}
	}
	final := acc.Finish()

	if msg, errored := acc.Errored(); errored {
		log.Error("turn_failed", map[string]any{"in_band": true}, nil)
		return &domain.TurnError{Message: msg, InBand: true}
	}

	sess.TurnCount++
	log.TimedEvent("turn_finalized", start, map[string]any{
		"turn":      sess.TurnCount,
		"chars":     len(final.Content),
		"citations": len(final.Citations),
	})
	c.cacheSession(ctx, sess)

	if hasDirective {
		spec := domain.ArtifactSpec{
			Type:    directive.Type,
			Title:   directive.Title,
			Content: final.Content,
		}
		if _, err := c.CreateArtifact(ctx, sess, spec); err != nil {
			log.Error("artifact_failed", map[string]any{"type": string(directive.Type)}, err)
			return err
		}
	}
	return nil
}

// AdvanceBlock requests the next chain block from the backend and adopts
// the returned index verbatim.
func (c *Controller) AdvanceBlock(ctx context.Context, sess *domain.Session) (domain.BlockProgress, error) {
	prog := chain.New(sess.Blocks, sess.BlockIndex, sess.ChainComplete)
	if err := prog.CheckAdvance(); err != nil {
		return domain.BlockProgress{}, err
	}

	bp, err := c.api.Advance(ctx, sess.ID)
	if err != nil {
		return domain.BlockProgress{}, &domain.AdvanceError{Err: err}
	}
	if err := prog.Apply(bp); err != nil {
		return domain.BlockProgress{}, err
	}

	sess.BlockIndex = prog.Index()
	sess.ChainComplete = prog.Complete()

	c.logger.WithSession(sess.ID).Info("block_advanced", map[string]any{
		"index":    bp.Index,
		"complete": bp.Complete,
	})
	c.cacheSession(ctx, sess)
	return bp, nil
}

// CreateArtifact materializes an artifact from the given spec. Not
// retried on failure.
func (c *Controller) CreateArtifact(ctx context.Context, sess *domain.Session, spec domain.ArtifactSpec) (*domain.Artifact, error) {
	a, err := c.api.CreateArtifact(ctx, sess.ID, spec)
	if err != nil {
		return nil, &domain.ArtifactError{Type: spec.Type, Err: err}
	}
	// A backend that omits the id would otherwise collapse every cached
	// artifact onto one empty-key row.
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	sess.Artifacts = append(sess.Artifacts, *a)
	c.logger.WithSession(sess.ID).Info("artifact_created", map[string]any{
		"type":  string(a.Type),
		"title": a.Title,
	})
	if c.store != nil {
		if err := c.store.SaveArtifact(ctx, sess.ID, a); err != nil {
			c.logger.WithSession(sess.ID).Warn("cache_artifact_failed", nil, err)
		}
	}
	return a, nil
}

// End terminally ends the session. Idempotent locally: ending an ended
// session is a no-op.
func (c *Controller) End(ctx context.Context, sess *domain.Session) error {
	if sess.Ended() {
		return nil
	}
	if err := c.api.EndSession(ctx, sess.ID); err != nil {
		return err
	}
	sess.Status = domain.StatusEnded

	c.logger.WithSession(sess.ID).Info("session_ended", map[string]any{"turns": sess.TurnCount})
	c.cacheSession(ctx, sess)
	return nil
}

// Resume fetches session state from the backend: metadata, chain blocks,
// artifacts, and the prior transcript when the backend retains one.
func (c *Controller) Resume(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := c.api.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	c.logger.WithSession(sess.ID).Info("session_resumed", map[string]any{
		"turns":    sess.TurnCount,
		"messages": len(sess.Messages),
	})
	c.cacheSession(ctx, sess)
	return sess, nil
}

func (c *Controller) acquire(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[id] {
		return false
	}
	c.inflight[id] = true
	return true
}

func (c *Controller) release(id string) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.mu.Unlock()
}

func (c *Controller) cacheSession(ctx context.Context, sess *domain.Session) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveSession(ctx, sess); err != nil {
		c.logger.WithSession(sess.ID).Warn("cache_session_failed", nil, err)
	}
}
