// Package tutor implements the interactive tutoring session engine: the
// backend API client, the per-turn accumulator, and the session
// controller that orchestrates them.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/buckjoewild/pt-study-sop-sub002/internal/domain"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/logging"
	"github.com/buckjoewild/pt-study-sop-sub002/internal/stream"
)

// HTTPClient is the minimal HTTP surface, injectable for tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the tutor backend over HTTP. No client-side timeout is
// applied: a hung turn stream is bounded only by the transport (or by the
// caller's context). Pass a custom HTTP client to impose one.
type Client struct {
	baseURL string
	token   string
	http    HTTPClient
	logger  *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithToken sets a bearer token sent on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logging.New("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSession asks the backend to start a session.
func (c *Client) CreateSession(ctx context.Context, cfg domain.Config) (*domain.Session, error) {
	var sess domain.Session
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions", cfg, &sess); err != nil {
		return nil, err
	}
	normalizeSession(&sess)
	return &sess, nil
}

// GetSession fetches a session descriptor with its blocks, artifacts, and
// any transcript the backend retains.
func (c *Client) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	var sess domain.Session
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions/"+id, nil, &sess); err != nil {
		return nil, err
	}
	normalizeSession(&sess)
	return &sess, nil
}

// EndSession terminally ends a session.
func (c *Client) EndSession(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/sessions/"+id+"/end", nil, nil)
}

// Advance asks the backend for the next chain block. The returned index
// is authoritative.
func (c *Client) Advance(ctx context.Context, id string) (domain.BlockProgress, error) {
	var bp domain.BlockProgress
	err := c.doJSON(ctx, http.MethodPost, "/api/sessions/"+id+"/advance", nil, &bp)
	return bp, err
}

// CreateArtifact materializes a study artifact from turn content.
func (c *Client) CreateArtifact(ctx context.Context, id string, spec domain.ArtifactSpec) (*domain.Artifact, error) {
	var a domain.Artifact
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions/"+id+"/artifacts", spec, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

type turnRequest struct {
	Text string `json:"text"`
}

// Turn submits user text and returns the live event stream for the
// assistant's answer. The channel closes when the turn ends: on a done
// event, an error event, the transport sentinel, or the connection
// closing. Events arrive strictly in wire order.
func (c *Client) Turn(ctx context.Context, id string, text string) (<-chan domain.StreamEvent, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/sessions/"+id+"/turn", turnRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send turn request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.apiError(resp)
	}

	events := make(chan domain.StreamEvent, 64)
	go c.streamTurn(resp.Body, events)
	return events, nil
}

// streamTurn frames and decodes the response body into events. Malformed
// frames are skipped; an error event ends the turn and everything after
// it is ignored.
func (c *Client) streamTurn(body io.ReadCloser, events chan<- domain.StreamEvent) {
	defer close(events)
	defer body.Close()

	var framer stream.Framer
	buf := make([]byte, 4096)

	for {
		n, readErr := body.Read(buf)
		for _, line := range framer.Push(buf[:n]) {
			ev, ok := stream.Decode(line)
			if !ok {
				continue
			}

			switch ev.Type {
			case domain.StreamEventEnd:
				// Transport terminator; not an event for the caller.
				return
			case domain.StreamEventError, domain.StreamEventDone:
				events <- ev
				return
			default:
				events <- ev
			}
		}

		if readErr != nil {
			if rest := framer.Flush(); rest != "" {
				c.logger.Warn("truncated_frame_discarded", map[string]any{"bytes": len(rest)}, nil)
			}
			return
		}
	}
}

// newRequest builds a request with auth and content headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doJSON executes a request and decodes a JSON response into out (out may
// be nil for ack-only endpoints).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("tutor API error %d: %s", resp.StatusCode, msg)
}

// normalizeSession fills defaults the wire format may omit. Transcript
// messages returned by the backend are always final.
func normalizeSession(sess *domain.Session) {
	if sess.Status == "" {
		sess.Status = domain.StatusActive
	}
	if sess.BlockIndex < 0 {
		sess.BlockIndex = 0
	}
	for i := range sess.Messages {
		sess.Messages[i].Streaming = false
	}
}
