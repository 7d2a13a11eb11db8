// Package api is the typed client for the vault daemon's local HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"BwClient/internal/envelope"
)

// DefaultBaseURL is where the daemon listens unless told otherwise.
const DefaultBaseURL = "http://localhost:8087"

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one daemon. It keeps no state between calls, so it can
// be shared as long as the Doer can.
type Client struct {
	baseURL string
	http    Doer
	logger  *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport (http.DefaultClient by default).
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the daemon at baseURL (DefaultBaseURL if empty).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: want http(s)://host[:port]", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the daemon address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one daemon call.
type request struct {
	method  string
	path    string
	query   url.Values
	payload any
}

// do sends r and returns the status code and full body.
func (c *Client) do(ctx context.Context, r request, body []byte) (int, []byte, error) {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// no query here: it carries search terms
		c.logger.Debugw("daemon request failed", "method", r.method, "path", r.path, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	c.logger.Debugw("daemon request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

// encode builds the request body. This is where secrets get revealed,
// through the model types' MarshalJSON.
func encode(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	return json.Marshal(payload)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// call performs an enveloped request: on an error envelope it fails with
// kind and the daemon's message, on success it returns the decoded payload.
func call[T any](ctx context.Context, c *Client, op string, kind error, r request, dec envelope.PayloadDecoder[T]) (T, error) {
	var zero T
	body, err := encode(r.payload)
	if err != nil {
		return zero, &Error{Kind: kind, Op: op, Err: err}
	}
	status, data, err := c.do(ctx, r, body)
	if err != nil {
		return zero, &Error{Kind: ErrTransport, Op: op, Status: status, Err: err}
	}
	resp, err := envelope.Decode(data, dec)
	if err != nil {
		// a non-envelope body on an error status is a proxy or crash page,
		// not a daemon answer
		if !isSuccess(status) {
			return zero, &Error{Kind: ErrTransport, Op: op, Status: status, Err: err}
		}
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	if !resp.Success {
		c.logger.Warnw("daemon reported failure", "op", op, "status", status, "message", resp.Message)
		return zero, &Error{Kind: kind, Op: op, Message: resp.Message, Status: status}
	}
	return resp.Data, nil
}

// expectOK performs a request whose only result is its status code.
func (c *Client) expectOK(ctx context.Context, op string, kind error, r request) error {
	status, data, err := c.do(ctx, r, nil)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Status: status, Err: err}
	}
	if isSuccess(status) {
		return nil
	}
	e := &Error{Kind: kind, Op: op, Status: status}
	// the daemon often still sends an error envelope; keep its message
	if resp, derr := envelope.Decode(data, envelope.Any()); derr == nil && !resp.Success {
		e.Message = resp.Message
	}
	c.logger.Warnw("daemon request rejected", "op", op, "status", status, "message", e.Message)
	return e
}

// objectPath builds /object/{kind}/{id}.
func objectPath(kind, id string) string {
	return "/object/" + kind + "/" + urlID(id)
}

func urlID(id string) string { return url.PathEscape(id) }

func listPath(kind string) string {
	return "/list/object/" + kind
}
