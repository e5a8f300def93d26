// Package rpc implements a client for the node's HTTP JSON-RPC.
//
// Every command is a POST of a JSON object with an "action" field.
// Responses that can be checked locally are checked before being
// returned: account histories must form a valid hash chain with a
// valid newest signature, processed block hashes must match the block,
// and generated work must meet the difficulty. A node that lies is
// reported as ErrInvalidData rather than trusted.
//
// See the node RPC documentation for the command set:
// https://docs.nano.org/commands/rpc-protocol/
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a single node RPC endpoint. It is safe for
// concurrent use.
type Client struct {
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, e.g. to route
// through a proxy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger enables structured logging of requests.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a client for the node RPC at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// Command sends a raw RPC command and returns the raw response body.
// The node's in-band error field is surfaced as ErrNodeError.
func (c *Client) Command(ctx context.Context, action string, arguments map[string]any) ([]byte, error) {
	payload := make(map[string]any, len(arguments)+1)
	for k, v := range arguments {
		payload[k] = v
	}
	payload["action"] = action

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("rpc: encode %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", action, err)
	}
	c.log.Debug().
		Str("action", action).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("rpc command")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc: %s: %w: HTTP %d", action, ErrNodeError, resp.StatusCode)
	}

	var nodeErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &nodeErr); err != nil {
		return nil, fmt.Errorf("rpc: %s: %w: %v", action, ErrInvalidResponse, err)
	}
	if nodeErr.Error != "" {
		return nil, fmt.Errorf("rpc: %s: %w: %s", action, ErrNodeError, nodeErr.Error)
	}
	return raw, nil
}
