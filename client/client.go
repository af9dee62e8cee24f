// Package client holds the participant-side state of the chat board:
// the session username, the last fetched message list and the in-flight
// send guard, plus the fetch / send / subscribe orchestration around
// them. State lives in an explicit Client value handed to callers, never
// in package globals.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"chatboard/broadcast"
	"chatboard/domain"
	"chatboard/errors"
)

type Client struct {
	baseURL  string
	token    string
	http     *http.Client
	notifier broadcast.INotifier
	log      *slog.Logger

	mu       sync.Mutex
	username string
	messages []domain.Message
	sending  bool

	onUpdate func([]domain.Message)
}

func New(baseURL, token string, notifier broadcast.INotifier, log *slog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
		notifier: notifier,
		log:      log,
	}
}

// SetUsername fixes the display name for the session. The first
// non-blank name wins; later calls are ignored, matching the one-time
// prompt of the UI.
func (c *Client) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.ErrEmptyUsername
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.username == "" {
		c.username = username
	}
	return nil
}

func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

// Messages returns a copy of the last fetched list, in the order the
// server delivered it (newest first).
func (c *Client) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// OnUpdate registers a callback invoked with the fresh list after every
// successful refresh. Register before Subscribe.
func (c *Client) OnUpdate(fn func([]domain.Message)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = fn
}

// Refresh fetches the full message list and replaces the local one
// wholesale. No merging, no diffing: the server's order is the display
// order. On failure the previous list stays untouched.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/messages", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	var body struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding message list: %w", err)
	}

	c.mu.Lock()
	c.messages = body.Messages
	fn := c.onUpdate
	c.mu.Unlock()

	if fn != nil {
		fn(slices.Clone(body.Messages))
	}
	return nil
}

// Send posts one message, then tells every subscriber to re-fetch, then
// refreshes its own view. The three steps are strictly sequential and
// not atomic: a failed broadcast loses a notification, never data, so
// it is only logged. Send is a guarded no-op while the username is
// unset or another send is in flight.
func (c *Client) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ErrEmptyText
	}

	c.mu.Lock()
	if c.username == "" {
		c.mu.Unlock()
		return errors.ErrNoUsername
	}
	if c.sending {
		c.mu.Unlock()
		return errors.ErrSendInFlight
	}
	c.sending = true
	username := c.username
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	payload, err := json.Marshal(map[string]string{"username": username, "text": text})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := c.notifier.Publish(ctx); err != nil {
		c.log.Warn("Broadcast failed, peers will catch up on their next refresh", "error", err)
	}
	return c.Refresh(ctx)
}

// Subscribe listens for refresh notifications until the context ends.
// Every notification triggers an idempotent full refresh; a failed
// refresh keeps the stale view and is only logged.
func (c *Client) Subscribe(ctx context.Context) error {
	notifications, err := c.notifier.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range notifications {
			if err := c.Refresh(ctx); err != nil {
				c.log.Error("Refresh after notification failed", "error", err)
			}
		}
	}()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body *bytes.Reader) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = body
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if body.Details != "" {
		return fmt.Errorf("%s: %s", body.Error, body.Details)
	}
	return fmt.Errorf("%s", body.Error)
}
