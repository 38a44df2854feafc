// Package api provides the HTTP client wrapper for the todo backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Error is a server-reported error: the status code and the backend's
// structured error payload, with the transport envelope stripped off.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d", e.Status)
}

// Client wraps net/http with a fixed API root, one mutable bearer-token
// slot, and logging of every request and response. Each call is a
// single attempt: no retry, no backoff, no client-side timeout.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger

	mu    sync.RWMutex
	token string
}

// New creates a Client for the given API root,
// e.g. "http://localhost:8080/api".
func New(base string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
		log:  log,
	}
}

// SetToken installs a bearer token for all subsequent requests.
// An empty string clears the slot.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	url := c.base + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("url", url))
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api transport error",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug("api read error",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		return err
	}

	c.log.Debug("api response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError unwraps the server's error payload. The backend reports
// errors as {"message": "..."}; a few endpoints use {"error": "..."}.
// An unparseable body yields an Error with the status alone.
func decodeError(status int, data []byte) error {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message == "" {
			payload.Message = payload.Err
		}
		return &Error{Status: status, Message: payload.Message}
	}
	return &Error{Status: status}
}
