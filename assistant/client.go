// Package assistant is the HTTP client for the remote assistant service.
//
// The service exposes four endpoints below a base URL:
//
//	GET  /health  -> {"status": "online", "chatbot_ready": bool}
//	POST /chat    {"message": "..."} -> {"success": true, "response": "..."} | {"success": false, "error": "..."}
//	POST /reset   -> 2xx on success
//	GET  /videos  -> {"success": true, "videos": [{"title", "description", "link"}]}
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultBaseURL is where the service listens in a local setup.
const DefaultBaseURL = "http://localhost:5000/api"

const maxResponseBytes = 4 << 20

// Health is the service's readiness report.
type Health struct {
	Status  string
	Ready   bool
	Message string
}

// Video is one entry of the service's video catalog.
type Video struct {
	Title       string
	Description string
	Link        string
}

// Client talks to the assistant service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{baseURL: baseURL, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string { return c.baseURL }

// Health queries the readiness endpoint.
func (c *Client) Health(ctx context.Context) (Health, error) {
	data, _, err := c.do(ctx, "health", http.MethodGet, "/health", nil)
	if err != nil {
		return Health{}, err
	}
	if !gjson.ValidBytes(data) {
		return Health{}, &TransportError{Op: "health", Err: fmt.Errorf("invalid JSON reply")}
	}
	res := gjson.ParseBytes(data)
	return Health{
		Status:  res.Get("status").String(),
		Ready:   res.Get("chatbot_ready").Bool(),
		Message: res.Get("message").String(),
	}, nil
}

// Chat sends one user message and returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "message", message)
	if err != nil {
		return "", fmt.Errorf("assistant chat: encode request: %w", err)
	}

	data, status, err := c.do(ctx, "chat", http.MethodPost, "/chat", body)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(data) {
		return "", &TransportError{Op: "chat", Err: fmt.Errorf("invalid JSON reply (status %d)", status)}
	}

	res := gjson.ParseBytes(data)
	if res.Get("success").Bool() {
		return res.Get("response").String(), nil
	}
	return "", &ServiceError{Op: "chat", Status: status, Message: res.Get("error").String()}
}

// Reset asks the service to start a fresh conversation.
func (c *Client) Reset(ctx context.Context) error {
	data, status, err := c.do(ctx, "reset", http.MethodPost, "/reset", nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &ServiceError{Op: "reset", Status: status, Message: gjson.GetBytes(data, "error").String()}
	}
	return nil
}

// Videos fetches the service's catalog of guide videos.
func (c *Client) Videos(ctx context.Context) ([]Video, error) {
	data, status, err := c.do(ctx, "videos", http.MethodGet, "/videos", nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, &TransportError{Op: "videos", Err: fmt.Errorf("invalid JSON reply (status %d)", status)}
	}
	res := gjson.ParseBytes(data)
	if !res.Get("success").Bool() {
		return nil, &ServiceError{Op: "videos", Status: status, Message: res.Get("error").String()}
	}

	var videos []Video
	res.Get("videos").ForEach(func(_, v gjson.Result) bool {
		videos = append(videos, Video{
			Title:       v.Get("title").String(),
			Description: v.Get("description").String(),
			Link:        v.Get("link").String(),
		})
		return true
	})
	return videos, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Op: op, Err: fmt.Errorf("read reply: %w", err)}
	}
	return data, resp.StatusCode, nil
}
