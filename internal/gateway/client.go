// Package gateway is the typed client for the storefront backend REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"localwear-storefront/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls. session.Store satisfies it.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
	products   singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a Client for baseURL, e.g. http://localhost:8080/api.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	method string
	path   string
	in     interface{}
	out    interface{}
	// authed calls need a session token and fail fast without one
	authed bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(payload)
	}
	return c.send(ctx, cl, body, "application/json")
}

func (c *Client) send(ctx context.Context, cl call, body io.Reader, contentType string) error {
	op := cl.method + " " + cl.path
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if cl.authed && token == "" {
		return &Error{Kind: domain.ErrAuth, Op: op, Message: "Please login to continue"}
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return &Error{Kind: domain.ErrNetwork, Op: op, cause: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("gateway: %s request_id=%s error=%v", op, requestID, err)
		return &Error{Kind: domain.ErrNetwork, Op: op, Message: "Could not reach the store", cause: err}
	}
	defer resp.Body.Close()
	c.logger.Printf("gateway: %s request_id=%s status=%d duration=%s", op, requestID, resp.StatusCode, time.Since(start).Truncate(time.Millisecond))

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &Error{
			Kind:    classify(resp.StatusCode, strings.HasPrefix(cl.path, "/auth/")),
			Op:      op,
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
		}
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return &Error{Kind: domain.ErrNetwork, Op: op, Status: resp.StatusCode, Message: "Unexpected response from the store", cause: err}
	}
	return nil
}

// errorMessage pulls the human readable message out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
		return ""
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 || strings.HasPrefix(msg, "<") {
		return ""
	}
	return msg
}
