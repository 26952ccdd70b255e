// Package api is the HTTP client for the marketplace REST API. Every piece
// of business logic (pricing, stock, verification, auth) lives behind that
// API; this client only moves requests and payloads. All calls take a
// context so an abandoned page navigation cancels the request instead of
// delivering a stale result.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client calls the marketplace REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// do performs one request against the API. A non-nil body is JSON-encoded.
// A 2xx response is decoded into out when out is non-nil. A non-2xx response
// becomes an UpstreamError carrying the API's error message verbatim; any
// failure before a response arrives is returned as a transport error.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, token, out)
}

// send finishes a prepared request: bearer injection, status classification,
// response decoding
func (c *Client) send(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debugw("upstream call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return upstreamError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}

	return nil
}

// upstreamError extracts the API's error message from a non-2xx body. The
// API reports errors as {"error": "..."} or {"message": "..."}.
func upstreamError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil {
		_ = json.Unmarshal(body, &payload)
	}

	message := payload.Error
	if message == "" {
		message = payload.Message
	}

	return &UpstreamError{StatusCode: resp.StatusCode, Message: message}
}
