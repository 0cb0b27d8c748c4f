// Package client provides a small Go SDK for talking to one replicated
// log node — either the master or a secondary. It hides HTTP request
// construction and JSON decoding behind plain method calls; it does not
// itself implement any distributed logic, since that lives entirely on
// the server side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to exactly one node.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL (e.g. "http://localhost:8000"). A zero
// timeout falls back to a sane default — never call the network without
// one.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

// AppendResult is returned by Append on success.
type AppendResult struct {
	Messages   []string `json:"messages"`
	W          int      `json:"w"`
	DurationMs int64    `json:"duration_ms"`
}

// Append posts a new message with the given write concern. w=0 means
// "let the server pick the default" (full durability).
func (c *Client) Append(ctx context.Context, msg string, w int) (*AppendResult, error) {
	payload := map[string]any{"msg": msg}
	if w > 0 {
		payload["w"] = w
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST /messages failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result AppendResult
	return &result, json.NewDecoder(resp.Body).Decode(&result)
}

// List returns every message currently visible on this node, in
// ascending sequence order.
func (c *Client) List(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/messages", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /messages failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result struct {
		Messages []string `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// Health fetches the node's raw /health response.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET /health failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result map[string]any
	return result, json.NewDecoder(resp.Body).Decode(&result)
}

// APIError carries the HTTP status and the error message from the
// server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// checkStatus converts a non-2xx HTTP response into an *APIError.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
