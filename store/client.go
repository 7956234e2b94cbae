// Package store is a minimal REST client for the hosted document store and
// its identity API. Only the operations FuelWarden consumes are implemented.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	endpoint string
	project  string
	apiKey   string // admin key, used by provisioning-style callers
	session  string // per-user session secret
	client   *http.Client
}

func New(endpoint, project, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		project:  project,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithSession derives a copy of the client scoped to one user session. The
// admin key is dropped so every call runs under the store's own permission
// checks for that user.
func (c *Client) WithSession(secret string) *Client {
	cp := *c
	cp.apiKey = ""
	cp.session = secret
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.project)
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	} else if c.apiKey != "" {
		req.Header.Set("X-Appwrite-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read store response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var se Error
		if jsonErr := json.Unmarshal(data, &se); jsonErr != nil || se.Code == 0 {
			se = Error{Code: resp.StatusCode, Message: string(data)}
		}
		return &se
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse store response: %w", err)
		}
	}
	return nil
}
