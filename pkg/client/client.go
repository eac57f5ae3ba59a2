package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is the atlasbridge API client entry point.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("atlasbridge: base URL required")
	}

	cfg := &clientConfig{http: http.DefaultClient}
	for _, o := range opts {
		o.apply(cfg)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		http:    cfg.http,
	}, nil
}

// DeviceRelated fetches related content for a device. The device value
// is marshaled as the request body; any type carrying the device
// attributes as JSON works.
func (c *Client) DeviceRelated(ctx context.Context, device any) (RelatedContent, error) {
	var out RelatedContent
	err := c.do(ctx, http.MethodPost, "/api/v1/devices/related", device, &out)
	return out, err
}

// VMRelated fetches related content for a virtual machine.
func (c *Client) VMRelated(ctx context.Context, vm any) (RelatedContent, error) {
	var out RelatedContent
	err := c.do(ctx, http.MethodPost, "/api/v1/vms/related", vm, &out)
	return out, err
}

// Settings fetches the sanitized service settings.
func (c *Client) Settings(ctx context.Context) (Settings, error) {
	var out Settings
	err := c.do(ctx, http.MethodGet, "/api/v1/settings", nil, &out)
	return out, err
}

// TestJira runs the issue-tracker connection test.
func (c *Client) TestJira(ctx context.Context) (ConnectionStatus, error) {
	return c.testConnection(ctx, "/api/v1/connections/jira/test")
}

// TestConfluence runs the wiki connection test.
func (c *Client) TestConfluence(ctx context.Context) (ConnectionStatus, error) {
	return c.testConnection(ctx, "/api/v1/connections/confluence/test")
}

// Health fetches the service health report. A degraded service yields
// a populated report and a nil error.
func (c *Client) Health(ctx context.Context) (Health, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return Health{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Health{}, fmt.Errorf("atlasbridge: health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 200 and 503 both carry a report body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return Health{}, newAPIError(resp)
	}

	var out Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Health{}, fmt.Errorf("atlasbridge: decode health: %w", err)
	}
	return out, nil
}

// testConnection posts a connection test. A failed test is reported in
// the status, not as an error; only transport and protocol failures
// return errors.
func (c *Client) testConnection(ctx context.Context, path string) (ConnectionStatus, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return ConnectionStatus{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ConnectionStatus{}, fmt.Errorf("atlasbridge: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 400 carries the failed-test payload.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		return ConnectionStatus{}, newAPIError(resp)
	}

	var out ConnectionStatus
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ConnectionStatus{}, fmt.Errorf("atlasbridge: decode connection status: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("atlasbridge: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("atlasbridge: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("atlasbridge: decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("atlasbridge: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
