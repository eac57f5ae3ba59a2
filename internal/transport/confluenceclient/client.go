// Package confluenceclient is a minimal Confluence REST client for
// CQL content search, returning the normalized page shapes the rest
// of the service consumes.
package confluenceclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain"
	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/metrics"
	"github.com/netfacet/atlasbridge/internal/transport/httpopt"
)

// searchExpand requests the nested metadata needed for display.
const searchExpand = "space,version,ancestors"

// Config holds the Confluence backend settings.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	Token     string // personal access token; takes precedence over basic auth
	VerifySSL bool
	LegacyTLS bool
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client talks to a Confluence server. A Client with no base URL is
// valid and reports domain.ErrNotConfigured from every call.
type Client struct {
	http     *http.Client
	baseURL  string
	username string
	password string
	token    string
	logger   *zap.Logger
}

// New creates a Confluence client.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http: &http.Client{
			Transport: httpopt.NewTransport(httpopt.TLSOptions{
				VerifySSL: cfg.VerifySSL,
				LegacyTLS: cfg.LegacyTLS,
			}),
			Timeout: cfg.Timeout,
		},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		token:    cfg.Token,
		logger:   logger,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool { return c.baseURL != "" }

// BaseURL returns the configured server URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// searchResponse mirrors the content-search response shape. Only the
// fields needed for normalization are declared.
type searchResponse struct {
	Results []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Space struct {
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"space"`
		Version struct {
			When string `json:"when"`
			By   struct {
				DisplayName string `json:"displayName"`
			} `json:"by"`
		} `json:"version"`
		Ancestors []struct {
			Title string `json:"title"`
		} `json:"ancestors"`
		Links struct {
			WebUI string `json:"webui"`
		} `json:"_links"`
	} `json:"results"`
	Size      int `json:"size"`
	TotalSize int `json:"totalSize"`
}

// Search runs a CQL query and returns normalized pages plus the total
// match count reported by the server.
func (c *Client) Search(ctx context.Context, cql string, limit int) ([]result.Page, int, error) {
	if !c.Configured() {
		return nil, 0, domain.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", searchExpand)

	start := time.Now()
	var resp searchResponse
	if err := c.get(ctx, "/rest/api/content/search", params, &resp); err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("confluence", "error").Inc()
		c.logger.Warn("confluence search failed", zap.Error(err))
		return nil, 0, err
	}
	metrics.BackendRequestsTotal.WithLabelValues("confluence", "success").Inc()
	metrics.BackendRequestDuration.WithLabelValues("confluence").Observe(time.Since(start).Seconds())

	pages := make([]result.Page, 0, len(resp.Results))
	for _, r := range resp.Results {
		breadcrumbs := make([]string, 0, len(r.Ancestors))
		for _, a := range r.Ancestors {
			breadcrumbs = append(breadcrumbs, a.Title)
		}
		pages = append(pages, result.Page{
			ID:             r.ID,
			Title:          r.Title,
			SpaceKey:       r.Space.Key,
			SpaceName:      r.Space.Name,
			LastModified:   r.Version.When,
			LastModifiedBy: r.Version.By.DisplayName,
			Breadcrumb:     strings.Join(breadcrumbs, " > "),
			URL:            c.baseURL + r.Links.WebUI,
		})
	}

	total := resp.TotalSize
	if total == 0 {
		total = resp.Size
	}
	return pages, total, nil
}

// CurrentUser performs the lightweight "who am I" call and returns the
// authenticated principal's display name.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", domain.ErrNotConfigured
	}
	if c.token == "" && c.username == "" {
		return "", domain.ErrNoCredentials
	}

	var user struct {
		DisplayName string `json:"displayName"`
		Username    string `json:"username"`
	}
	if err := c.get(ctx, "/rest/api/user/current", nil, &user); err != nil {
		return "", err
	}
	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.Username, nil
}

// get issues an authenticated GET and decodes the JSON response into
// out. Token auth takes precedence over basic auth.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("confluence request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	switch {
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	case c.username != "":
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("confluence %s: %v: %w", path, err, domain.ErrBackendUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("confluence %s: status %d: %w", path, resp.StatusCode, domain.ErrBackendUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("confluence %s: decode response: %v: %w", path, err, domain.ErrBackendUnavailable)
	}
	return nil
}
