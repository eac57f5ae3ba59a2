// Package jiraclient wraps the Jira REST API behind the normalized
// result shapes the rest of the service consumes.
package jiraclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"

	"github.com/netfacet/atlasbridge/internal/domain"
	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/metrics"
	"github.com/netfacet/atlasbridge/internal/transport/httpopt"
)

// searchFields is the fixed field selection requested per issue.
var searchFields = []string{
	"summary", "status", "issuetype", "priority",
	"assignee", "created", "updated", "project",
}

// Config holds the Jira backend settings.
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

// Client talks to a Jira server. A Client with no base URL is valid
// and reports domain.ErrNotConfigured from every call.
type Client struct {
	api      *jira.Client
	baseURL  string
	hasToken bool
	hasBasic bool
	logger   *zap.Logger
}

// New creates a Jira client. Bearer token auth takes precedence when
// both a token and basic credentials are configured.
func New(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		baseURL:  baseURL,
		hasToken: cfg.Token != "",
		hasBasic: cfg.Username != "",
		logger:   logger,
	}
	if baseURL == "" {
		return c, nil
	}

	base := httpopt.NewTransport(httpopt.TLSOptions{
		VerifySSL: cfg.VerifySSL,
		LegacyTLS: cfg.LegacyTLS,
	})

	var rt http.RoundTripper = base
	switch {
	case c.hasToken:
		rt = &jira.BearerAuthTransport{Token: cfg.Token, Transport: base}
	case c.hasBasic:
		rt = &jira.BasicAuthTransport{Username: cfg.Username, Password: cfg.Password, Transport: base}
	}

	httpClient := &http.Client{Transport: rt, Timeout: cfg.Timeout}
	api, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("create jira client: %w", err)
	}
	c.api = api
	return c, nil
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool { return c.baseURL != "" }

// BaseURL returns the configured server URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Search runs a JQL query and returns normalized issues plus the total
// match count reported by the server.
func (c *Client) Search(ctx context.Context, jql string, maxResults int) ([]result.Issue, int, error) {
	if !c.Configured() {
		return nil, 0, domain.ErrNotConfigured
	}

	start := time.Now()
	issues, resp, err := c.api.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{
		MaxResults: maxResults,
		Fields:     searchFields,
	})
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("jira", "error").Inc()
		c.logger.Warn("jira search failed", zap.Error(err))
		return nil, 0, fmt.Errorf("jira search: %v: %w", err, domain.ErrBackendUnavailable)
	}
	metrics.BackendRequestsTotal.WithLabelValues("jira", "success").Inc()
	metrics.BackendRequestDuration.WithLabelValues("jira").Observe(time.Since(start).Seconds())

	total := len(issues)
	if resp != nil {
		total = resp.Total
	}

	normalized := make([]result.Issue, 0, len(issues))
	for i := range issues {
		normalized = append(normalized, c.normalize(&issues[i]))
	}
	return normalized, total, nil
}

// CurrentUser performs the lightweight "who am I" call and returns the
// authenticated principal's display name.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", domain.ErrNotConfigured
	}
	if !c.hasToken && !c.hasBasic {
		return "", domain.ErrNoCredentials
	}

	self, _, err := c.api.User.GetSelfWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("jira current user: %v: %w", err, domain.ErrBackendUnavailable)
	}
	name := self.DisplayName
	if name == "" {
		name = self.Name
	}
	return name, nil
}

// normalize flattens a Jira issue into the display shape. Absent nested
// fields become empty strings; an issue with no assignee shows
// "Unassigned".
func (c *Client) normalize(issue *jira.Issue) result.Issue {
	out := result.Issue{
		Key:      issue.Key,
		Assignee: "Unassigned",
		URL:      c.baseURL + "/browse/" + issue.Key,
	}

	f := issue.Fields
	if f == nil {
		return out
	}

	out.Summary = f.Summary
	out.Type = f.Type.Name
	out.TypeIconURL = f.Type.IconURL
	out.Project = f.Project.Name
	out.ProjectKey = f.Project.Key
	out.Created = formatTime(time.Time(f.Created))
	out.Updated = formatTime(time.Time(f.Updated))

	if f.Status != nil {
		out.Status = f.Status.Name
		out.StatusCategory = f.Status.StatusCategory.Key
	}
	if f.Priority != nil {
		out.Priority = f.Priority.Name
		out.PriorityIcon = f.Priority.IconURL
	}
	if f.Assignee != nil && f.Assignee.DisplayName != "" {
		out.Assignee = f.Assignee.DisplayName
	}

	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
