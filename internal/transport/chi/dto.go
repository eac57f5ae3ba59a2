package chi

import (
	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
	relateduc "github.com/netfacet/atlasbridge/internal/usecase/related"
)

const codeBadRequest = "bad_request"

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// contentResponse is the related-content payload returned to the host
// application.
type contentResponse struct {
	Visible       bool               `json:"visible"`
	Terms         []string           `json:"search_terms"`
	EnabledFields []string           `json:"enabled_fields"`
	Jira          result.IssueResult `json:"jira"`
	Confluence    result.PageResult  `json:"confluence"`
}

func contentToResponse(c relateduc.Content) contentResponse {
	terms := c.Terms
	if terms == nil {
		terms = []string{}
	}
	fields := c.EnabledFields
	if fields == nil {
		fields = []string{}
	}
	return contentResponse{
		Visible:       c.Visible,
		Terms:         terms,
		EnabledFields: fields,
		Jira:          c.Issues,
		Confluence:    c.Pages,
	}
}

// connectionResponse is the connection-test payload.
type connectionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// healthResponse is the health-check payload.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SettingsView is the sanitized configuration exposed on the settings
// surface. It is assembled in the composition root so credentials
// never reach this package.
type SettingsView struct {
	Jira       BackendView `json:"jira"`
	Confluence BackendView `json:"confluence"`
	Cache      CacheView   `json:"cache"`
	Search     SearchView  `json:"search"`
	Version    string      `json:"version"`
}

// BackendView describes one backend without its credentials.
type BackendView struct {
	URL        string   `json:"url"`
	Configured bool     `json:"configured"`
	MaxResults int      `json:"max_results"`
	Projects   []string `json:"projects,omitempty"`
	IssueTypes []string `json:"issue_types,omitempty"`
	Spaces     []string `json:"spaces,omitempty"`
}

// CacheView describes the cache policy.
type CacheView struct {
	Driver string `json:"driver"`
	TTLSec int    `json:"ttl_sec"`
}

// SearchView describes the term-derivation rules.
type SearchView struct {
	DeviceFields      []rule.FieldRule `json:"device_fields"`
	VMFields          []rule.FieldRule `json:"vm_fields"`
	DeviceTypeFilters []string         `json:"device_type_filters,omitempty"`
}
