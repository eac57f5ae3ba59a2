package client

// RelatedContent is the related-content payload for one record.
type RelatedContent struct {
	Visible       bool     `json:"visible"`
	SearchTerms   []string `json:"search_terms"`
	EnabledFields []string `json:"enabled_fields"`
	Jira          Issues   `json:"jira"`
	Confluence    Pages    `json:"confluence"`
}

// Issues is one backend's issue result set.
type Issues struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
	Error  string  `json:"error,omitempty"`
	Cached bool    `json:"cached"`
}

// Issue is a normalized issue-tracker search hit.
type Issue struct {
	Key            string `json:"key"`
	Summary        string `json:"summary"`
	Status         string `json:"status"`
	StatusCategory string `json:"status_category"`
	Type           string `json:"type"`
	TypeIconURL    string `json:"type_icon,omitempty"`
	Priority       string `json:"priority"`
	PriorityIcon   string `json:"priority_icon,omitempty"`
	Assignee       string `json:"assignee"`
	Created        string `json:"created"`
	Updated        string `json:"updated"`
	Project        string `json:"project"`
	ProjectKey     string `json:"project_key"`
	URL            string `json:"url"`
}

// Pages is one backend's page result set.
type Pages struct {
	Pages  []Page `json:"pages"`
	Total  int    `json:"total"`
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached"`
}

// Page is a normalized wiki search hit.
type Page struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	SpaceKey       string `json:"space_key"`
	SpaceName      string `json:"space_name"`
	LastModified   string `json:"last_modified"`
	LastModifiedBy string `json:"last_modified_by"`
	Breadcrumb     string `json:"breadcrumb"`
	URL            string `json:"url"`
}

// Settings is the sanitized service configuration.
type Settings struct {
	Jira       Backend      `json:"jira"`
	Confluence Backend      `json:"confluence"`
	Cache      CachePolicy  `json:"cache"`
	Search     SearchConfig `json:"search"`
	Version    string       `json:"version"`
}

// Backend describes one configured backend, credentials excluded.
type Backend struct {
	URL        string   `json:"url"`
	Configured bool     `json:"configured"`
	MaxResults int      `json:"max_results"`
	Projects   []string `json:"projects,omitempty"`
	IssueTypes []string `json:"issue_types,omitempty"`
	Spaces     []string `json:"spaces,omitempty"`
}

// CachePolicy describes the result cache.
type CachePolicy struct {
	Driver string `json:"driver"`
	TTLSec int    `json:"ttl_sec"`
}

// SearchConfig describes the term-derivation rules.
type SearchConfig struct {
	DeviceFields      []FieldRule `json:"device_fields"`
	VMFields          []FieldRule `json:"vm_fields"`
	DeviceTypeFilters []string    `json:"device_type_filters,omitempty"`
}

// FieldRule names a record attribute whose value becomes a search term.
type FieldRule struct {
	Name      string `json:"name"`
	Attribute string `json:"attribute"`
	Enabled   bool   `json:"enabled"`
}

// ConnectionStatus is the outcome of a backend connection test.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Health is the service health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
