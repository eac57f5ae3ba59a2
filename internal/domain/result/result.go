// Package result holds the normalized, display-ready shapes of backend
// search responses. Backend-specific nesting is flattened here; missing
// fields default to empty strings rather than failing.
package result

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

// IssueResult is the per-request outcome of an issue-tracker search.
// It is always well-formed: a transport failure yields empty Issues
// plus a non-empty Error, never a missing object.
type IssueResult struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
	Error  string  `json:"error,omitempty"`
	Cached bool    `json:"cached"`
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

// PageResult is the per-request outcome of a wiki search, with the same
// well-formedness guarantee as IssueResult.
type PageResult struct {
	Pages  []Page `json:"pages"`
	Total  int    `json:"total"`
	Error  string `json:"error,omitempty"`
	Cached bool   `json:"cached"`
}
