// Package related orchestrates a related-content lookup: derive search
// terms from a record, render both backend queries, and fetch the two
// result sets sequentially.
package related

import (
	"context"

	"github.com/netfacet/atlasbridge/internal/domain/query"
	"github.com/netfacet/atlasbridge/internal/domain/record"
	"github.com/netfacet/atlasbridge/internal/domain/result"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
)

// Options carry the per-kind rule lists, visibility filters, backend
// restrictions and result caps, all sourced from configuration.
type Options struct {
	DeviceRules       []rule.FieldRule
	VMRules           []rule.FieldRule
	DeviceTypeFilters []string

	Jira          query.JQLRestrictions
	JiraMax       int
	Confluence    query.CQLRestrictions
	ConfluenceMax int
}

// Content is the assembled related-content payload for one record.
type Content struct {
	Visible       bool
	Terms         []string
	EnabledFields []string
	Issues        result.IssueResult
	Pages         result.PageResult
}

// Service coordinates term derivation, query rendering and the two
// backend lookups.
type Service struct {
	issues IssueSearcher
	pages  PageSearcher
	opts   Options
}

// New creates a related-content service.
func New(issues IssueSearcher, pages PageSearcher, opts Options) *Service {
	return &Service{issues: issues, pages: pages, opts: opts}
}

// ForDevice fetches related content for a device. The device-type
// visibility filter applies to devices only.
func (s *Service) ForDevice(ctx context.Context, d *record.Device) Content {
	return s.fetch(ctx, d, s.opts.DeviceRules, s.opts.DeviceTypeFilters)
}

// ForVM fetches related content for a virtual machine.
func (s *Service) ForVM(ctx context.Context, vm *record.VirtualMachine) Content {
	return s.fetch(ctx, vm, s.opts.VMRules, nil)
}

// fetch runs the pipeline. Zero terms short-circuits both backends:
// the result sets stay empty and no outbound call is made.
func (s *Service) fetch(
	ctx context.Context, rec record.Attributer,
	rules []rule.FieldRule, patterns []string,
) Content {
	terms := query.ExtractTerms(rec, rules)

	content := Content{
		Visible:       query.ShouldShow(rec, rules, patterns),
		Terms:         terms,
		EnabledFields: rule.EnabledNames(rules),
		Issues:        result.IssueResult{Issues: []result.Issue{}},
		Pages:         result.PageResult{Pages: []result.Page{}},
	}
	if len(terms) == 0 {
		return content
	}

	jql := query.JQL(terms, s.opts.Jira)
	cql := query.CQL(terms, s.opts.Confluence)

	content.Issues = s.issues.Search(ctx, jql, s.opts.JiraMax)
	content.Pages = s.pages.Search(ctx, cql, s.opts.ConfluenceMax)
	return content
}
