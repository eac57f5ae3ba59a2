// Package query derives search terms from records and renders them
// into the two backend query dialects (JQL for the issue tracker,
// CQL for the wiki). Rendering is deterministic: identical terms and
// restrictions produce byte-identical strings, which the caching layer
// relies on for stable keys.
package query

import (
	"strings"

	"github.com/netfacet/atlasbridge/internal/domain/record"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
)

// ExtractTerms resolves each enabled rule's attribute path against rec
// and collects the resulting values as search terms. Comma-separated
// values (e.g. multiple serial numbers) split into individual trimmed
// terms. Duplicates are suppressed exact-match, first occurrence wins,
// discovery order is preserved. A rule whose path cannot be resolved
// simply contributes nothing.
func ExtractTerms(rec record.Attributer, rules []rule.FieldRule) []string {
	var terms []string
	seen := make(map[string]struct{})

	appendTerm := func(t string) {
		t = strings.TrimSpace(t)
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}

	for _, r := range rules {
		if !r.Enabled || r.Attribute == "" {
			continue
		}
		value, ok := record.Resolve(rec, r.Attribute)
		if !ok {
			continue
		}
		for _, part := range strings.Split(value, ",") {
			appendTerm(part)
		}
	}

	return terms
}
