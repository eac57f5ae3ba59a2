package query

import "strings"

// CQLRestrictions scope a wiki query. An empty list means "all spaces".
type CQLRestrictions struct {
	Spaces []string
}

// CQL renders terms into a wiki content query: an OR-group of
// text-contains clauses restricted to pages, AND-ed with an optional
// space OR-group. The wiki backend has no explicit ordering clause.
// Returns "" when no terms are given.
func CQL(terms []string, r CQLRestrictions) string {
	group := textGroup(terms)
	if group == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(group)
	// Pages only; attachments, comments and blog posts are excluded.
	b.WriteString(" AND type = page")
	writeEqGroup(&b, "space", r.Spaces)
	return b.String()
}
