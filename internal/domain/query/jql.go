package query

import "strings"

// JQLRestrictions scope an issue-tracker query. Empty lists mean
// "no restriction".
type JQLRestrictions struct {
	Projects   []string
	IssueTypes []string
}

// JQL renders terms into an issue-tracker query: an OR-group of
// text-contains clauses, AND-ed with optional project and issue-type
// OR-groups, ordered by update time descending. Returns "" when no
// terms are given.
func JQL(terms []string, r JQLRestrictions) string {
	group := textGroup(terms)
	if group == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(group)
	writeEqGroup(&b, "project", r.Projects)
	writeEqGroup(&b, "issuetype", r.IssueTypes)
	b.WriteString(" ORDER BY updated DESC")
	return b.String()
}

// textGroup builds the parenthesized OR-group of text-contains clauses.
// Embedded double quotes are escaped; empty terms are skipped.
func textGroup(terms []string) string {
	clauses := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		clauses = append(clauses, `text ~ "`+escapeQuotes(t)+`"`)
	}
	if len(clauses) == 0 {
		return ""
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}

// writeEqGroup appends ` AND (field = "a" OR field = "b")` for a
// non-empty restriction list.
func writeEqGroup(b *strings.Builder, field string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(" AND (")
	for i, v := range values {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString(field)
		b.WriteString(` = "`)
		b.WriteString(escapeQuotes(v))
		b.WriteString(`"`)
	}
	b.WriteString(")")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
