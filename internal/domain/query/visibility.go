package query

import (
	"regexp"
	"strings"

	"github.com/netfacet/atlasbridge/internal/domain/record"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
)

// Classifier is implemented by record kinds that carry a manufacturer
// or category classification usable by type filters.
type Classifier interface {
	Classification() (slug, name string, ok bool)
}

// ShouldShow reports whether related content applies to this record.
// Two conditions, AND-combined:
//
//  1. If patterns is non-empty, the record's classification must match
//     at least one pattern. Patterns are case-insensitive regular
//     expressions checked against both the slug and the display name;
//     a pattern that fails to compile falls back to case-insensitive
//     substring containment.
//  2. The record must yield at least one search term.
func ShouldShow(rec record.Attributer, rules []rule.FieldRule, patterns []string) bool {
	if len(patterns) > 0 {
		c, ok := rec.(Classifier)
		if !ok {
			return false
		}
		slug, name, ok := c.Classification()
		if !ok {
			return false
		}
		if !matchesAny(patterns, strings.ToLower(slug), strings.ToLower(name)) {
			return false
		}
	}

	return len(ExtractTerms(rec, rules)) > 0
}

func matchesAny(patterns []string, slug, name string) bool {
	for _, pattern := range patterns {
		p := strings.ToLower(pattern)
		re, err := regexp.Compile(p)
		if err != nil {
			// Invalid pattern: downgrade to substring containment.
			if strings.Contains(slug, p) || strings.Contains(name, p) {
				return true
			}
			continue
		}
		if re.MatchString(slug) || re.MatchString(name) {
			return true
		}
	}
	return false
}
