// Package rule defines the field-extraction rules that drive search
// term derivation. Rules are configuration data, supplied once per
// search invocation, never created at runtime.
package rule

import "fmt"

// FieldRule names a record attribute whose value becomes a search term.
// Attribute is a dot-separated path resolved against the record, e.g.
// "role.name" or "primary_ip4.address".
type FieldRule struct {
	Name      string `yaml:"name" json:"name"`
	Attribute string `yaml:"attribute" json:"attribute"`
	Enabled   bool   `yaml:"enabled" json:"enabled"`
}

// Validate rejects enabled rules without an attribute path.
// Disabled rules may be incomplete; they are skipped during extraction.
func (r FieldRule) Validate() error {
	if r.Enabled && r.Attribute == "" {
		return fmt.Errorf("field rule %q: attribute path is required", r.Name)
	}
	return nil
}

// EnabledNames returns the display names of enabled rules, in order.
func EnabledNames(rules []FieldRule) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Enabled {
			names = append(names, r.Name)
		}
	}
	return names
}
