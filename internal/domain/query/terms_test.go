package query

import (
	"reflect"
	"testing"

	"github.com/netfacet/atlasbridge/internal/domain/record"
	"github.com/netfacet/atlasbridge/internal/domain/rule"
)

func enabled(name, attr string) rule.FieldRule {
	return rule.FieldRule{Name: name, Attribute: attr, Enabled: true}
}

func testDevice() *record.Device {
	return &record.Device{
		Name:   "sw-core-01",
		Serial: "FXS12345",
		DeviceType: &record.DeviceType{
			Model:        "C9500",
			Manufacturer: &record.NamedRef{Name: "Cisco Systems", Slug: "cisco"},
		},
		Role:       &record.NamedRef{Name: "Core Switch"},
		PrimaryIP4: &record.IPAddress{Address: "10.0.0.1/24"},
	}
}

func TestExtractTerms_EnabledRulesOnly(t *testing.T) {
	d := testDevice()
	rules := []rule.FieldRule{
		enabled("Hostname", "name"),
		{Name: "Serial", Attribute: "serial", Enabled: false},
		enabled("Primary IP", "primary_ip4.address"),
	}

	got := ExtractTerms(d, rules)
	want := []string{"sw-core-01", "10.0.0.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTerms = %v, want %v", got, want)
	}
}

func TestExtractTerms_UnresolvableRuleContributesNothing(t *testing.T) {
	d := &record.Device{Name: "sw-core-01"}
	rules := []rule.FieldRule{
		enabled("Hostname", "name"),
		enabled("Serial", "serial"),
		enabled("Role", "role.name"),
		enabled("Nonsense", "no.such.path"),
	}

	got := ExtractTerms(d, rules)
	want := []string{"sw-core-01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTerms = %v, want %v", got, want)
	}
}

func TestExtractTerms_CommaSplitsIntoTrimmedTerms(t *testing.T) {
	d := &record.Device{Name: "host", Serial: "SN-1, SN-2 ,SN-3"}
	rules := []rule.FieldRule{
		enabled("Hostname", "name"),
		enabled("Serial", "serial"),
	}

	got := ExtractTerms(d, rules)
	want := []string{"host", "SN-1", "SN-2", "SN-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTerms = %v, want %v", got, want)
	}
}

func TestExtractTerms_DeduplicatesFirstOccurrenceWins(t *testing.T) {
	d := &record.Device{Name: "sw-core-01", AssetTag: "sw-core-01"}
	rules := []rule.FieldRule{
		enabled("Hostname", "name"),
		enabled("Asset Tag", "asset_tag"),
	}

	got := ExtractTerms(d, rules)
	want := []string{"sw-core-01"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTerms = %v, want %v", got, want)
	}
}

func TestExtractTerms_NoRules(t *testing.T) {
	if got := ExtractTerms(testDevice(), nil); len(got) != 0 {
		t.Errorf("ExtractTerms with no rules = %v", got)
	}
}

func TestExtractTerms_Deterministic(t *testing.T) {
	d := testDevice()
	rules := []rule.FieldRule{
		enabled("Hostname", "name"),
		enabled("Serial", "serial"),
		enabled("Role", "role.name"),
		enabled("Primary IP", "primary_ip4.address"),
	}

	first := ExtractTerms(d, rules)
	for i := 0; i < 10; i++ {
		if got := ExtractTerms(d, rules); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: %v != %v", i, got, first)
		}
	}
}
