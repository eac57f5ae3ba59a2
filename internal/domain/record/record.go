// Package record models the device-management entities this service
// receives from the host application. Attribute access is explicit:
// each kind maps attribute names to typed accessors, so dotted-path
// traversal never needs reflection.
package record

import (
	"fmt"
	"net/netip"
	"strings"
)

// Attributer exposes named attributes for dotted-path traversal.
// A missing or nil attribute reports ok=false.
type Attributer interface {
	Attribute(name string) (any, bool)
}

// IPHolder is implemented by values that carry a bare host IP.
// When a resolved value holds one, the IP string is used instead of
// the value's own string form (keeps "10.0.0.1" rather than
// "10.0.0.1/24" in search terms).
type IPHolder interface {
	IP() string
}

// Resolve walks a dot-separated attribute path starting at rec and
// returns the final value's canonical string form. Any missing, nil,
// or non-traversable segment yields ok=false; Resolve never panics.
// An empty final string also reports ok=false.
func Resolve(rec Attributer, path string) (string, bool) {
	if rec == nil || path == "" {
		return "", false
	}

	var cur any = rec
	for _, seg := range strings.Split(path, ".") {
		a, ok := cur.(Attributer)
		if !ok {
			return "", false
		}
		v, ok := a.Attribute(seg)
		if !ok || v == nil {
			return "", false
		}
		cur = v
	}

	s := stringify(cur)
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func stringify(v any) string {
	switch t := v.(type) {
	case IPHolder:
		return t.IP()
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// NamedRef is a reference to a related object that is searchable by
// its display name (role, site, tenant, platform, cluster, ...).
type NamedRef struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Attribute implements Attributer.
func (r *NamedRef) Attribute(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	switch name {
	case "name":
		return r.Name, true
	case "slug":
		return r.Slug, true
	default:
		return nil, false
	}
}

// String returns the display name, so a path ending at the reference
// itself still yields a usable term.
func (r *NamedRef) String() string {
	if r == nil {
		return ""
	}
	return r.Name
}

// IPAddress is an assigned IP in CIDR notation, e.g. "10.0.0.1/24".
type IPAddress struct {
	Address string `json:"address"`
}

// Attribute implements Attributer. The "address" attribute resolves to
// a value exposing the bare host IP.
func (a *IPAddress) Attribute(name string) (any, bool) {
	if a == nil || a.Address == "" {
		return nil, false
	}
	if name == "address" {
		return hostAddr(a.Address), true
	}
	return nil, false
}

// IP returns the bare host IP, so a rule pointing at the address
// object itself ("primary_ip4") still produces a clean term.
func (a *IPAddress) IP() string {
	if a == nil {
		return ""
	}
	return hostAddr(a.Address).IP()
}

// hostAddr strips the prefix length from a CIDR string.
type hostAddr string

// IP implements IPHolder.
func (h hostAddr) IP() string {
	s := string(h)
	if p, err := netip.ParsePrefix(s); err == nil {
		return p.Addr().String()
	}
	// Not CIDR; tolerate a bare address.
	if ip, _, found := strings.Cut(s, "/"); found {
		return ip
	}
	return s
}
