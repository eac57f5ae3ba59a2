package record

// VirtualMachine is the secondary record kind.
type VirtualMachine struct {
	Name       string     `json:"name"`
	Status     string     `json:"status,omitempty"`
	Role       *NamedRef  `json:"role,omitempty"`
	Cluster    *NamedRef  `json:"cluster,omitempty"`
	Platform   *NamedRef  `json:"platform,omitempty"`
	Site       *NamedRef  `json:"site,omitempty"`
	Tenant     *NamedRef  `json:"tenant,omitempty"`
	PrimaryIP4 *IPAddress `json:"primary_ip4,omitempty"`
	PrimaryIP6 *IPAddress `json:"primary_ip6,omitempty"`
}

// Attribute implements Attributer.
func (v *VirtualMachine) Attribute(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch name {
	case "name":
		return v.Name, true
	case "status":
		return v.Status, true
	case "role":
		return refOrAbsent(v.Role)
	case "cluster":
		return refOrAbsent(v.Cluster)
	case "platform":
		return refOrAbsent(v.Platform)
	case "site":
		return refOrAbsent(v.Site)
	case "tenant":
		return refOrAbsent(v.Tenant)
	case "primary_ip4":
		return ipOrAbsent(v.PrimaryIP4)
	case "primary_ip6":
		return ipOrAbsent(v.PrimaryIP6)
	default:
		return nil, false
	}
}
