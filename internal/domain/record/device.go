package record

// DeviceType describes the hardware model and its manufacturer.
type DeviceType struct {
	Model        string    `json:"model"`
	Manufacturer *NamedRef `json:"manufacturer,omitempty"`
}

// Attribute implements Attributer.
func (t *DeviceType) Attribute(name string) (any, bool) {
	if t == nil {
		return nil, false
	}
	switch name {
	case "model":
		return t.Model, true
	case "manufacturer":
		if t.Manufacturer == nil {
			return nil, false
		}
		return t.Manufacturer, true
	default:
		return nil, false
	}
}

// String returns the model name.
func (t *DeviceType) String() string {
	if t == nil {
		return ""
	}
	return t.Model
}

// Device is the primary record kind: a physical or logical device as
// the host application describes it.
type Device struct {
	Name       string      `json:"name"`
	Serial     string      `json:"serial,omitempty"`
	AssetTag   string      `json:"asset_tag,omitempty"`
	Status     string      `json:"status,omitempty"`
	Role       *NamedRef   `json:"role,omitempty"`
	DeviceType *DeviceType `json:"device_type,omitempty"`
	Platform   *NamedRef   `json:"platform,omitempty"`
	Site       *NamedRef   `json:"site,omitempty"`
	Location   *NamedRef   `json:"location,omitempty"`
	Rack       *NamedRef   `json:"rack,omitempty"`
	Tenant     *NamedRef   `json:"tenant,omitempty"`
	PrimaryIP4 *IPAddress  `json:"primary_ip4,omitempty"`
	PrimaryIP6 *IPAddress  `json:"primary_ip6,omitempty"`
}

// Attribute implements Attributer.
func (d *Device) Attribute(name string) (any, bool) {
	if d == nil {
		return nil, false
	}
	switch name {
	case "name":
		return d.Name, true
	case "serial":
		return d.Serial, true
	case "asset_tag":
		return d.AssetTag, true
	case "status":
		return d.Status, true
	case "role":
		return refOrAbsent(d.Role)
	case "device_type":
		if d.DeviceType == nil {
			return nil, false
		}
		return d.DeviceType, true
	case "platform":
		return refOrAbsent(d.Platform)
	case "site":
		return refOrAbsent(d.Site)
	case "location":
		return refOrAbsent(d.Location)
	case "rack":
		return refOrAbsent(d.Rack)
	case "tenant":
		return refOrAbsent(d.Tenant)
	case "primary_ip4":
		return ipOrAbsent(d.PrimaryIP4)
	case "primary_ip6":
		return ipOrAbsent(d.PrimaryIP6)
	default:
		return nil, false
	}
}

// Classification returns the manufacturer slug and display name used
// by the visibility type filter.
func (d *Device) Classification() (slug, name string, ok bool) {
	if d == nil || d.DeviceType == nil || d.DeviceType.Manufacturer == nil {
		return "", "", false
	}
	m := d.DeviceType.Manufacturer
	return m.Slug, m.Name, true
}

func refOrAbsent(r *NamedRef) (any, bool) {
	if r == nil {
		return nil, false
	}
	return r, true
}

func ipOrAbsent(a *IPAddress) (any, bool) {
	if a == nil || a.Address == "" {
		return nil, false
	}
	return a, true
}
