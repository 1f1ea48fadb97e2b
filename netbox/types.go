package netbox

// Prefix is one candidate network returned by a containment query. The string fields
// mirror what the NetBox UI displays; any of them other than Prefix may be empty.
type Prefix struct {
	Prefix      string // CIDR, e.g. "10.1.0.0/16"
	VLANName    string
	Description string
	Role        string
	Tenant      string
}

// nested covers the {id, name, display, slug} objects NetBox embeds for vlan, role
// and tenant. Only the display forms matter here.
type nested struct {
	Name    string `json:"name"`
	Display string `json:"display"`
	Slug    string `json:"slug"`
}

func (t *nested) display() string {
	if t == nil {
		return ""
	}
	if len(t.Display) > 0 {
		return t.Display
	}

	return t.Name
}

type prefixJSON struct {
	Prefix      string  `json:"prefix"`
	Description string  `json:"description"`
	VLAN        *nested `json:"vlan"`
	Role        *nested `json:"role"`
	Tenant      *nested `json:"tenant"`
}

type pageJSON struct {
	Count   int          `json:"count"`
	Next    *string      `json:"next"`
	Results []prefixJSON `json:"results"`
}
