package models

import "time"

// Category is one of the eight fixed component slots a build can hold.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryRAM         Category = "ram"
	CategoryMotherboard Category = "motherboard"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooling     Category = "cooling"
)

// Categories lists every slot in a fixed order, used wherever deterministic
// iteration over a PartSet matters.
var Categories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryRAM,
	CategoryMotherboard,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryCooling,
}

// ParseCategory maps a request path/body token onto a known Category.
func ParseCategory(s string) (Category, bool) {
	key := specKey(s)
	for _, c := range Categories {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// Component is one picked part. Specifications is an open map of free-text
// vendor fields ("socket" -> "AM5", "capacity" -> "32GB"); values are not
// normalized and may carry units, casing noise, or combined descriptors.
type Component struct {
	Name           string            `json:"name"`
	Brand          string            `json:"brand"`
	Category       Category          `json:"category"`
	Price          float64           `json:"price"`
	URL            string            `json:"url,omitempty"`
	Specifications map[string]string `json:"specifications"`
}

// Spec returns the named specification field, matching keys
// case-insensitively and ignoring spaces. Missing fields return "".
func (c *Component) Spec(name string) string {
	if c == nil || c.Specifications == nil {
		return ""
	}
	want := specKey(name)
	for k, v := range c.Specifications {
		if specKey(k) == want {
			return v
		}
	}
	return ""
}

// PartSet maps each slot to its picked component; absent slots are simply
// not present in the map (or nil).
type PartSet map[Category]*Component

// Installed returns the component in the given slot, or nil.
func (p PartSet) Installed(c Category) *Component {
	return p[c]
}

// Count returns how many slots hold a component.
func (p PartSet) Count() int {
	n := 0
	for _, c := range p {
		if c != nil {
			n++
		}
	}
	return n
}

// CompatibilityReport is the engine's verdict over one part set. It is
// recomputed wholesale on every evaluation; IsCompatible is true exactly
// when Issues is empty.
type CompatibilityReport struct {
	IsCompatible     bool      `json:"isCompatible"`
	Warnings         []string  `json:"warnings"`
	Issues           []string  `json:"issues"`
	EstimatedWattage int       `json:"estimatedWattage"`
	LastChecked      time.Time `json:"lastChecked"`
}

// Build is a persisted user build: the part set plus its latest report.
type Build struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Parts     PartSet              `json:"parts"`
	Report    *CompatibilityReport `json:"report,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}
