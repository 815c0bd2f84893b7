package models

import "strings"

type Vendor struct {
	Name    string
	Image   string
	InStock bool
	Price   Price
	URL     string
}

type SearchPart struct {
	Name   string
	Image  string
	URL    string
	Vendor Vendor
}

type RatingStats struct {
	Stars   uint
	Count   uint
	Average float64
}

type PartSpec struct {
	Name   string
	Values []string
}

// Part is a catalog record as scraped from a product page. Its Specs keep
// the vendor's grouping; Component (build.go) is the flattened form the
// compatibility engine consumes.
type Part struct {
	Type    string
	Name    string
	Images  []string
	URL     string
	Vendors []Vendor
	Specs   []PartSpec
	Rating  RatingStats
}

// Component converts a catalog part into the flat form used by builds.
// Spec groups with multiple values are joined with "/" so list-valued
// fields (supported form factors, memory types) stay parseable.
func (p *Part) Component(category Category) Component {
	specs := make(map[string]string, len(p.Specs))
	brand := ""
	for _, s := range p.Specs {
		value := strings.TrimSpace(strings.Join(s.Values, "/"))
		if value == "" {
			continue
		}
		key := specKey(s.Name)
		if key == "manufacturer" {
			brand = value
			continue
		}
		specs[key] = value
	}

	price := 0.0
	for _, v := range p.Vendors {
		if v.InStock && (price == 0 || v.Price.Total < price) {
			price = v.Price.Total
		}
	}

	return Component{
		Name:           p.Name,
		Brand:          brand,
		Category:       category,
		Price:          price,
		Specifications: specs,
	}
}

// specKey normalizes a vendor spec label to a lookup key: lowercased with
// spaces removed, so "Max GPU Length", "maxGpuLength" and "max gpu length"
// collapse to the same key.
func specKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}
