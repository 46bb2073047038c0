// internal/recommend/category.go
package recommend

import (
	"strings"

	"recommendation-workers/internal/models"
)

// ProductType is the coarse form-factor classification derived from a
// product's categories and name.
type ProductType struct {
	Desktop    bool
	Laptop     bool
	Monitor    bool
	Peripheral bool
}

func (t ProductType) Any() bool {
	return t.Desktop || t.Laptop || t.Monitor || t.Peripheral
}

// NormalizeCategories turns a raw catalog category field into a lowercase
// tag set and a ProductType. Catalog category data is inconsistent or
// missing for many items, so when no usable tags exist they are inferred
// from the product name, and the type booleans fall back to name
// substrings when the tags alone are not conclusive.
func NormalizeCategories(raw models.CategoryList, name string) ([]string, ProductType) {
	name = strings.ToLower(name)

	var tags []string
	for _, c := range raw {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			tags = append(tags, c)
		}
	}
	if len(tags) == 0 {
		tags = inferCategoriesFromName(name)
	}

	var t ProductType
	for _, tag := range tags {
		switch {
		case strings.Contains(tag, "gaming desktop"),
			strings.Contains(tag, "gaming & vr"),
			strings.Contains(tag, "desktop pc"):
			t.Desktop = true
		case strings.Contains(tag, "monitor"):
			t.Monitor = true
		case strings.Contains(tag, "input device"),
			strings.Contains(tag, "peripherals"):
			t.Peripheral = true
		}
		if (strings.Contains(tag, "gaming pcs") || strings.Contains(tag, "computer systems")) &&
			strings.Contains(name, "laptop") {
			t.Laptop = true
		}
	}

	if !t.Any() {
		t.Laptop = strings.Contains(name, "laptop")
		t.Desktop = strings.Contains(name, "desktop") || strings.Contains(name, "gaming pc")
		t.Monitor = strings.Contains(name, "monitor") || strings.Contains(name, "display")
		t.Peripheral = strings.Contains(name, "keyboard") || strings.Contains(name, "mouse")
	}

	return tags, t
}

func inferCategoriesFromName(name string) []string {
	var tags []string
	switch {
	case strings.Contains(name, "laptop"):
		tags = append(tags, "computer systems")
		if strings.Contains(name, "gaming") {
			tags = append(tags, "gaming pcs")
		}
	case strings.Contains(name, "desktop"), strings.Contains(name, "gaming pc"):
		tags = append(tags, "gaming desktop pc", "gaming & vr")
	case strings.Contains(name, "keyboard"), strings.Contains(name, "mouse"):
		tags = append(tags, "computer peripherals", "input device")
	case strings.Contains(name, "monitor"), strings.Contains(name, "display"):
		tags = append(tags, "monitor")
	}
	return tags
}
