package catalog

import "strings"

// ExportFilter composes the optional predicates applied to a product set
// before export. Zero values pass everything through.
type ExportFilter struct {
	Search   string        // case-insensitive substring on title or description
	Category string        // case-insensitive exact match
	Status   ProductStatus // exact match
}

// IsZero reports whether no predicate is set
func (f ExportFilter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.Status == ""
}

// Matches evaluates all supplied predicates against a single product.
// Predicates compose with logical AND.
func (f ExportFilter) Matches(product *Product) bool {
	if f.Search != "" {
		query := strings.ToLower(f.Search)
		title := strings.ToLower(product.Title)
		description := strings.ToLower(product.Description)
		if !strings.Contains(title, query) && !strings.Contains(description, query) {
			return false
		}
	}

	if f.Category != "" && !strings.EqualFold(f.Category, product.Category) {
		return false
	}

	if f.Status != "" && product.Status != f.Status {
		return false
	}

	return true
}

// Apply filters a product set, preserving input order. An empty result is a
// valid outcome.
func (f ExportFilter) Apply(products []Product) []Product {
	if f.IsZero() {
		return products
	}

	filtered := make([]Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
