package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FilterKind selects which filter dimension a mutation applies to.
type FilterKind string

const (
	FilterBrand    FilterKind = "brand"
	FilterCategory FilterKind = "category"
	FilterMinPrice FilterKind = "min_price"
	FilterMaxPrice FilterKind = "max_price"
)

// FilterCriteria accumulates brand/category/price predicates. An empty set
// or absent bound means the predicate is skipped, not "match nothing".
type FilterCriteria struct {
	brands     []string
	categories []string
	minPrice   *decimal.Decimal
	maxPrice   *decimal.Decimal
}

func NewFilterCriteria() *FilterCriteria {
	return &FilterCriteria{}
}

// AddBrand inserts a brand filter; duplicates are ignored.
func (f *FilterCriteria) AddBrand(brand string) {
	f.brands = appendUnique(f.brands, brand)
}

// AddCategory inserts a category filter; duplicates are ignored.
func (f *FilterCriteria) AddCategory(category string) {
	f.categories = appendUnique(f.categories, category)
}

// Remove drops one value from the brand or category set. Removing an absent
// value is a no-op; price kinds are not affected.
func (f *FilterCriteria) Remove(kind FilterKind, value string) {
	switch kind {
	case FilterBrand:
		f.brands = removeValue(f.brands, value)
	case FilterCategory:
		f.categories = removeValue(f.categories, value)
	}
}

// Clear empties one brand/category set.
func (f *FilterCriteria) Clear(kind FilterKind) {
	switch kind {
	case FilterBrand:
		f.brands = nil
	case FilterCategory:
		f.categories = nil
	}
}

// SetPriceBound sets or clears (nil) the min or max price. No min<=max
// validation happens here; an inverted range simply yields no matches.
func (f *FilterCriteria) SetPriceBound(kind FilterKind, value *decimal.Decimal) {
	switch kind {
	case FilterMinPrice:
		f.minPrice = clonePrice(value)
	case FilterMaxPrice:
		f.maxPrice = clonePrice(value)
	}
}

// ClearAll resets every dimension.
func (f *FilterCriteria) ClearAll() {
	f.brands = nil
	f.categories = nil
	f.minPrice = nil
	f.maxPrice = nil
}

func (f *FilterCriteria) Brands() []string     { return append([]string(nil), f.brands...) }
func (f *FilterCriteria) Categories() []string { return append([]string(nil), f.categories...) }

func (f *FilterCriteria) MinPrice() *decimal.Decimal { return clonePrice(f.minPrice) }
func (f *FilterCriteria) MaxPrice() *decimal.Decimal { return clonePrice(f.maxPrice) }

// Apply returns the subsequence of products passing every configured
// predicate plus the title substring match. Input order is preserved.
func (f *FilterCriteria) Apply(products []*Product, nameSubstring string) []*Product {
	filtered := make([]*Product, 0, len(products))

	for _, p := range products {
		if len(f.brands) > 0 && !contains(f.brands, p.Brand) {
			continue
		}
		if len(f.categories) > 0 && !contains(f.categories, p.Category) {
			continue
		}
		if f.minPrice != nil && p.Price.LessThan(*f.minPrice) {
			continue
		}
		if f.maxPrice != nil && p.Price.GreaterThan(*f.maxPrice) {
			continue
		}
		if !strings.Contains(p.Title, nameSubstring) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// Describe reports the currently applied filters, one line per dimension.
func (f *FilterCriteria) Describe() []string {
	var out []string
	if len(f.brands) > 0 {
		out = append(out, fmt.Sprintf("brands: %s", strings.Join(f.brands, ", ")))
	}
	if len(f.categories) > 0 {
		out = append(out, fmt.Sprintf("categories: %s", strings.Join(f.categories, ", ")))
	}
	if f.minPrice != nil {
		out = append(out, fmt.Sprintf("min price: %s", f.minPrice))
	}
	if f.maxPrice != nil {
		out = append(out, fmt.Sprintf("max price: %s", f.maxPrice))
	}
	return out
}

func appendUnique(values []string, v string) []string {
	if contains(values, v) {
		return values
	}
	return append(values, v)
}

func removeValue(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i], values[i+1:]...)
		}
	}
	return values
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func clonePrice(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}
