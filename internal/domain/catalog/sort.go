package catalog

import (
	"slices"
	"strings"
)

// SortStrategy is a pluggable total ordering over a product list. Sort must
// not mutate its input and must be stable for equal keys.
type SortStrategy interface {
	Sort(products []*Product) []*Product
	Name() string
}

type sortByPrice struct{}

// SortByPrice orders products by ascending price.
func SortByPrice() SortStrategy { return sortByPrice{} }

func (sortByPrice) Sort(products []*Product) []*Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b *Product) int {
		return a.Price.Cmp(b.Price)
	})
	return sorted
}

func (sortByPrice) Name() string { return "price" }

type sortByTitle struct{}

// SortByTitle orders products by ascending title, case-sensitive.
func SortByTitle() SortStrategy { return sortByTitle{} }

func (sortByTitle) Sort(products []*Product) []*Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b *Product) int {
		return strings.Compare(a.Title, b.Title)
	})
	return sorted
}

func (sortByTitle) Name() string { return "title" }
