package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CategoryAll is the sentinel category matching every product.
const CategoryAll = "all"

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortRelevance, SortPriceAsc, SortPriceDesc:
		return SortMode(s), nil
	}
	return "", fmt.Errorf("unknown sort mode: %q", s)
}

// FilterState drives recomputation of the filtered catalog view.
type FilterState struct {
	Query    string
	Category string
	Sort     SortMode
}

// Matches reports whether p passes the category and query predicates.
func (f FilterState) Matches(p Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	haystack := strings.ToLower(p.Title + " " + p.Description)
	return strings.Contains(haystack, q)
}

// Apply returns the filtered, sorted view of products. The view is
// rebuilt in full on every call. Price sorts are stable; relevance
// preserves catalog order exactly.
func (f FilterState) Apply(products []Product) []Product {
	view := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			view = append(view, p)
		}
	}
	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price < view[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].Price > view[j].Price
		})
	}
	return view
}
