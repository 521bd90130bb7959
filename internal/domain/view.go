package domain

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

type FilterState struct {
	Category    string  `json:"category"`
	SearchQuery string  `json:"searchQuery"`
	SortKey     SortKey `json:"sortKey"`
}

func DefaultFilter() FilterState {
	return FilterState{Category: CategoryAll, SortKey: SortFeatured}
}

// Normalize maps missing or unknown filter fields to their defaults.
func (f FilterState) Normalize() FilterState {
	if f.Category == "" {
		f.Category = CategoryAll
	}
	switch f.SortKey {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating:
	default:
		f.SortKey = SortFeatured
	}
	return f
}

// View derives the filtered, sorted catalog view. Pure: the input slice is
// never reordered in place, and no matches yields an empty slice.
func View(products []Product, f FilterState) []Product {
	f = f.Normalize()
	q := strings.ToLower(f.SearchQuery)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != CategoryAll && string(p.Category) != f.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	// Stable sort keeps catalog order for ties; featured is catalog order.
	switch f.SortKey {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}
