package catalog

import (
	"sort"
	"strings"

	"github.com/minimartx/storefront/internal/domain"
)

// Sort options accepted by the product listing.
const (
	SortDefault       = "default"
	SortPriceLowHigh  = "priceLowHigh"
	SortPriceHighLow  = "priceHighLow"
	SortRatingHighLow = "ratingHighLow"
)

// CategoryAll passes every product through the category filter.
const CategoryAll = "All"

// Filter narrows products by a case-insensitive search term (matched against
// title and category) and a category. Pure: the input slice is never
// mutated.
func Filter(products []domain.ProductSnapshot, search, category string) []domain.ProductSnapshot {
	search = strings.ToLower(search)

	result := make([]domain.ProductSnapshot, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		if category != "" && category != CategoryAll && !strings.EqualFold(p.Category, category) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Sort orders products by the given option, returning a new slice. Unknown
// options keep catalog order.
func Sort(products []domain.ProductSnapshot, option string) []domain.ProductSnapshot {
	result := make([]domain.ProductSnapshot, len(products))
	copy(result, products)

	switch option {
	case SortPriceLowHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHighLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortRatingHighLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	}
	return result
}

// Categories returns "All" followed by each distinct category in first-seen
// order.
func Categories(products []domain.ProductSnapshot) []string {
	categories := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}
