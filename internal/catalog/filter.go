// Package catalog narrows and orders product lists for the listing views.
package catalog

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"localwear-storefront/internal/domain"
)

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

// ParseSortKey falls back to SortName for unknown keys.
func ParseSortKey(raw string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case SortPriceLow, SortPriceHigh, SortNewest:
		return k
	default:
		return SortName
	}
}

// Criteria is the user's filter and sort selection. Nil bounds mean no constraint.
type Criteria struct {
	Search   string
	Category string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Sort     SortKey
}

// ParseCriteria builds Criteria from raw form values. Price bounds that do not parse as
// numbers are dropped.
func ParseCriteria(search, category, priceMin, priceMax, sort string) Criteria {
	return Criteria{
		Search:   search,
		Category: category,
		PriceMin: parseBound(priceMin),
		PriceMax: parseBound(priceMax),
		Sort:     ParseSortKey(sort),
	}
}

func parseBound(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// Apply returns the products matching c, stably ordered by c.Sort. The input is not modified.
func Apply(products []domain.Product, c Criteria) []domain.Product {
	needle := strings.ToLower(c.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c, needle) {
			out = append(out, p)
		}
	}
	sortProducts(out, c.Sort)
	return out
}

func matches(p domain.Product, c Criteria, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(p.Name), needle) &&
		!strings.Contains(strings.ToLower(p.Description), needle) &&
		!strings.Contains(strings.ToLower(p.Category), needle) {
		return false
	}
	if c.Category != "" && p.Category != c.Category {
		return false
	}
	if c.PriceMin != nil && p.Price.LessThan(*c.PriceMin) {
		return false
	}
	if c.PriceMax != nil && p.Price.GreaterThan(*c.PriceMax) {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortNewest:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.CreatedAt.Compare(a.CreatedAt.Time)
		})
	default:
		// collators are not safe for concurrent use
		col := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}

// Categories lists the distinct categories of products in first-seen order. Callers pass
// the unfiltered list so the selector does not shrink as filters are applied. A blank
// category is left out: an empty Criteria.Category already means every category.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
