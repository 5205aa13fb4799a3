package catalog

import (
	"strings"

	"github.com/MikeMC777/storefront/internal/product"
)

// AllCategories is the admin listing's "no category filter" choice.
const AllCategories = "all"

// FilterLocal narrows an already-fetched list the way the admin dashboard
// does: an exact category match (empty or "all" for any) and a
// case-insensitive name substring.
func FilterLocal(products []product.Product, category, query string) []product.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []product.Product{}
	for _, p := range products {
		if category != "" && category != AllCategories && string(p.Category) != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoriesOf lists the distinct categories present, in first-seen order.
func CategoriesOf(products []product.Product) []string {
	seen := map[product.Category]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, string(p.Category))
	}
	return out
}
