// Package catalog turns category routes and free-text search into catalog
// queries and holds the resulting product lists.
package catalog

import (
	"strings"

	"github.com/MikeMC777/storefront/internal/product"
)

var slugs = map[string]product.Category{
	"sarees":          product.Saree,
	"salwar-kurti":    product.SalwarKurti,
	"nighty":          product.Nighty,
	"pickle":          product.Pickle,
	"organic-masalas": product.Masala,
}

// Resolve maps a route slug to the category name the backend filters on.
// Matching ignores case; an unknown slug is returned untouched.
func Resolve(slug string) string {
	if c, ok := slugs[strings.ToLower(slug)]; ok {
		return string(c)
	}
	return slug
}

// SlugFor is the reverse of Resolve, for building category links.
func SlugFor(category string) (string, bool) {
	for s, c := range slugs {
		if strings.EqualFold(string(c), category) {
			return s, true
		}
	}
	return "", false
}
