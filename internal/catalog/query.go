package catalog

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// pricePhrase is the only natural-language constraint understood:
// "under N" or "below N".
var pricePhrase = regexp.MustCompile(`(?:under|below)\s*(\d+)`)

// Filter is a compiled catalog query. Empty Name and nil MaxPrice mean
// "no constraint" and are left out of the request.
type Filter struct {
	Category string           `json:"category,omitempty"`
	Name     string           `json:"search,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
}

// Compile lower-cases the search text, pulls out the first
// "under/below N" phrase as the price ceiling and uses what is left as
// the name filter.
func Compile(input, category string) Filter {
	f := Filter{Category: category}
	text := strings.ToLower(input)

	if m := pricePhrase.FindStringSubmatchIndex(text); m != nil {
		if v, err := decimal.NewFromString(text[m[2]:m[3]]); err == nil {
			f.MaxPrice = &v
		}
		// one space where the phrase was cut; the rest is left as typed
		before := strings.TrimRightFunc(text[:m[0]], unicode.IsSpace)
		after := strings.TrimLeftFunc(text[m[1]:], unicode.IsSpace)
		text = before + " " + after
	}
	f.Name = strings.TrimSpace(text)
	return f
}

// Query renders the filter as GET /api/products parameters.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Name != "" {
		q.Set("search", f.Name)
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	return q
}
