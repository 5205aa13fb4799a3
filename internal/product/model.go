package product

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed catalog categories the backend understands.
type Category string

const (
	Saree       Category = "Saree"
	SalwarKurti Category = "Salwar Kurti"
	Nighty      Category = "Nighty"
	Pickle      Category = "Pickle"
	Masala      Category = "Masala"
)

var categories = []Category{Saree, SalwarKurti, Nighty, Pickle, Masala}

// Categories lists every category in display order.
func Categories() []Category { return append([]Category(nil), categories...) }

// ParseCategory matches s against the enumeration, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	// decimal keeps prices exact on the wire and in maxPrice comparisons
	Price    decimal.Decimal `json:"price"`
	Size     string          `json:"size,omitempty"`
	Category Category        `json:"category"`
	Material string          `json:"material,omitempty"`
	// Images is ordered; the first entry is the default display image.
	Images []string `json:"images"`
}

// UnmarshalJSON also accepts "id" for the identifier and the legacy
// "image" key for the image list.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var aux struct {
		plain
		AltID  string   `json:"id"`
		Legacy []string `json:"image"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	if p.ID == "" {
		p.ID = aux.AltID
	}
	if len(p.Images) == 0 && len(aux.Legacy) > 0 {
		p.Images = aux.Legacy
	}
	return nil
}

// DefaultImage is the image shown on listings, or "" when there is none.
func (p Product) DefaultImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
