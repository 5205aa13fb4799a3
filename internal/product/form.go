package product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid product")

// Attachment is one staged image file.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Form is the raw admin input, as typed. Price stays a string until
// validation so an unparsable value can be reported back verbatim.
type Form struct {
	Name     string `json:"name" form:"name"`
	Price    string `json:"price" form:"price"`
	Size     string `json:"size" form:"size"`
	Category string `json:"category" form:"category"`
	Material string `json:"material" form:"material"`
	// Images are sent in this order; the first becomes the default image.
	Images []Attachment `json:"-" form:"-"`
}

// Payload is a validated form, ready to be sent to the backend.
type Payload struct {
	Name     string
	Price    decimal.Decimal
	Size     string
	Category Category
	Material string
	Images   []Attachment
}

func (f Form) clone() Form {
	f.Images = append([]Attachment(nil), f.Images...)
	return f
}

// Validate checks required fields. requireImages is true on create: a new
// product needs at least one image, an edit may keep the existing ones.
func (f Form) Validate(requireImages bool) (Payload, error) {
	var missing []string
	name := strings.TrimSpace(f.Name)
	if name == "" {
		missing = append(missing, "name")
	}
	rawPrice := strings.TrimSpace(f.Price)
	if rawPrice == "" {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, "category")
	}
	if requireImages && len(f.Images) == 0 {
		missing = append(missing, "at least one image")
	}
	if len(missing) > 0 {
		return Payload{}, fmt.Errorf("%w: %s required", ErrInvalid, joinFields(missing))
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: price %q is not a number", ErrInvalid, rawPrice)
	}
	if price.IsNegative() {
		return Payload{}, fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	cat, ok := ParseCategory(f.Category)
	if !ok {
		return Payload{}, fmt.Errorf("%w: unknown category %q", ErrInvalid, f.Category)
	}
	for i, img := range f.Images {
		if len(img.Data) == 0 {
			return Payload{}, fmt.Errorf("%w: image %d (%s) is empty", ErrInvalid, i+1, img.Filename)
		}
	}

	return Payload{
		Name:     name,
		Price:    price,
		Size:     strings.TrimSpace(f.Size),
		Category: cat,
		Material: strings.TrimSpace(f.Material),
		Images:   append([]Attachment(nil), f.Images...),
	}, nil
}

func joinFields(fs []string) string {
	switch len(fs) {
	case 1:
		return fs[0] + " is"
	case 2:
		return fs[0] + " and " + fs[1] + " are"
	}
	return strings.Join(fs[:len(fs)-1], ", ") + " and " + fs[len(fs)-1] + " are"
}
