package order

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid order")

// Form is the buyer's input on the product detail view.
type Form struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// Validate requires every field to be non-blank.
func (f Form) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(f.Address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalid, strings.Join(missing, ", "))
	}
	return nil
}

// CreateOrderRequest is the POST /api/orders body.
type CreateOrderRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}
