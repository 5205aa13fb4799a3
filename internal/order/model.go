package order

import (
	"encoding/json"
	"time"
)

type Order struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// ProductID and ProductName are a snapshot taken when the order was
	// placed; they are never re-derived from the catalog.
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnmarshalJSON also accepts "id" for the identifier.
func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*o = Order(aux.plain)
	if o.ID == "" {
		o.ID = aux.AltID
	}
	return nil
}

// ProductRef is the product snapshot an order is placed against.
type ProductRef struct {
	ID   string
	Name string
}
