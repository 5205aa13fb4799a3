package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormValidate(t *testing.T) {
	assert.NoError(t, validForm().Validate())

	err := Form{Name: "Asha"}.Validate()
	require.ErrorIs(t, err, ErrInvalid)
	assert.EqualError(t, err, "invalid order: phone, address required")
}

func TestOrderJSON(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":"o3","name":"Ravi","productId":"p1","productName":"Lemon Pickle","createdAt":"2024-06-01T09:30:00Z"}`), &o))
	assert.Equal(t, "o3", o.ID)
	assert.Equal(t, "Lemon Pickle", o.ProductName)
	assert.Equal(t, 2024, o.CreatedAt.Year())

	out, err := json.Marshal(CreateOrderRequest{Name: "Ravi", ProductID: "p1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ravi","phone":"","address":"","productId":"p1","productName":""}`, string(out))
}
