package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MikeMC777/storefront/internal/order"
)

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var out []order.Order
	if err := c.getJSON(ctx, "/api/orders", nil, &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if out == nil {
		out = []order.Order{}
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, in order.CreateOrderRequest) (*order.Order, error) {
	var out order.Order
	if err := c.sendJSON(ctx, http.MethodPost, "/api/orders", in, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/orders/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}
