package gateway

import (
	"context"
	"net/http"

	"localwear-storefront/internal/domain"
)

// CreateOrder places an order. Stock is validated by the backend.
func (c *Client) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, call{method: http.MethodPost, path: "/orders", in: in, out: &out, authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, call{method: http.MethodGet, path: "/orders/user", out: &out, authed: true}); err != nil {
		return nil, err
	}
	return out, nil
}
