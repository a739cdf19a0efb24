package gateway

import (
	"context"
	"net/http"
	"strconv"

	"localwear-storefront/internal/domain"
)

const listProductsOp = "GET /products"

// ListProducts fetches the full catalog. Concurrent calls share one request; the shared
// request is not tied to any one caller, and each caller stops waiting when its own ctx ends.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ch := c.products.DoChan("products", func() (interface{}, error) {
		fetchCtx, cancel := c.detached(ctx)
		defer cancel()
		var out []domain.Product
		if err := c.do(fetchCtx, call{method: http.MethodGet, path: "/products", out: &out}); err != nil {
			return nil, err
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, &Error{Kind: domain.ErrNetwork, Op: listProductsOp, Message: "Could not reach the store", cause: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		products := res.Val.([]domain.Product)
		if res.Shared {
			products = append([]domain.Product(nil), products...)
		}
		return products, nil
	}
}

// detached keeps ctx values but drops its cancellation, bounded by the client timeout.
func (c *Client) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if c.httpClient.Timeout > 0 {
		return context.WithTimeout(base, c.httpClient.Timeout)
	}
	return context.WithCancel(base)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, call{method: http.MethodGet, path: "/products/" + strconv.FormatInt(id, 10), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
