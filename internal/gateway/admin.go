package gateway

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"

	"localwear-storefront/internal/domain"
)

func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, call{method: http.MethodGet, path: "/admin/orders", out: &out, authed: true}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	in := map[string]domain.OrderStatus{"status": status}
	path := "/admin/orders/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.do(ctx, call{method: http.MethodPatch, path: path, in: in, out: &out, authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, call{method: http.MethodPost, path: "/admin/products", in: in, out: &out, authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	path := "/admin/products/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, call{method: http.MethodPut, path: path, in: in, out: &out, authed: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := "/admin/products/" + strconv.FormatInt(id, 10)
	return c.do(ctx, call{method: http.MethodDelete, path: path, authed: true})
}

// UploadImage sends an image as the multipart field "image" and returns its hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(512)
	contentType := http.DetectContentType(head)
	if ext := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); strings.HasPrefix(ext, "image/") {
		contentType = ext
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("gateway: build upload: %w", err)
	}
	if _, err := io.Copy(part, br); err != nil {
		return "", fmt.Errorf("gateway: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("gateway: build upload: %w", err)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	cl := call{method: http.MethodPost, path: "/admin/upload-image", out: &out, authed: true}
	if err := c.send(ctx, cl, &buf, mw.FormDataContentType()); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}
