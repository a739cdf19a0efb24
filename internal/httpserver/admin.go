package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"localwear-storefront/internal/domain"
)

type productRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	Sizes           string          `json:"sizes"`
	QuantityInStock int             `json:"quantityInStock"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *handlers) adminProducts(c *gin.Context) {
	products, err := h.gateway.ListProducts(c.Request.Context())
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductViews(products)})
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	in, ok := h.productInput(c)
	if !ok {
		return
	}
	product, err := h.gateway.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductView(*product))
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortNotice(c, domain.ErrNotFound, "Product not found")
		return
	}
	in, ok := h.productInput(c)
	if !ok {
		return
	}
	product, err := h.gateway.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(*product))
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortNotice(c, domain.ErrNotFound, "Product not found")
		return
	}
	if err := h.gateway.DeleteProduct(c.Request.Context(), id); err != nil {
		h.abortErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminOrders(c *gin.Context) {
	orders, err := h.gateway.ListAllOrders(c.Request.Context())
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders)})
}

func (h *handlers) adminSetOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortNotice(c, domain.ErrNotFound, "Order not found")
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortNotice(c, domain.ErrValidation, "Invalid request body")
		return
	}
	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		abortNotice(c, domain.ErrValidation, "Status must be PLACED, PACKED or DELIVERED")
		return
	}
	order, err := h.gateway.SetOrderStatus(c.Request.Context(), id, status)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView{Order: *order, Progress: order.Status.Progress()})
}

// productInput reads a product from a JSON body or a form. A multipart form may carry an
// image file, which is uploaded before the product is saved so it is stored with its URL.
func (h *handlers) productInput(c *gin.Context) (domain.ProductInput, bool) {
	var req productRequest
	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortNotice(c, domain.ErrValidation, "Invalid request body")
			return domain.ProductInput{}, false
		}
	} else {
		var msg string
		if req, msg = formProduct(c); msg != "" {
			abortNotice(c, domain.ErrValidation, msg)
			return domain.ProductInput{}, false
		}
	}

	in := domain.ProductInput{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
		ImageURL:        strings.TrimSpace(req.ImageURL),
		Sizes:           strings.TrimSpace(req.Sizes),
		QuantityInStock: req.QuantityInStock,
	}
	if msg := validateProduct(in); msg != "" {
		abortNotice(c, domain.ErrValidation, msg)
		return domain.ProductInput{}, false
	}

	if c.ContentType() == "multipart/form-data" {
		url, ok := h.uploadFormImage(c)
		if !ok {
			return domain.ProductInput{}, false
		}
		if url != "" {
			in.ImageURL = url
		}
	}
	return in, true
}

func (h *handlers) uploadFormImage(c *gin.Context) (string, bool) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", true
	}
	if err != nil {
		abortNotice(c, domain.ErrValidation, "Could not read the uploaded image")
		return "", false
	}
	file, err := header.Open()
	if err != nil {
		abortNotice(c, domain.ErrValidation, "Could not read the uploaded image")
		return "", false
	}
	defer file.Close()
	url, err := h.gateway.UploadImage(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.abortErr(c, err)
		return "", false
	}
	return url, true
}

func formProduct(c *gin.Context) (productRequest, string) {
	req := productRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		ImageURL:    c.PostForm("imageUrl"),
		Sizes:       c.PostForm("sizes"),
	}
	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		return req, "Price must be a number"
	}
	req.Price = price
	if raw := strings.TrimSpace(c.PostForm("quantityInStock")); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return req, "Quantity in stock must be a whole number"
		}
		req.QuantityInStock = qty
	}
	return req, ""
}

func validateProduct(in domain.ProductInput) string {
	switch {
	case in.Name == "":
		return "Product name is required"
	case in.Category == "":
		return "Category is required"
	case in.Price.IsNegative():
		return "Price cannot be negative"
	case in.QuantityInStock < 0:
		return "Quantity in stock cannot be negative"
	}
	return ""
}
