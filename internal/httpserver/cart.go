package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"localwear-storefront/internal/domain"
)

type addToCartRequest struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Street          string `json:"street"`
	City            string `json:"city"`
	State           string `json:"state"`
	PinCode         string `json:"pinCode"`
	Country         string `json:"country"`
	Phone           string `json:"phone"`
}

type checkoutResponse struct {
	Order orderView    `json:"order"`
	Cart  cartResponse `json:"cart"`
}

func (h *handlers) cartView(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.store.Lines(), h.store.CartTotal()))
}

func (h *handlers) addToCart(c *gin.Context) {
	if !h.store.IsAuthenticated() {
		abortNotice(c, domain.ErrAuth, "Please login to add items to cart")
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID <= 0 {
		abortNotice(c, domain.ErrValidation, "Invalid request body")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		abortNotice(c, domain.ErrValidation, "Quantity must be at least 1")
		return
	}

	product, err := h.gateway.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	size := strings.TrimSpace(req.Size)
	if product.HasSizes() && size == "" {
		abortNotice(c, domain.ErrValidation, "Please select a size")
		return
	}

	h.store.AddToCart(*product, size, quantity)
	c.JSON(http.StatusOK, toCartResponse(h.store.Lines(), h.store.CartTotal()))
}

func (h *handlers) removeFromCart(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		abortNotice(c, domain.ErrValidation, "Invalid product id")
		return
	}
	h.store.RemoveFromCart(id, strings.TrimPrefix(c.Param("size"), "/"))
	c.JSON(http.StatusOK, toCartResponse(h.store.Lines(), h.store.CartTotal()))
}

func (h *handlers) clearCart(c *gin.Context) {
	h.store.ClearCart()
	c.JSON(http.StatusOK, toCartResponse(h.store.Lines(), h.store.CartTotal()))
}

// checkout places one order for the whole cart. The cart is only cleared once the backend
// accepts the order.
func (h *handlers) checkout(c *gin.Context) {
	if !h.store.IsAuthenticated() {
		abortNotice(c, domain.ErrAuth, "Please login to checkout")
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortNotice(c, domain.ErrValidation, "Invalid request body")
		return
	}
	lines := h.store.Lines()
	if len(lines) == 0 {
		abortNotice(c, domain.ErrValidation, "Your cart is empty")
		return
	}
	address, missing := req.address()
	if missing != "" {
		abortNotice(c, domain.ErrValidation, missing)
		return
	}

	in := domain.CreateOrderInput{ShippingAddress: address, Items: make([]domain.OrderLine, 0, len(lines))}
	for _, l := range lines {
		in.Items = append(in.Items, domain.OrderLine{ProductID: l.ProductID, Size: l.Size, Quantity: l.Quantity})
	}
	order, err := h.gateway.CreateOrder(c.Request.Context(), in)
	if err != nil {
		h.abortErr(c, err)
		return
	}

	h.store.ClearCart()
	c.JSON(http.StatusCreated, checkoutResponse{
		Order: orderView{Order: *order, Progress: order.Status.Progress()},
		Cart:  toCartResponse(h.store.Lines(), h.store.CartTotal()),
	})
}

// address returns the preformatted address or builds one from the form parts. When a part
// is missing it returns the notification text instead.
func (r checkoutRequest) address() (string, string) {
	if addr := strings.TrimSpace(r.ShippingAddress); addr != "" {
		return addr, ""
	}
	fields := []struct {
		label string
		value *string
	}{
		{"first name", &r.FirstName},
		{"last name", &r.LastName},
		{"street", &r.Street},
		{"city", &r.City},
		{"state", &r.State},
		{"PIN code", &r.PinCode},
		{"phone", &r.Phone},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return "", "Please enter your " + f.label
		}
	}
	country := strings.TrimSpace(r.Country)
	if country == "" {
		country = "India"
	}
	return fmt.Sprintf("%s %s, %s, %s, %s - %s, %s. Phone: %s",
		r.FirstName, r.LastName, r.Street, r.City, r.State, r.PinCode, country, r.Phone), ""
}
