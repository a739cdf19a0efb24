package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"localwear-storefront/internal/catalog"
	"localwear-storefront/internal/domain"
)

type productListResponse struct {
	Products   []productView `json:"products"`
	Categories []string      `json:"categories"`
	Total      int           `json:"total"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.gateway.ListProducts(c.Request.Context())
	if err != nil {
		h.abortErr(c, err)
		return
	}
	criteria := catalog.ParseCriteria(
		c.Query("search"),
		c.Query("category"),
		c.Query("priceMin"),
		c.Query("priceMax"),
		c.Query("sort"),
	)
	filtered := catalog.Apply(products, criteria)
	c.JSON(http.StatusOK, productListResponse{
		Products:   toProductViews(filtered),
		Categories: catalog.Categories(products),
		Total:      len(filtered),
	})
}

func (h *handlers) productDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		abortNotice(c, domain.ErrNotFound, "Product not found")
		return
	}
	product, err := h.gateway.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(*product))
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
