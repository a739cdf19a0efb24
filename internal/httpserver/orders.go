package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) myOrders(c *gin.Context) {
	orders, err := h.gateway.ListMyOrders(c.Request.Context())
	if err != nil {
		h.abortErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderViews(orders)})
}
