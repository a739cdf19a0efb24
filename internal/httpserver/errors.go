package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"localwear-storefront/internal/domain"
	"localwear-storefront/internal/gateway"
)

type notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func kindName(kind error) string {
	switch kind {
	case domain.ErrAuth:
		return "auth"
	case domain.ErrValidation:
		return "validation"
	case domain.ErrNotFound:
		return "not_found"
	default:
		return "network"
	}
}

func kindStatus(kind error) int {
	switch kind {
	case domain.ErrAuth:
		return http.StatusUnauthorized
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func defaultMessage(kind error) string {
	switch kind {
	case domain.ErrAuth:
		return "Please login to continue"
	case domain.ErrValidation:
		return "Request was rejected"
	case domain.ErrNotFound:
		return "Not found"
	default:
		return "Could not reach the store"
	}
}

// abortNotice ends the request with a user facing notification.
func abortNotice(c *gin.Context, kind error, message string) {
	c.AbortWithStatusJSON(kindStatus(kind), gin.H{"error": notice{Kind: kindName(kind), Message: message}})
}

// abortErr turns a gateway failure into a notification. Nothing is retried.
func (h *handlers) abortErr(c *gin.Context, err error) {
	kind := gateway.Kind(err)
	message := defaultMessage(kind)
	var gerr *gateway.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		message = gerr.Message
	}
	h.logger.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	abortNotice(c, kind, message)
}
