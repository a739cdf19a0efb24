package httpserver

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"localwear-storefront/internal/domain"
	"localwear-storefront/internal/gateway"
	"localwear-storefront/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type sessionResponse struct {
	Authenticated bool                   `json:"authenticated"`
	User          *domain.Identity       `json:"user,omitempty"`
	Claims        *session.DisplayClaims `json:"claims,omitempty"`
	ItemCount     int                    `json:"itemCount"`
}

func (h *handlers) sessionResponse() sessionResponse {
	resp := sessionResponse{ItemCount: h.store.ItemCount()}
	if identity, ok := h.store.Identity(); ok {
		resp.Authenticated = true
		resp.User = &identity
		if claims, ok := session.DecodeDisplayClaims(h.store.Token()); ok {
			resp.Claims = &claims
		}
	}
	return resp
}

func (h *handlers) sessionView(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionResponse())
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortNotice(c, domain.ErrValidation, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		abortNotice(c, domain.ErrValidation, "Email and password are required")
		return
	}
	res, err := h.gateway.Authenticate(c.Request.Context(), gateway.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.abortErr(c, err)
		return
	}
	h.signIn(c, res)
}

func (h *handlers) googleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		abortNotice(c, domain.ErrValidation, "Google credential is required")
		return
	}
	res, err := h.gateway.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		h.abortErr(c, err)
		return
	}
	h.signIn(c, res)
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortNotice(c, domain.ErrValidation, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		abortNotice(c, domain.ErrValidation, "Name, email and password are required")
		return
	}
	res, err := h.gateway.Register(c.Request.Context(), gateway.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  strings.TrimSpace(req.Address),
	})
	if err != nil {
		h.abortErr(c, err)
		return
	}
	h.signIn(c, res)
}

func (h *handlers) signIn(c *gin.Context, res *gateway.AuthResult) {
	h.store.Login(c.Request.Context(), res.Token, res.User)
	c.JSON(http.StatusOK, h.sessionResponse())
}

func (h *handlers) logout(c *gin.Context) {
	h.store.Logout(c.Request.Context())
	c.JSON(http.StatusOK, h.sessionResponse())
}

// events relays store changes as server-sent events until the client goes away.
func (h *handlers) events(c *gin.Context) {
	ch, cancel := h.store.Subscribe()
	defer cancel()

	c.SSEvent("session", h.sessionResponse())
	c.Writer.Flush()

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", gin.H{})
			return true
		}
	})
}
