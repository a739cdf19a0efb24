package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"localwear-storefront/internal/domain"
	"localwear-storefront/internal/gateway"
	"localwear-storefront/internal/session"
)

// Gateway is the backend surface the views need. *gateway.Client satisfies it.
type Gateway interface {
	Authenticate(ctx context.Context, creds gateway.Credentials) (*gateway.AuthResult, error)
	GoogleLogin(ctx context.Context, idToken string) (*gateway.AuthResult, error)
	Register(ctx context.Context, in gateway.RegisterInput) (*gateway.AuthResult, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error)
	ListMyOrders(ctx context.Context) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Deps bundles what the router needs.
type Deps struct {
	Store          *session.Store
	Gateway        Gateway
	CORSOrigins    []string
	RequestTimeout time.Duration
}

type handlers struct {
	logger  *log.Logger
	store   *session.Store
	gateway Gateway
}

// buildRouter wires routes for the storefront views.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Store == nil {
		return nil, errors.New("httpserver: session store is required")
	}
	if deps.Gateway == nil {
		return nil, errors.New("httpserver: gateway is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = deps.CORSOrigins
		router.Use(cors.New(cfg))
	}

	h := &handlers{logger: logger, store: deps.Store, gateway: deps.Gateway}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))
	// the event stream lives as long as the client stays connected
	router.GET("/events", h.events)

	views := router.Group("/", requestTimeout(deps.RequestTimeout))
	views.GET("/session", h.sessionView)
	views.POST("/login", h.login)
	views.POST("/login/google", h.googleLogin)
	views.POST("/register", h.register)
	views.POST("/logout", h.logout)

	views.GET("/products", h.listProducts)
	views.GET("/products/:id", h.productDetail)

	views.GET("/cart", h.cartView)
	views.POST("/cart/items", h.addToCart)
	// sizes such as 32/34 contain slashes; an empty size removes the sizeless line
	views.DELETE("/cart/items/:productId/*size", h.removeFromCart)
	views.DELETE("/cart", h.clearCart)
	views.POST("/checkout", h.checkout)

	views.GET("/orders", requireLogin(deps.Store), h.myOrders)

	admin := views.Group("/admin", requireAdmin(deps.Store))
	admin.GET("/products", h.adminProducts)
	admin.POST("/products", h.adminCreateProduct)
	admin.PUT("/products/:id", h.adminUpdateProduct)
	admin.DELETE("/products/:id", h.adminDeleteProduct)
	admin.GET("/orders", h.adminOrders)
	admin.PATCH("/orders/:id/status", h.adminSetOrderStatus)

	return router, nil
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requireLogin(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.IsAuthenticated() {
			abortNotice(c, domain.ErrAuth, "Please login to continue")
			return
		}
		c.Next()
	}
}

// requireAdmin gates the back-office views on the stored role. The backend still decides.
func requireAdmin(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := store.Identity()
		if !ok {
			abortNotice(c, domain.ErrAuth, "Please login to continue")
			return
		}
		if !identity.IsAdmin() {
			abortNotice(c, domain.ErrAuth, "Admin access required")
			return
		}
		c.Next()
	}
}
