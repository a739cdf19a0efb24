package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"localwear-storefront/internal/domain"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, register func(r *mux.Router)) *Client {
	t.Helper()
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	register(api)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", staticToken(token))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAuthenticateDecodesTokenAndUser(t *testing.T) {
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/auth/admin-login", func(w http.ResponseWriter, req *http.Request) {
			var creds Credentials
			require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
			assert.Equal(t, "admin@localwear.in", creds.Email)
			assert.Empty(t, req.Header.Get("Authorization"))
			assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"token": "tok-1",
				"user":  map[string]interface{}{"id": 1, "name": "Admin", "email": creds.Email, "role": "ADMIN"},
			})
		}).Methods(http.MethodPost)
	})

	res, err := c.Authenticate(context.Background(), Credentials{Email: "admin@localwear.in", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.True(t, res.User.IsAdmin())
}

func TestBadCredentialsOnAuthRouteIsAuthError(t *testing.T) {
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/auth/admin-login", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
		}).Methods(http.MethodPost)
	})

	_, err := c.Authenticate(context.Background(), Credentials{Email: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuth))

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "Invalid credentials", gerr.UserMessage())
	assert.Equal(t, http.StatusBadRequest, gerr.Status)
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrAuth},
		{http.StatusForbidden, domain.ErrAuth},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadRequest, domain.ErrValidation},
		{http.StatusConflict, domain.ErrValidation},
		{http.StatusInternalServerError, domain.ErrNetwork},
		{http.StatusBadGateway, domain.ErrNetwork},
	}
	for _, tc := range cases {
		status := tc.status
		c := newTestClient(t, "tok", func(r *mux.Router) {
			r.HandleFunc("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			})
		})
		_, err := c.GetProduct(context.Background(), 7)
		require.Error(t, err, "status %d", status)
		assert.True(t, errors.Is(err, tc.want), "status %d: got %v", status, err)
		assert.Equal(t, tc.want, Kind(err))
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base, staticToken(""))
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestUnreadableBodyIsNetworkError(t *testing.T) {
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, "{not json")
		})
	})
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestCancelledContextAbortsRequest(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/products", func(w http.ResponseWriter, req *http.Request) {
			select {
			case <-release:
			case <-req.Context().Done():
			}
		})
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.ListProducts(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestListProductsDecodesPayload(t *testing.T) {
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[{"id":1,"name":"Linen Shirt","price":29.99,"category":"Shirts","sizes":"[\"S\",\"M\"]","quantityInStock":4,"createdAt":"2024-05-01T10:00:00"}]`)
		}).Methods(http.MethodGet)
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, decimal.RequireFromString("29.99").Equal(products[0].Price))
	assert.Equal(t, []string{"S", "M"}, products[0].SizeList())
	assert.Equal(t, 2024, products[0].CreatedAt.Year())
}

func TestListProductsCollapsesConcurrentCalls(t *testing.T) {
	var hits int32
	gate := make(chan struct{})
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			<-gate
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "name": "Tee", "price": 10}})
		})
	})

	var wg sync.WaitGroup
	results := make([][]domain.Product, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			products, err := c.ListProducts(context.Background())
			assert.NoError(t, err)
			results[i] = products
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	for _, products := range results {
		assert.Len(t, products, 1)
	}
}

func TestListProductsSharedFetchSurvivesCallerCancel(t *testing.T) {
	var hits int32
	arrived := make(chan struct{}, 1)
	gate := make(chan struct{})
	c := newTestClient(t, "", func(r *mux.Router) {
		r.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
			arrived <- struct{}{}
			<-gate
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"id": 1, "name": "Tee", "price": 10}})
		})
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.ListProducts(firstCtx)
		firstErr <- err
	}()
	select {
	case <-arrived:
	case <-time.After(time.Second):
		t.Fatalf("upstream never called")
	}

	type result struct {
		products []domain.Product
		err      error
	}
	second := make(chan result, 1)
	go func() {
		products, err := c.ListProducts(context.Background())
		second <- result{products, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	err := <-firstErr
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.True(t, errors.Is(err, context.Canceled))

	close(gate)
	res := <-second
	require.NoError(t, res.err)
	assert.Len(t, res.products, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCreateOrderSendsBearerTokenAndItems(t *testing.T) {
	c := newTestClient(t, "tok-9", func(r *mux.Router) {
		r.HandleFunc("/orders", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "Bearer tok-9", req.Header.Get("Authorization"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			var in domain.CreateOrderInput
			require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
			require.Len(t, in.Items, 1)
			assert.Equal(t, int64(3), in.Items[0].ProductID)
			assert.Equal(t, "M", in.Items[0].Size)
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": 11, "status": "PLACED", "totalPrice": 59.98, "shippingAddress": in.ShippingAddress})
		}).Methods(http.MethodPost)
	})

	order, err := c.CreateOrder(context.Background(), domain.CreateOrderInput{
		ShippingAddress: "A B, 1 Road, Pune, MH - 411001, India. Phone: 99",
		Items:           []domain.OrderLine{{ProductID: 3, Size: "M", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), order.ID)
	assert.Equal(t, domain.StatusPlaced, order.Status)
}

func TestAuthedCallWithoutTokenFailsFast(t *testing.T) {
	var hits int32
	c := newTestClient(t, "", func(r *mux.Router) {
		r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&hits, 1)
		})
	})

	_, err := c.ListMyOrders(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuth))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSetOrderStatusAndDeleteProduct(t *testing.T) {
	c := newTestClient(t, "admin", func(r *mux.Router) {
		r.HandleFunc("/admin/orders/{id}/status", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "5", mux.Vars(req)["id"])
			var body map[string]string
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			writeJSON(w, http.StatusOK, map[string]interface{}{"id": 5, "status": body["status"]})
		}).Methods(http.MethodPatch)
		r.HandleFunc("/admin/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodDelete)
	})

	order, err := c.SetOrderStatus(context.Background(), 5, domain.StatusPacked)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPacked, order.Status)

	require.NoError(t, c.DeleteProduct(context.Background(), 9))
}

func TestUploadImageSendsMultipartField(t *testing.T) {
	c := newTestClient(t, "admin", func(r *mux.Router) {
		r.HandleFunc("/admin/upload-image", func(w http.ResponseWriter, req *http.Request) {
			assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data"))
			file, header, err := req.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			data, _ := io.ReadAll(file)
			assert.Equal(t, "fake-png", string(data))
			assert.Equal(t, "shirt.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
			writeJSON(w, http.StatusOK, map[string]string{"imageUrl": "https://cdn.example/shirt.png"})
		}).Methods(http.MethodPost)
	})

	url, err := c.UploadImage(context.Background(), "shirt.png", strings.NewReader("fake-png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/shirt.png", url)
}
