package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pos/src/checkout/application/session"
	"pos/src/checkout/application/usecase"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/infrastructure/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaleRepo struct {
	mu        sync.Mutex
	createErr error
	insertErr error
	created   []*entity.Sale
}

func (r *fakeSaleRepo) CreateSale(_ context.Context, sale *entity.Sale) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, sale)
	return sale.ID, nil
}

func (r *fakeSaleRepo) InsertLineItems(_ context.Context, _ uuid.UUID, _ []entity.SaleLineItem) error {
	return r.insertErr
}

func (r *fakeSaleRepo) SummarizeSince(_ context.Context, _ string, _ time.Time) (int, decimal.Decimal, error) {
	return 3, decimal.RequireFromString("120.00"), nil
}

type fakeProductRepo struct {
	products []entity.Product
}

func (r *fakeProductRepo) FetchByStore(_ context.Context, _ string) ([]entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

func setupRouter(t *testing.T, saleRepo *fakeSaleRepo, products ...entity.Product) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productRepo := &fakeProductRepo{products: products}
	catalog := cache.NewCatalogCache(productRepo)
	require.NoError(t, catalog.Refresh(context.Background(), "tienda-centro"))

	sessions := session.NewManager()
	checkoutUC := usecase.NewCheckoutUseCase(saleRepo, productRepo)
	refreshShiftUC := usecase.NewRefreshShiftUseCase(saleRepo)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewPosController(catalog, sessions, checkoutUC, refreshShiftUC).RegisterRoutes(v1)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Store-ID", "tienda-centro")
	req.Header.Set("X-Session-ID", "term-1")
	req.Header.Set("X-Operator", "maria")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func catalogProduct(name, price string, stock int) entity.Product {
	return entity.Product{
		ID:        uuid.New(),
		StoreID:   "tienda-centro",
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestPosController_AddItemAndGetCart(t *testing.T) {
	pan := catalogProduct("Pan", "1.50", 5)
	router := setupRouter(t, &fakeSaleRepo{}, pan)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": pan.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		Items      []json.RawMessage `json:"items"`
		TotalItems int               `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.TotalItems)
}

func TestPosController_AddItemOutOfStock(t *testing.T) {
	agotado := catalogProduct("Agotado", "2.00", 0)
	router := setupRouter(t, &fakeSaleRepo{}, agotado)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": agotado.ID})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPosController_AddItemUnknownProduct(t *testing.T) {
	router := setupRouter(t, &fakeSaleRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": uuid.New()})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPosController_MissingHeaders(t *testing.T) {
	router := setupRouter(t, &fakeSaleRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPosController_CheckoutEmptyCart(t *testing.T) {
	router := setupRouter(t, &fakeSaleRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/checkout", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPosController_CheckoutHappyPath(t *testing.T) {
	pan := catalogProduct("Pan", "1.50", 5)
	saleRepo := &fakeSaleRepo{}
	router := setupRouter(t, saleRepo, pan)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": pan.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var receipt struct {
		SaleID      uuid.UUID       `json:"sale_id"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		Warning     *struct {
			Kind string `json:"kind"`
		} `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.NotEqual(t, uuid.Nil, receipt.SaleID)
	assert.True(t, receipt.TotalAmount.Equal(decimal.RequireFromString("1.50")))
	assert.Nil(t, receipt.Warning)

	// El carrito quedó vacío y el turno registró la venta
	w = doRequest(router, http.MethodGet, "/api/v1/cart", nil)
	var cart struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 0, cart.TotalItems)

	w = doRequest(router, http.MethodGet, "/api/v1/shift", nil)
	var stats struct {
		OrderCount int `json:"order_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.OrderCount)
}

func TestPosController_CheckoutFailedIsRetrySafe(t *testing.T) {
	pan := catalogProduct("Pan", "1.50", 5)
	saleRepo := &fakeSaleRepo{createErr: fmt.Errorf("backend down")}
	router := setupRouter(t, saleRepo, pan)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": pan.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	// El carrito se preserva para el reintento
	w = doRequest(router, http.MethodGet, "/api/v1/cart", nil)
	var cart struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.TotalItems)
}

func TestPosController_PartialCommitReturnsReceiptWithWarning(t *testing.T) {
	pan := catalogProduct("Pan", "1.50", 5)
	saleRepo := &fakeSaleRepo{insertErr: fmt.Errorf("batch rejected")}
	router := setupRouter(t, saleRepo, pan)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": pan.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var receipt struct {
		Warning *struct {
			Kind   string     `json:"kind"`
			SaleID *uuid.UUID `json:"sale_id"`
		} `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	require.NotNil(t, receipt.Warning)
	assert.Equal(t, "partial_commit", receipt.Warning.Kind)
	require.NotNil(t, receipt.Warning.SaleID)
	assert.Equal(t, saleRepo.created[0].ID, *receipt.Warning.SaleID)
}

func TestPosController_ShiftRefresh(t *testing.T) {
	router := setupRouter(t, &fakeSaleRepo{})

	w := doRequest(router, http.MethodPost, "/api/v1/shift/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Revenue    decimal.Decimal `json:"revenue"`
		OrderCount int             `json:"order_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("120.00")))
	assert.Equal(t, 3, stats.OrderCount)
}

func TestPosController_UpdateQuantityClampIsSilent(t *testing.T) {
	yerba := catalogProduct("Yerba", "8.00", 1)
	router := setupRouter(t, &fakeSaleRepo{}, yerba)

	w := doRequest(router, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": yerba.ID})
	require.Equal(t, http.StatusOK, w.Code)

	// Clamp: cantidad ya en el límite, +1 responde 200 sin cambios
	path := fmt.Sprintf("/api/v1/cart/items/%s", yerba.ID)
	w = doRequest(router, http.MethodPatch, path, gin.H{"delta": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.TotalItems)
}
