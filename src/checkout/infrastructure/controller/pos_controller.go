package controller

import (
	"errors"
	"log"
	"net/http"

	"pos/src/checkout/application/request"
	"pos/src/checkout/application/response"
	"pos/src/checkout/application/session"
	"pos/src/checkout/application/usecase"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/pricing"
	"pos/src/checkout/infrastructure/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// checkoutTotal cuenta checkouts por desenlace para Prometheus
// outcome: committed | partial_commit | stock_sync_failure | failed | rejected
var checkoutTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pos_checkout_total",
		Help: "Total de checkouts procesados por desenlace",
	},
	[]string{"outcome"},
)

// PosController maneja las peticiones HTTP de la pantalla de venta:
// catálogo, carrito de sesión, checkout y contadores de turno
type PosController struct {
	catalog        *cache.CatalogCache
	sessions       *session.Manager
	checkoutUC     *usecase.CheckoutUseCase
	refreshShiftUC *usecase.RefreshShiftUseCase
}

// NewPosController crea una nueva instancia del controlador
func NewPosController(
	catalog *cache.CatalogCache,
	sessions *session.Manager,
	checkoutUC *usecase.CheckoutUseCase,
	refreshShiftUC *usecase.RefreshShiftUseCase,
) *PosController {
	return &PosController{
		catalog:        catalog,
		sessions:       sessions,
		checkoutUC:     checkoutUC,
		refreshShiftUC: refreshShiftUC,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *PosController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/catalog", c.ListCatalog)

	cart := router.Group("/cart")
	{
		cart.GET("", c.GetCart)
		cart.DELETE("", c.ClearCart)
		cart.POST("/items", c.AddCartItem)
		cart.PATCH("/items/:product_id", c.UpdateQuantity)
		cart.DELETE("/items/:product_id", c.RemoveCartItem)
	}

	router.POST("/checkout", c.Checkout)

	shift := router.Group("/shift")
	{
		shift.GET("", c.ShiftStats)
		shift.POST("/refresh", c.RefreshShift)
	}

	log.Println("Rutas POS disponibles:")
	log.Println("  GET    /api/v1/catalog")
	log.Println("  GET    /api/v1/cart")
	log.Println("  DELETE /api/v1/cart")
	log.Println("  POST   /api/v1/cart/items")
	log.Println("  PATCH  /api/v1/cart/items/:product_id")
	log.Println("  DELETE /api/v1/cart/items/:product_id")
	log.Println("  POST   /api/v1/checkout  ⭐ (POS Checkout)")
	log.Println("  GET    /api/v1/shift")
	log.Println("  POST   /api/v1/shift/refresh")
}

// sessionFromContext resuelve la sesión del operador desde los headers
// X-Store-ID y X-Session-ID son obligatorios; X-Operator identifica al
// cajero en el registro de venta
func (c *PosController) sessionFromContext(ctx *gin.Context) (*session.CartSession, bool) {
	storeID := ctx.GetHeader("X-Store-ID")
	if storeID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Store-ID header is required"})
		return nil, false
	}

	sessionID := ctx.GetHeader("X-Session-ID")
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Session-ID header is required"})
		return nil, false
	}

	operator := ctx.GetHeader("X-Operator")
	if operator == "" {
		operator = "unknown"
	}

	return c.sessions.GetOrCreate(sessionID, storeID, operator), true
}

// cartView arma la vista de solo lectura del carrito con totales
func cartView(cart *entity.Cart) response.CartResponse {
	items := cart.Items()

	resp := response.CartResponse{
		Items:       make([]response.CartItemResponse, 0, len(items)),
		TotalItems:  cart.TotalItems(),
		TotalAmount: pricing.Total(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, response.CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    pricing.Subtotal(item.UnitPrice, item.Quantity),
		})
	}
	return resp
}

// ListCatalog lista el snapshot del catálogo de la tienda
// ?refresh=true fuerza un refresh contra el backend antes de responder
func (c *PosController) ListCatalog(ctx *gin.Context) {
	storeID := ctx.GetHeader("X-Store-ID")
	if storeID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "X-Store-ID header is required"})
		return
	}

	if ctx.Query("refresh") == "true" || c.catalog.Count(storeID) == 0 {
		if err := c.catalog.Refresh(ctx.Request.Context(), storeID); err != nil {
			log.Printf("Error refreshing catalog: %v", err)
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error":   "Error refreshing catalog",
				"details": err.Error(),
			})
			return
		}
	}

	products := c.catalog.List(storeID)
	ctx.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total_count": len(products),
	})
}

// GetCart retorna la vista del carrito de la sesión
func (c *PosController) GetCart(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, cartView(sess.Cart))
}

// ClearCart vacía el carrito (cancelación explícita, sin efecto en backend)
func (c *PosController) ClearCart(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	sess.Cart.Clear()
	ctx.JSON(http.StatusOK, cartView(sess.Cart))
}

// AddCartItem agrega un producto al carrito desde el snapshot del catálogo
func (c *PosController) AddCartItem(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	var req request.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, found := c.catalog.Get(req.ProductID)
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Product not found in catalog"})
		return
	}

	if err := sess.Cart.AddItem(product); err != nil {
		// Rechazos locales de stock: recuperables con mensaje en UI
		if errors.Is(err, entity.ErrOutOfStock) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
			return
		}
		if errors.Is(err, entity.ErrInsufficientStock) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Quantity exceeds available stock"})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, cartView(sess.Cart))
}

// UpdateQuantity aplica un delta a una línea del carrito
// El clamp sobre el stock del snapshot es silencioso: responde 200 con el
// carrito sin cambios (deliberado para UI de tap rápido)
func (c *PosController) UpdateQuantity(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	productID, err := uuid.Parse(ctx.Param("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id format"})
		return
	}

	var req request.UpdateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sess.Cart.UpdateQuantity(productID, req.Delta)
	ctx.JSON(http.StatusOK, cartView(sess.Cart))
}

// RemoveCartItem elimina una línea del carrito (idempotente)
func (c *PosController) RemoveCartItem(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	productID, err := uuid.Parse(ctx.Param("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id format"})
		return
	}

	sess.Cart.RemoveItem(productID)
	ctx.JSON(http.StatusOK, cartView(sess.Cart))
}

// Checkout confirma el carrito contra el backend
// Mapeo de desenlaces:
//   - carrito vacío → 400 (nunca llega al backend)
//   - checkout en vuelo → 409
//   - CheckoutFailed (paso 2) → 502, retry-safe
//   - PartialCommit / StockSyncFailure → 201 con receipt + warning
//     (la venta ocurrió; el warning va al operador como aviso secundario)
func (c *PosController) Checkout(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	result, err := c.checkoutUC.Execute(ctx.Request.Context(), sess)
	if err != nil {
		log.Printf("Error on checkout: %v", err)

		if errors.Is(err, entity.ErrEmptyCart) {
			checkoutTotal.WithLabelValues("rejected").Inc()
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		if errors.Is(err, entity.ErrCheckoutInProgress) {
			checkoutTotal.WithLabelValues("rejected").Inc()
			ctx.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
			return
		}

		var checkoutFailed *entity.CheckoutFailedError
		if errors.As(err, &checkoutFailed) {
			checkoutTotal.WithLabelValues("failed").Inc()
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error":      "Checkout failed, cart preserved",
				"details":    err.Error(),
				"retry_safe": true,
			})
			return
		}

		checkoutTotal.WithLabelValues("failed").Inc()
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Error on checkout",
			"details": err.Error(),
		})
		return
	}

	resp := receiptView(result)
	if resp.Warning == nil {
		checkoutTotal.WithLabelValues("committed").Inc()
	} else {
		checkoutTotal.WithLabelValues(resp.Warning.Kind).Inc()
	}

	ctx.JSON(http.StatusCreated, resp)
}

// receiptView arma el DTO del comprobante con el warning si lo hay
func receiptView(result *usecase.CheckoutResult) response.ReceiptResponse {
	sale := result.Receipt.Sale

	items := make([]response.ReceiptItemResponse, 0, len(sale.Items))
	totalItems := 0
	for _, item := range sale.Items {
		items = append(items, response.ReceiptItemResponse{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
		totalItems += item.Quantity
	}

	resp := response.ReceiptResponse{
		SaleID:       sale.ID,
		StoreID:      sale.StoreID,
		OperatorName: sale.OperatorName,
		Items:        items,
		TotalItems:   totalItems,
		TotalAmount:  sale.TotalAmount,
		CreatedAt:    sale.CreatedAt,
	}

	var partial *entity.PartialCommitError
	var stockSync *entity.StockSyncError
	switch {
	case errors.As(result.Warning, &partial):
		saleID := partial.SaleID
		resp.Warning = &response.CheckoutWarning{
			Kind:    "partial_commit",
			Message: "Sale persisted without line items, manual reconciliation required",
			SaleID:  &saleID,
		}
	case errors.As(result.Warning, &stockSync):
		resp.Warning = &response.CheckoutWarning{
			Kind:       "stock_sync_failure",
			Message:    "Sale committed but some stock decrements failed, stock will resync on next catalog refresh",
			ProductIDs: stockSync.ProductIDs,
		}
	}

	return resp
}

// ShiftStats retorna los contadores de turno de la sesión
func (c *PosController) ShiftStats(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, sess.Counters.Stats())
}

// RefreshShift resetea los contadores con los valores autoritativos del backend
func (c *PosController) RefreshShift(ctx *gin.Context) {
	sess, ok := c.sessionFromContext(ctx)
	if !ok {
		return
	}

	if err := c.refreshShiftUC.Execute(ctx.Request.Context(), sess); err != nil {
		log.Printf("Error refreshing shift counters: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":   "Error refreshing shift counters",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, sess.Counters.Stats())
}
