package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest representa el request de creación de venta
type CreateSaleRequest struct {
	SaleID       uuid.UUID       `json:"sale_id"`
	StoreID      string          `json:"store_id"`
	OperatorName string          `json:"operator_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateSaleResponse representa la respuesta de creación de venta
type CreateSaleResponse struct {
	SaleID uuid.UUID `json:"sale_id"`
}

// SaleLineItemRequest representa una línea en el batch de inserción
type SaleLineItemRequest struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InsertLineItemsRequest representa el batch completo de líneas
type InsertLineItemsRequest struct {
	Items []SaleLineItemRequest `json:"items"`
}

// UpdateStockRequest representa el request de escritura de stock
// Decremento ciego: el cliente manda el valor nuevo, no un delta
type UpdateStockRequest struct {
	Stock int `json:"stock"`
}

// SalesSummaryResponse representa el agregado de ventas para Shift Counters
type SalesSummaryResponse struct {
	OrdersCount int             `json:"orders_count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// BackendClient cliente HTTP contra el backend de datos de la tienda
// Implementa los ports SaleRepository y ProductRepository para despliegues
// donde la terminal habla con el backend hosteado en vez de ir directo a DB
type BackendClient struct {
	httpClient *http.Client
	baseURL    string
	apiPath    string
}

// NewBackendClient crea una nueva instancia del cliente
func NewBackendClient() *BackendClient {
	baseURL := os.Getenv("BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000" // Default para desarrollo local
	}

	apiPath := os.Getenv("BACKEND_API_PATH")
	if apiPath == "" {
		apiPath = "/api/v1"
	}

	return &BackendClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiPath: apiPath,
	}
}

// CreateSale persiste el registro de venta vía POST /sales
func (c *BackendClient) CreateSale(ctx context.Context, sale *entity.Sale) (uuid.UUID, error) {
	reqBody := CreateSaleRequest{
		SaleID:       sale.ID,
		StoreID:      sale.StoreID,
		OperatorName: sale.OperatorName,
		TotalAmount:  sale.TotalAmount,
		CreatedAt:    sale.CreatedAt,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s%s/sales", c.baseURL, c.apiPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return uuid.Nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Store-ID", sale.StoreID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error calling backend /sales: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("backend /sales returned status %d: %s", resp.StatusCode, string(body))
	}

	var saleResp CreateSaleResponse
	if err := json.Unmarshal(body, &saleResp); err != nil {
		return uuid.Nil, fmt.Errorf("error unmarshalling response: %w", err)
	}

	return saleResp.SaleID, nil
}

// InsertLineItems inserta las líneas de una venta en una sola escritura
// batcheada vía POST /sales/{id}/items
func (c *BackendClient) InsertLineItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleLineItem) error {
	reqItems := make([]SaleLineItemRequest, 0, len(items))
	for _, item := range items {
		reqItems = append(reqItems, SaleLineItemRequest{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}

	jsonData, err := json.Marshal(InsertLineItemsRequest{Items: reqItems})
	if err != nil {
		return fmt.Errorf("error marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s%s/sales/%s/items", c.baseURL, c.apiPath, saleID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling backend /sales/%s/items: %w", saleID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("backend /sales/%s/items returned status %d: %s", saleID, resp.StatusCode, string(body))
	}

	return nil
}

// SummarizeSince consulta el agregado de ventas vía GET /sales/summary
func (c *BackendClient) SummarizeSince(ctx context.Context, storeID string, since time.Time) (int, decimal.Decimal, error) {
	url := fmt.Sprintf("%s%s/sales/summary?store_id=%s&since=%s",
		c.baseURL, c.apiPath, storeID, since.Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Store-ID", storeID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("error calling backend /sales/summary: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, decimal.Zero, fmt.Errorf("backend /sales/summary returned status %d: %s", resp.StatusCode, string(body))
	}

	var summary SalesSummaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return 0, decimal.Zero, fmt.Errorf("error unmarshalling response: %w", err)
	}

	return summary.OrdersCount, summary.Revenue, nil
}

// FetchByStore obtiene el catálogo completo vía GET /products
func (c *BackendClient) FetchByStore(ctx context.Context, storeID string) ([]entity.Product, error) {
	url := fmt.Sprintf("%s%s/products?store_id=%s", c.baseURL, c.apiPath, storeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Store-ID", storeID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling backend /products: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend /products returned status %d: %s", resp.StatusCode, string(body))
	}

	var products []entity.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}

	return products, nil
}

// UpdateStock escribe el nuevo stock de un producto vía PATCH /products/{id}/stock
func (c *BackendClient) UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) error {
	jsonData, err := json.Marshal(UpdateStockRequest{Stock: newStock})
	if err != nil {
		return fmt.Errorf("error marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s%s/products/%s/stock", c.baseURL, c.apiPath, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling backend /products/%s/stock: %w", productID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("product not found: %s", productID)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend /products/%s/stock returned status %d: %s", productID, resp.StatusCode, string(body))
	}

	return nil
}
