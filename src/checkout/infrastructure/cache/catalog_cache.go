package cache

import (
	"context"
	"log"
	"sync"

	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"

	"github.com/google/uuid"
)

// CatalogCache mantiene en memoria el snapshot del catálogo por tienda
// El backend sigue siendo la fuente de verdad: el snapshot se reemplaza
// completo en cada Refresh y el drift de stock (ventas de otras
// terminales) se corrige recién ahí
type CatalogCache struct {
	productRepo port.ProductRepository

	mu      sync.RWMutex
	byStore map[string][]entity.Product
	byID    map[uuid.UUID]entity.Product
}

// NewCatalogCache crea un cache vacío
func NewCatalogCache(productRepo port.ProductRepository) *CatalogCache {
	return &CatalogCache{
		productRepo: productRepo,
		byStore:     make(map[string][]entity.Product),
		byID:        make(map[uuid.UUID]entity.Product),
	}
}

// Refresh reemplaza el snapshot de una tienda con el catálogo del backend
func (c *CatalogCache) Refresh(ctx context.Context, storeID string) error {
	products, err := c.productRepo.FetchByStore(ctx, storeID)
	if err != nil {
		log.Printf("⚠️  Warning: Could not refresh catalog for store %s: %v", storeID, err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Sacar del índice los productos del snapshot anterior de esta tienda
	for _, p := range c.byStore[storeID] {
		delete(c.byID, p.ID)
	}

	c.byStore[storeID] = products
	for _, p := range products {
		c.byID[p.ID] = p
	}

	log.Printf("✅ Catalog refreshed for store %s: %d products", storeID, len(products))
	return nil
}

// Get obtiene el snapshot de un producto por ID
func (c *CatalogCache) Get(id uuid.UUID) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	return p, ok
}

// List retorna el snapshot actual del catálogo de una tienda
func (c *CatalogCache) List(storeID string) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := c.byStore[storeID]
	out := make([]entity.Product, len(products))
	copy(out, products)
	return out
}

// Count retorna la cantidad de productos cacheados de una tienda
func (c *CatalogCache) Count(storeID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byStore[storeID])
}
