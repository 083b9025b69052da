package port

import (
	"context"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
)

// ProductRepository define el contrato de catálogo y stock contra el backend
type ProductRepository interface {
	// FetchByStore retorna el catálogo completo de una tienda
	// Fuente de verdad para el refresh del CatalogCache
	FetchByStore(ctx context.Context, storeID string) ([]entity.Product, error)

	// UpdateStock escribe el nuevo valor de stock de un producto
	// Decremento ciego (stock = snapshot - cantidad vendida), sin CAS:
	// ventas concurrentes del mismo producto pueden pisarse hasta el
	// próximo refresh del catálogo
	UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) error
}
