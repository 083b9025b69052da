package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda
// El backend es la fuente de verdad; el carrito captura un snapshot
// (id, nombre, precio, stock) al momento de agregar
type Product struct {
	ID        uuid.UUID       `json:"id"`
	StoreID   string          `json:"store_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// InStock indica si el producto tiene stock disponible
func (p Product) InStock() bool {
	return p.Stock > 0
}
