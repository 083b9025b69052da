package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem representa una línea del carrito con snapshot del producto
// El snapshot (nombre, precio, stock) se captura al momento de agregar y
// NO se revalida contra el backend: stock_at_add es el límite de cantidad
type CartItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockAtAdd  int             `json:"stock_at_add"`
	Quantity    int             `json:"quantity"`
}

// Cart representa la selección en progreso de un operador
// Ordenado por inserción, una línea por producto (agregar duplicado
// incrementa cantidad). Estado volátil de sesión: nunca se persiste.
// Sin efectos colaterales: ninguna operación toca red ni storage.
type Cart struct {
	items []CartItem
}

// NewCart crea un carrito vacío
func NewCart() *Cart {
	return &Cart{}
}

// findIndex busca la línea de un producto, -1 si no está
func (c *Cart) findIndex(productID uuid.UUID) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem agrega un producto al carrito
// Producto nuevo: cantidad 1, requiere stock > 0 (ErrOutOfStock)
// Producto existente: cantidad+1 contra el stock del snapshot (ErrInsufficientStock)
// Rechazo duro, nunca clamp silencioso
func (c *Cart) AddItem(product Product) error {
	idx := c.findIndex(product.ID)
	if idx < 0 {
		if !product.InStock() {
			return ErrOutOfStock
		}
		c.items = append(c.items, CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			StockAtAdd:  product.Stock,
			Quantity:    1,
		})
		return nil
	}

	if c.items[idx].Quantity+1 > c.items[idx].StockAtAdd {
		return ErrInsufficientStock
	}
	c.items[idx].Quantity++
	return nil
}

// UpdateQuantity aplica un delta a la cantidad de una línea
// Resultado < 1: se elimina la línea (equivale a RemoveItem)
// Resultado > stock del snapshot: no-op silencioso, cantidad sin cambios
// (clamp deliberado para UI de tap rápido, distinto del rechazo de AddItem)
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int) {
	idx := c.findIndex(productID)
	if idx < 0 {
		return
	}

	newQty := c.items[idx].Quantity + delta
	if newQty < 1 {
		c.RemoveItem(productID)
		return
	}
	if newQty > c.items[idx].StockAtAdd {
		return
	}
	c.items[idx].Quantity = newQty
}

// RemoveItem elimina la línea de un producto
// Incondicional e idempotente: sin error si no está
func (c *Cart) RemoveItem(productID uuid.UUID) {
	idx := c.findIndex(productID)
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// Clear vacía el carrito (post-checkout exitoso o cancelación explícita)
func (c *Cart) Clear() {
	c.items = nil
}

// IsEmpty indica si el carrito no tiene líneas
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items retorna una copia de las líneas en orden de inserción
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Lines retorna el número de líneas del carrito
func (c *Cart) Lines() int {
	return len(c.items)
}

// TotalItems retorna la cantidad total de unidades en el carrito
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}
