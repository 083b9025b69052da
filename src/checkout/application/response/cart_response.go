package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemResponse representa una línea del carrito para la UI
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse es la vista de solo lectura del carrito
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}
