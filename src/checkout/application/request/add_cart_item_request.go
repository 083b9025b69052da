package request

import "github.com/google/uuid"

// AddCartItemRequest representa el request para agregar un producto al carrito
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}
