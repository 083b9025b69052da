package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptItemResponse representa una línea del comprobante
type ReceiptItemResponse struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CheckoutWarning describe un desenlace no limpio de un checkout confirmado
// kind: "partial_commit" | "stock_sync_failure"
type CheckoutWarning struct {
	Kind       string      `json:"kind"`
	Message    string      `json:"message"`
	SaleID     *uuid.UUID  `json:"sale_id,omitempty"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
}

// ReceiptResponse es el DTO listo para mostrar/imprimir tras el checkout
type ReceiptResponse struct {
	SaleID       uuid.UUID             `json:"sale_id"`
	StoreID      string                `json:"store_id"`
	OperatorName string                `json:"operator_name"`
	Items        []ReceiptItemResponse `json:"items"`
	TotalItems   int                   `json:"total_items"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	CreatedAt    time.Time             `json:"created_at"`
	Warning      *CheckoutWarning      `json:"warning,omitempty"`
}
