package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale representa una venta completada y persistida (Aggregate Root)
// Inmutable una vez creada: no hay path de edición
type Sale struct {
	ID           uuid.UUID       `json:"id"`
	StoreID      string          `json:"store_id"`
	OperatorName string          `json:"operator_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []SaleLineItem  `json:"items"`
}

// SaleLineItem representa una línea persistida de una venta
// unit_price y subtotal quedan congelados al momento de la venta
// (no se releen del Product, para preservar exactitud histórica
// frente a cambios de precio futuros)
type SaleLineItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// NewSaleLineItem crea una línea de venta con el subtotal ya congelado
// El subtotal lo calcula el pricing engine; acá solo se validan los campos
func NewSaleLineItem(
	productID uuid.UUID,
	productName string,
	quantity int,
	unitPrice decimal.Decimal,
	subtotal decimal.Decimal,
) (*SaleLineItem, error) {
	if productID == uuid.Nil {
		return nil, ErrProductNotFound
	}
	if productName == "" {
		return nil, ErrProductNameRequired
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	return &SaleLineItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
	}, nil
}

// NewSale crea una venta con sus líneas (DDD Aggregate Root)
// Invariante: total_amount == suma de subtotales de las líneas, exacto
// en aritmética decimal (nunca floating point)
func NewSale(storeID, operatorName string, items []SaleLineItem) (*Sale, error) {
	if storeID == "" {
		return nil, ErrStoreIDRequired
	}
	if operatorName == "" {
		return nil, ErrOperatorRequired
	}
	if len(items) == 0 {
		return nil, ErrSaleMustHaveItems
	}

	totalAmount := decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(item.Subtotal)
	}

	saleID := uuid.New()

	// Asignar sale_id a todas las líneas
	for i := range items {
		items[i].SaleID = saleID
	}

	return &Sale{
		ID:           saleID,
		StoreID:      storeID,
		OperatorName: operatorName,
		TotalAmount:  totalAmount,
		CreatedAt:    time.Now(),
		Items:        items,
	}, nil
}

// TotalItems retorna el número de líneas de la venta
func (s *Sale) TotalItems() int {
	return len(s.Items)
}

// Receipt representa el comprobante transitorio de una venta recién
// completada (Sale + líneas) para mostrar/imprimir. No se persiste
// de forma independiente.
type Receipt struct {
	Sale        *Sale     `json:"sale"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReceipt arma el comprobante a partir de una venta confirmada
func NewReceipt(sale *Sale) *Receipt {
	return &Receipt{
		Sale:        sale,
		GeneratedAt: time.Now(),
	}
}
