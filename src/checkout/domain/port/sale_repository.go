package port

import (
	"context"
	"time"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository define el contrato de escritura/consulta de ventas
// contra el backend. Cada operación es una llamada independiente: el
// backend NO expone transacción multi-tabla al cliente, por eso el
// checkout maneja el estado intermedio (PartialCommit) de forma explícita.
type SaleRepository interface {
	// CreateSale persiste el registro de venta y retorna su identificador
	// No inserta líneas; solo el aggregate root
	CreateSale(ctx context.Context, sale *entity.Sale) (uuid.UUID, error)

	// InsertLineItems inserta todas las líneas de una venta en una sola
	// escritura batcheada. Requiere el sale_id ya asignado.
	InsertLineItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleLineItem) error

	// SummarizeSince retorna cantidad de ventas y revenue acumulado de la
	// tienda desde un instante dado (para el reset de Shift Counters)
	SummarizeSince(ctx context.Context, storeID string, since time.Time) (orders int, revenue decimal.Decimal, err error)
}
