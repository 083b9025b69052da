package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalePostgresRepository implementa SaleRepository usando PostgreSQL
// Para terminales que hablan directo con la base de la tienda.
// Nota: CreateSale e InsertLineItems son llamadas independientes a
// propósito — el contrato del port no expone transacción cross-llamada,
// igual que el backend hosteado; el checkout maneja el PartialCommit.
type SalePostgresRepository struct {
	db *sql.DB
}

// NewSalePostgresRepository crea una nueva instancia del repositorio
func NewSalePostgresRepository(db *sql.DB) *SalePostgresRepository {
	return &SalePostgresRepository{
		db: db,
	}
}

// CreateSale persiste el registro de venta (solo el aggregate root)
func (r *SalePostgresRepository) CreateSale(ctx context.Context, sale *entity.Sale) (uuid.UUID, error) {
	query := `
		INSERT INTO sales (
			id, store_id, operator_name, total_amount, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.StoreID,
		sale.OperatorName,
		sale.TotalAmount,
		sale.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error saving sale: %w", err)
	}

	return sale.ID, nil
}

// InsertLineItems inserta todas las líneas en una sola escritura batcheada
// Transacción interna para que el batch sea todo-o-nada: o todas las
// líneas quedan, o ninguna (y el checkout reporta PartialCommit)
func (r *SalePostgresRepository) InsertLineItems(ctx context.Context, saleID uuid.UUID, items []entity.SaleLineItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO sale_line_items (
			id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	for _, item := range items {
		_, err = tx.ExecContext(ctx, query,
			item.ID,
			saleID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("error saving sale line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// SummarizeSince retorna cantidad y revenue de ventas desde un instante
func (r *SalePostgresRepository) SummarizeSince(ctx context.Context, storeID string, since time.Time) (int, decimal.Decimal, error) {
	query := `
		SELECT
			COUNT(*) as orders_count,
			COALESCE(SUM(total_amount), 0) as revenue
		FROM sales
		WHERE store_id = $1
			AND created_at >= $2
	`

	var orders int
	var revenue decimal.Decimal

	err := r.db.QueryRowContext(ctx, query, storeID, since).Scan(&orders, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("error summarizing sales: %w", err)
	}

	return orders, revenue, nil
}
