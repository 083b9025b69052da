package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
)

// ProductPostgresRepository implementa ProductRepository usando PostgreSQL
type ProductPostgresRepository struct {
	db *sql.DB
}

// NewProductPostgresRepository crea una nueva instancia del repositorio
func NewProductPostgresRepository(db *sql.DB) *ProductPostgresRepository {
	return &ProductPostgresRepository{
		db: db,
	}
}

// FetchByStore retorna el catálogo completo de una tienda
func (r *ProductPostgresRepository) FetchByStore(ctx context.Context, storeID string) ([]entity.Product, error) {
	query := `
		SELECT id, store_id, name, unit_price, stock, COALESCE(image_url, '')
		FROM products
		WHERE store_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		err := rows.Scan(
			&p.ID,
			&p.StoreID,
			&p.Name,
			&p.UnitPrice,
			&p.Stock,
			&p.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// UpdateStock escribe el nuevo valor de stock de un producto
// Decremento ciego: escribe el valor calculado desde el snapshot del
// carrito, sin comparar contra el valor vigente (sin CAS)
func (r *ProductPostgresRepository) UpdateStock(ctx context.Context, productID uuid.UUID, newStock int) error {
	query := `
		UPDATE products
		SET stock = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, productID, newStock)
	if err != nil {
		return fmt.Errorf("error updating stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("product not found: %s", productID)
	}

	return nil
}
