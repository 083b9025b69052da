package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pos/src/checkout/application/response"

	"github.com/shopspring/decimal"
)

// DailyReportUseCase genera el reporte diario de ventas de una tienda
// Vista del dueño: agregados de revenue y cantidad de transacciones
type DailyReportUseCase struct {
	db *sql.DB
}

// NewDailyReportUseCase crea una nueva instancia del caso de uso
func NewDailyReportUseCase(db *sql.DB) *DailyReportUseCase {
	return &DailyReportUseCase{
		db: db,
	}
}

// Execute genera el reporte para una fecha específica (YYYY-MM-DD)
func (uc *DailyReportUseCase) Execute(ctx context.Context, storeID, date string) (*response.DailyReportResponse, error) {
	if uc.db == nil {
		return nil, fmt.Errorf("daily report not available (database not configured)")
	}

	parsedDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}

	// Rango [from, to) en vez de DATE(created_at) para aprovechar índice
	from := parsedDate
	to := parsedDate.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(*) as sales_count,
			COALESCE(SUM(total_amount), 0) as revenue,
			MIN(created_at) as first_sale,
			MAX(created_at) as last_sale
		FROM sales
		WHERE store_id = $1
			AND created_at >= $2
			AND created_at < $3
	`

	var salesCount int
	var revenue decimal.Decimal
	var firstSale, lastSale sql.NullTime

	err = uc.db.QueryRowContext(ctx, query, storeID, from, to).Scan(
		&salesCount,
		&revenue,
		&firstSale,
		&lastSale,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying sales: %w", err)
	}

	resp := &response.DailyReportResponse{
		Date:       date,
		StoreID:    storeID,
		SalesCount: salesCount,
		Revenue:    revenue,
	}

	// Timestamps solo si hubo ventas
	if firstSale.Valid {
		resp.FirstSaleAt = &firstSale.Time
	}
	if lastSale.Valid {
		resp.LastSaleAt = &lastSale.Time
	}

	return resp, nil
}
