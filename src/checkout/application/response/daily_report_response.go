package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyReportResponse representa el reporte diario de ventas de una tienda
type DailyReportResponse struct {
	Date        string          `json:"date"`
	StoreID     string          `json:"store_id"`
	SalesCount  int             `json:"sales_count"`
	Revenue     decimal.Decimal `json:"revenue"`
	FirstSaleAt *time.Time      `json:"first_sale_at,omitempty"`
	LastSaleAt  *time.Time      `json:"last_sale_at,omitempty"`
}
