package entity

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ShiftCounters acumula los totales visibles del turno del operador
// (revenue del día, cantidad de órdenes) con modelo de dos campos:
// baseline autoritativo del backend + delta local desde el último reset.
// Entre resets los contadores pueden adelantarse al backend exactamente
// por las ventas registradas localmente; nunca más que eso.
type ShiftCounters struct {
	mu sync.RWMutex

	baselineRevenue decimal.Decimal
	baselineOrders  int

	deltaRevenue decimal.Decimal
	deltaOrders  int

	lastResetAt time.Time
}

// ShiftStats es la vista de solo lectura de los contadores
type ShiftStats struct {
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int             `json:"order_count"`
	LastResetAt time.Time       `json:"last_reset_at"`
}

// NewShiftCounters crea contadores en cero
func NewShiftCounters() *ShiftCounters {
	return &ShiftCounters{
		baselineRevenue: decimal.Zero,
		deltaRevenue:    decimal.Zero,
	}
}

// RecordSale incrementa revenue y cuenta de órdenes tras un checkout
// exitoso. Puramente aditivo, sin lectura del backend.
func (c *ShiftCounters) RecordSale(total decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deltaRevenue = c.deltaRevenue.Add(total)
	c.deltaOrders++
}

// Reset reemplaza el baseline con valores autoritativos del backend y
// pone el delta local en cero. Tras un reset los contadores reflejan el
// estado del backend al momento de la consulta.
func (c *ShiftCounters) Reset(revenue decimal.Decimal, orders int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.baselineRevenue = revenue
	c.baselineOrders = orders
	c.deltaRevenue = decimal.Zero
	c.deltaOrders = 0
	c.lastResetAt = time.Now()
}

// Stats retorna la vista combinada baseline + delta
func (c *ShiftCounters) Stats() ShiftStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ShiftStats{
		Revenue:     c.baselineRevenue.Add(c.deltaRevenue),
		OrderCount:  c.baselineOrders + c.deltaOrders,
		LastResetAt: c.lastResetAt,
	}
}
