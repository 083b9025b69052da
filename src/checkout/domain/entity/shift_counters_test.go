package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShiftCounters_StartAtZero(t *testing.T) {
	c := NewShiftCounters()

	stats := c.Stats()

	assert.True(t, stats.Revenue.IsZero())
	assert.Equal(t, 0, stats.OrderCount)
	assert.True(t, stats.LastResetAt.IsZero())
}

func TestShiftCounters_RecordSaleAccumulates(t *testing.T) {
	c := NewShiftCounters()

	c.RecordSale(decimal.RequireFromString("100.50"))
	c.RecordSale(decimal.RequireFromString("49.50"))

	stats := c.Stats()
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, 2, stats.OrderCount)
}

func TestShiftCounters_ResetReplacesBaselineAndZeroesDelta(t *testing.T) {
	c := NewShiftCounters()
	c.RecordSale(decimal.RequireFromString("30.00"))

	// Reset autoritativo: pisa el baseline y descarta el delta local
	c.Reset(decimal.RequireFromString("500.00"), 12)

	stats := c.Stats()
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, 12, stats.OrderCount)
	assert.False(t, stats.LastResetAt.IsZero())
}

func TestShiftCounters_DriftBoundedByLocalSales(t *testing.T) {
	// Entre resets los contadores se adelantan al backend exactamente
	// por las ventas registradas localmente, nunca más
	c := NewShiftCounters()
	c.Reset(decimal.RequireFromString("200.00"), 5)

	c.RecordSale(decimal.RequireFromString("25.00"))
	c.RecordSale(decimal.RequireFromString("10.00"))

	stats := c.Stats()
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("235.00")))
	assert.Equal(t, 7, stats.OrderCount)
}
