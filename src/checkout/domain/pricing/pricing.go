// Package pricing implementa el cálculo determinístico de totales.
// Función pura sin estado oculto: llamadas repetidas sobre un carrito
// sin cambios producen resultados idénticos.
package pricing

import (
	"pos/src/checkout/domain/entity"

	"github.com/shopspring/decimal"
)

// Subtotal calcula cantidad × precio unitario redondeado a 2 decimales
// con round-half-up (ej: 10.005 → 10.01). decimal.Round redondea half
// away from zero, que para montos no negativos equivale a half-up.
func Subtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Total suma los subtotales de todas las líneas del carrito
// Se evalúa una sola vez al momento del checkout y queda congelado en el
// Sale; nunca se recomputa después contra precios posiblemente cambiados
func Total(items []entity.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(Subtotal(item.UnitPrice, item.Quantity))
	}
	return total
}
