package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"pos/src/checkout/application/session"
	"pos/src/checkout/domain/port"
)

// RefreshShiftUseCase reconcilia los Shift Counters con el backend
// Se ejecuta cuando la pantalla vuelve a estar activa, para corregir el
// drift de los updates optimistas (ej: ventas hechas en otra terminal)
type RefreshShiftUseCase struct {
	saleRepo port.SaleRepository
}

// NewRefreshShiftUseCase crea una nueva instancia del caso de uso
func NewRefreshShiftUseCase(saleRepo port.SaleRepository) *RefreshShiftUseCase {
	return &RefreshShiftUseCase{
		saleRepo: saleRepo,
	}
}

// Execute consulta las ventas del día de la tienda y resetea el baseline
// Tras el reset los contadores reflejan el estado del backend al momento
// de la consulta; el delta local arranca de cero
func (uc *RefreshShiftUseCase) Execute(ctx context.Context, sess *session.CartSession) error {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	orders, revenue, err := uc.saleRepo.SummarizeSince(ctx, sess.StoreID, startOfDay)
	if err != nil {
		return fmt.Errorf("error summarizing today's sales: %w", err)
	}

	sess.Counters.Reset(revenue, orders)
	log.Printf("🔄 Shift counters reset - Store: %s, Orders: %d, Revenue: %s", sess.StoreID, orders, revenue)

	return nil
}
