package usecase

import (
	"context"
	"log"
	"sync"

	"pos/src/checkout/application/session"
	"pos/src/checkout/domain/entity"
	"pos/src/checkout/domain/port"
	"pos/src/checkout/domain/pricing"

	"github.com/google/uuid"
)

// CheckoutUseCase convierte un carrito no vacío en Sale + líneas
// persistidas + decrementos de stock, a través de llamadas independientes
// al backend (sin transacción multi-tabla), con comportamiento definido
// ante fallas parciales y sin introducir ventas duplicadas.
//
// No se genera idempotency key: dos invocaciones sobre el mismo carrito
// crean dos ventas. La prevención del double-submit es del caller
// (guard de sesión + disable-while-pending en UI), no del orquestador.
type CheckoutUseCase struct {
	saleRepo    port.SaleRepository
	productRepo port.ProductRepository
}

// CheckoutResult es el resultado de un checkout confirmado
// Warning distingue los desenlaces no limpios que NO invalidan la venta:
// *entity.PartialCommitError (líneas sin persistir, reconciliación manual)
// o *entity.StockSyncError (decrementos fallidos, drift hasta el refresh)
type CheckoutResult struct {
	Receipt *entity.Receipt
	Warning error
}

// NewCheckoutUseCase crea una nueva instancia del caso de uso
func NewCheckoutUseCase(saleRepo port.SaleRepository, productRepo port.ProductRepository) *CheckoutUseCase {
	return &CheckoutUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// Execute ejecuta el checkout de la sesión contra el backend
//
// Flujo secuencial con manejo explícito por paso:
// 1. Total congelado vía pricing engine desde el snapshot del carrito
// 2. Crear Sale — si falla: CheckoutFailedError, carrito intacto, retry-safe
// 3. Insertar líneas batcheadas con el sale_id ya asignado — si falla:
//    PartialCommitError (Sale huérfano, NO reintentar el flujo completo)
// 4. Decrementar stock por línea, CONCURRENTE y best-effort — fallas se
//    juntan en StockSyncError, nunca revierten la venta
// 5. Completados 2-3 la venta está confirmada: limpiar carrito, sumar
//    contadores de turno, emitir Receipt
//
// Decisión documentada: ante PartialCommit la venta SÍ ocurrió (la plata
// se capturó), así que el carrito se limpia, los contadores se suman y el
// Receipt se retorna junto con el warning — ver DESIGN.md.
func (uc *CheckoutUseCase) Execute(ctx context.Context, sess *session.CartSession) (*CheckoutResult, error) {
	if err := sess.BeginCheckout(); err != nil {
		return nil, err
	}
	defer sess.EndCheckout()

	if sess.Cart.IsEmpty() {
		// Precondición: nunca llega al backend
		return nil, entity.ErrEmptyCart
	}

	cartItems := sess.Cart.Items()
	log.Printf("🛒 Checkout - Store: %s, Operator: %s, Lines: %d", sess.StoreID, sess.OperatorName, len(cartItems))

	// ========================================================================
	// PASO 1: CONGELAR LÍNEAS Y TOTAL DESDE EL SNAPSHOT DEL CARRITO
	// ========================================================================
	saleItems := make([]entity.SaleLineItem, 0, len(cartItems))
	for _, ci := range cartItems {
		item, err := entity.NewSaleLineItem(
			ci.ProductID,
			ci.ProductName,
			ci.Quantity,
			ci.UnitPrice,
			pricing.Subtotal(ci.UnitPrice, ci.Quantity),
		)
		if err != nil {
			return nil, err
		}
		saleItems = append(saleItems, *item)
	}

	sale, err := entity.NewSale(sess.StoreID, sess.OperatorName, saleItems)
	if err != nil {
		return nil, err
	}

	// ========================================================================
	// PASO 2: CREAR SALE (debe completarse antes de cualquier otro paso)
	// ========================================================================
	saleID, err := uc.saleRepo.CreateSale(ctx, sale)
	if err != nil {
		log.Printf("❌ Sale creation failed: %v", err)
		return nil, &entity.CheckoutFailedError{Err: err}
	}
	sale.ID = saleID
	for i := range sale.Items {
		sale.Items[i].SaleID = saleID
	}

	// ========================================================================
	// PASO 3: INSERTAR LÍNEAS (estrictamente después del sale_id)
	// ========================================================================
	if err := uc.saleRepo.InsertLineItems(ctx, saleID, sale.Items); err != nil {
		// CRÍTICO: queda un Sale sin líneas en el backend
		// Inconsistencia conocida sin transacción cross-tabla; se expone
		// como error distinto para reconciliación manual
		log.Printf("⚠️ CRITICAL: Sale %s persisted but line items failed: %v", saleID, err)
		uc.commit(sess, sale)
		return &CheckoutResult{
			Receipt: entity.NewReceipt(sale),
			Warning: &entity.PartialCommitError{SaleID: saleID, Err: err},
		}, nil
	}

	// ========================================================================
	// PASO 4: DECREMENTAR STOCK (concurrente, best-effort, sin orden)
	// ========================================================================
	warning := uc.decrementStock(ctx, cartItems)

	// ========================================================================
	// PASO 5: VENTA CONFIRMADA
	// ========================================================================
	uc.commit(sess, sale)
	log.Printf("✅ Sale committed: ID=%s, Lines=%d, Total=%s", sale.ID, sale.TotalItems(), sale.TotalAmount)

	return &CheckoutResult{
		Receipt: entity.NewReceipt(sale),
		Warning: warning,
	}, nil
}

// commit limpia el carrito y suma los contadores de turno
func (uc *CheckoutUseCase) commit(sess *session.CartSession, sale *entity.Sale) {
	sess.Cart.Clear()
	sess.Counters.RecordSale(sale.TotalAmount)
}

// decrementStock dispara los decrementos por producto en paralelo y junta
// las fallas. Decremento ciego sobre el stock del snapshot; una falla no
// bloquea el resto (loop best-effort, sin early-exit). El drift se corrige
// en el próximo refresh del catálogo, no se computa client-side.
func (uc *CheckoutUseCase) decrementStock(ctx context.Context, items []entity.CartItem) error {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []uuid.UUID
	)

	for _, item := range items {
		wg.Add(1)
		go func(item entity.CartItem) {
			defer wg.Done()

			newStock := item.StockAtAdd - item.Quantity
			if err := uc.productRepo.UpdateStock(ctx, item.ProductID, newStock); err != nil {
				log.Printf("⚠️ Stock decrement failed for product %s: %v", item.ProductID, err)
				mu.Lock()
				failed = append(failed, item.ProductID)
				mu.Unlock()
			}
		}(item)
	}
	wg.Wait()

	if len(failed) > 0 {
		return &entity.StockSyncError{ProductIDs: failed}
	}
	return nil
}
