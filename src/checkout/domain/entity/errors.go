package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// Rechazos sincrónicos del carrito (recuperables localmente, UI message)
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrProductNotFound   = errors.New("product not found")

	// Precondiciones de checkout
	ErrEmptyCart          = errors.New("cart must have at least one item")
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	// Validaciones de entidades
	ErrStoreIDRequired     = errors.New("store_id is required")
	ErrOperatorRequired    = errors.New("operator_name is required")
	ErrProductNameRequired = errors.New("product_name is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than 0")
	ErrInvalidPrice        = errors.New("price must be greater than or equal to 0")
	ErrSaleMustHaveItems   = errors.New("sale must have at least one item")
)

// CheckoutFailedError indica que falló la creación del Sale (paso 2)
// Totalmente recuperable: el carrito queda intacto y el caller puede
// reintentar el flujo completo. No se reintenta automáticamente.
type CheckoutFailedError struct {
	Err error
}

func (e *CheckoutFailedError) Error() string {
	return fmt.Sprintf("checkout failed: %v", e.Err)
}

func (e *CheckoutFailedError) Unwrap() error { return e.Err }

// PartialCommitError indica que el Sale se creó pero falló la persistencia
// de sus line items (paso 3). Queda un Sale huérfano en el backend.
// NO recuperable reintentando el flujo completo (crearía un Sale duplicado);
// requiere reconciliación manual usando SaleID.
type PartialCommitError struct {
	SaleID uuid.UUID
	Err    error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial commit: sale %s persisted without line items: %v", e.SaleID, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// StockSyncError indica que uno o más decrementos de stock fallaron
// después de un Sale confirmado (paso 4). No fatal: el Sale y sus items
// siguen siendo válidos; el stock se corrige en el próximo refresh del
// catálogo con la verdad observada del backend.
type StockSyncError struct {
	ProductIDs []uuid.UUID
}

func (e *StockSyncError) Error() string {
	ids := make([]string, 0, len(e.ProductIDs))
	for _, id := range e.ProductIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("stock sync failed for %d product(s): %s", len(ids), strings.Join(ids, ", "))
}
