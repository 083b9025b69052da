package session

import (
	"testing"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSession_CheckoutGuard(t *testing.T) {
	sess := NewCartSession("term-1", "tienda-centro", "maria")

	require.NoError(t, sess.BeginCheckout())

	// Segundo intento mientras hay uno en vuelo (double-tap)
	err := sess.BeginCheckout()
	assert.ErrorIs(t, err, entity.ErrCheckoutInProgress)

	sess.EndCheckout()
	assert.NoError(t, sess.BeginCheckout())
}

func TestManager_GetOrCreateReusesSession(t *testing.T) {
	m := NewManager()

	first := m.GetOrCreate("term-1", "tienda-centro", "maria")
	second := m.GetOrCreate("term-1", "otra-tienda", "jose")

	// Mismo id: misma sesión, store y operator de la creación
	assert.Same(t, first, second)
	assert.Equal(t, "tienda-centro", second.StoreID)
	assert.Equal(t, "maria", second.OperatorName)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager()

	a := m.GetOrCreate("term-1", "tienda-centro", "maria")
	b := m.GetOrCreate("term-2", "tienda-centro", "jose")

	require.NotSame(t, a, b)

	require.NoError(t, a.Cart.AddItem(entity.Product{
		ID:    uuid.New(),
		Name:  "Pan",
		Stock: 5,
	}))

	assert.Equal(t, 1, a.Cart.Lines())
	assert.True(t, b.Cart.IsEmpty())
}

func TestManager_Drop(t *testing.T) {
	m := NewManager()

	first := m.GetOrCreate("term-1", "tienda-centro", "maria")
	m.Drop("term-1")
	second := m.GetOrCreate("term-1", "tienda-centro", "maria")

	assert.NotSame(t, first, second)
}
