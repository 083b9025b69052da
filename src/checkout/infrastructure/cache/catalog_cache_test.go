package cache

import (
	"context"
	"errors"
	"testing"

	"pos/src/checkout/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo implementa port.ProductRepository devolviendo catálogos fijos
type fakeProductRepo struct {
	byStore  map[string][]entity.Product
	fetchErr error
	fetches  int
}

func (r *fakeProductRepo) FetchByStore(_ context.Context, storeID string) ([]entity.Product, error) {
	r.fetches++
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.byStore[storeID], nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

func product(store, name string, stock int) entity.Product {
	return entity.Product{
		ID:        uuid.New(),
		StoreID:   store,
		Name:      name,
		UnitPrice: decimal.RequireFromString("1.00"),
		Stock:     stock,
	}
}

func TestCatalogCache_RefreshLoadsSnapshot(t *testing.T) {
	pan := product("tienda-centro", "Pan", 5)
	leche := product("tienda-centro", "Leche", 3)
	repo := &fakeProductRepo{byStore: map[string][]entity.Product{
		"tienda-centro": {pan, leche},
	}}
	c := NewCatalogCache(repo)

	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))

	assert.Equal(t, 2, c.Count("tienda-centro"))

	got, found := c.Get(pan.ID)
	require.True(t, found)
	assert.Equal(t, "Pan", got.Name)
	assert.Equal(t, 5, got.Stock)
}

func TestCatalogCache_RefreshReplacesSnapshot(t *testing.T) {
	viejo := product("tienda-centro", "Descontinuado", 2)
	repo := &fakeProductRepo{byStore: map[string][]entity.Product{
		"tienda-centro": {viejo},
	}}
	c := NewCatalogCache(repo)
	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))

	// El backend ya no trae el producto viejo
	nuevo := product("tienda-centro", "Nuevo", 7)
	repo.byStore["tienda-centro"] = []entity.Product{nuevo}
	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))

	_, found := c.Get(viejo.ID)
	assert.False(t, found)

	got, found := c.Get(nuevo.ID)
	require.True(t, found)
	assert.Equal(t, "Nuevo", got.Name)
}

func TestCatalogCache_RefreshErrorKeepsPreviousSnapshot(t *testing.T) {
	pan := product("tienda-centro", "Pan", 5)
	repo := &fakeProductRepo{byStore: map[string][]entity.Product{
		"tienda-centro": {pan},
	}}
	c := NewCatalogCache(repo)
	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))

	repo.fetchErr = errors.New("backend down")
	err := c.Refresh(context.Background(), "tienda-centro")

	require.Error(t, err)
	_, found := c.Get(pan.ID)
	assert.True(t, found)
}

func TestCatalogCache_StoresAreIsolated(t *testing.T) {
	centro := product("tienda-centro", "Pan", 5)
	norte := product("tienda-norte", "Leche", 3)
	repo := &fakeProductRepo{byStore: map[string][]entity.Product{
		"tienda-centro": {centro},
		"tienda-norte":  {norte},
	}}
	c := NewCatalogCache(repo)

	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))
	require.NoError(t, c.Refresh(context.Background(), "tienda-norte"))

	assert.Len(t, c.List("tienda-centro"), 1)
	assert.Len(t, c.List("tienda-norte"), 1)
	assert.Equal(t, "Pan", c.List("tienda-centro")[0].Name)
}

func TestCatalogCache_ListReturnsCopy(t *testing.T) {
	pan := product("tienda-centro", "Pan", 5)
	repo := &fakeProductRepo{byStore: map[string][]entity.Product{
		"tienda-centro": {pan},
	}}
	c := NewCatalogCache(repo)
	require.NoError(t, c.Refresh(context.Background(), "tienda-centro"))

	list := c.List("tienda-centro")
	list[0].Name = "modificado"

	assert.Equal(t, "Pan", c.List("tienda-centro")[0].Name)
}
