package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Henzp/tienda-plantas/models"
)

func newTestProduct(t *testing.T, s *MemoryStore, nombre string, precio float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Nombre: nombre, Descripcion: "desc", Precio: precio, Categoria: "interior", Stock: stock}
	require.NoError(t, s.CreateProduct(context.Background(), &p))
	return p
}

func TestProcessPurchaseDecrementsStock(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := newTestProduct(t, s, "Monstera", 12990, 5)

	sale, err := s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: p.Id.Hex(), Cantidad: 3},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Cantidad)
	assert.Equal(t, 12990.0, sale.Items[0].PrecioUnitario)
	assert.Equal(t, 12990.0*3, sale.Total)
	assert.NotEmpty(t, sale.Boleta)

	got, err := s.ProductByID(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)

	// Second purchase exceeding the remaining stock fails and leaves it alone.
	_, err = s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: p.Id.Hex(), Cantidad: 3},
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Monstera", stockErr.Producto)
	assert.Equal(t, 2, stockErr.Disponible)

	got, err = s.ProductByID(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestProcessPurchaseIsAtomic(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	ok := newTestProduct(t, s, "Ficus", 8990, 10)
	scarce := newTestProduct(t, s, "Suculenta", 2990, 1)

	_, err := s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: ok.Id.Hex(), Cantidad: 4},
		{ProductoId: scarce.Id.Hex(), Cantidad: 2},
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	// The first line item's stock must not have been decremented.
	got, err := s.ProductByID(ctx, ok.Id)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	got, err = s.ProductByID(ctx, scarce.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

func TestProcessPurchaseMissingAndInactiveProducts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: primitive.NewObjectID().Hex(), Cantidad: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	p := newTestProduct(t, s, "Helecho", 4990, 5)
	require.NoError(t, s.DeleteProduct(ctx, p.Id))
	_, err = s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: p.Id.Hex(), Cantidad: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.ProcessPurchase(ctx, "user-1", nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestProcessPurchaseRepeatedLineItems(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := newTestProduct(t, s, "Cactus", 1990, 3)

	// Two lines for the same product must be validated against the running
	// remainder, not the original stock.
	_, err := s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
		{ProductoId: p.Id.Hex(), Cantidad: 2},
		{ProductoId: p.Id.Hex(), Cantidad: 2},
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Disponible)

	got, err := s.ProductByID(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestReceiptTokensAreUnique(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := newTestProduct(t, s, "Palmera", 19990, 1000)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		sale, err := s.ProcessPurchase(ctx, "user-1", []models.PurchaseItem{
			{ProductoId: p.Id.Hex(), Cantidad: 1},
		})
		require.NoError(t, err)
		assert.False(t, seen[sale.Boleta], "boleta repetida: %s", sale.Boleta)
		seen[sale.Boleta] = true
	}
}

func TestCreateUserEmailUniquenessIsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u := models.User{Nombre: "Ana", Apellido: "Rojas", Email: "Ana@Example.com", Password: "x"}
	require.NoError(t, s.CreateUser(ctx, &u))
	assert.Equal(t, "ana@example.com", u.Email)

	dup := models.User{Nombre: "Otra", Apellido: "Ana", Email: "ANA@example.COM", Password: "y"}
	assert.ErrorIs(t, s.CreateUser(ctx, &dup), ErrDuplicateEmail)

	found, err := s.UserByEmail(ctx, "aNa@exAmple.com")
	require.NoError(t, err)
	assert.Equal(t, u.Id, found.Id)
}

func TestBannerOrderUniqueness(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := models.BannerItem{Orden: 1, Imagen: "a.jpg", Alt: "a"}
	require.NoError(t, s.CreateBannerItem(ctx, &first))

	dup := models.BannerItem{Orden: 1, Imagen: "b.jpg", Alt: "b"}
	assert.ErrorIs(t, s.CreateBannerItem(ctx, &dup), ErrDuplicateOrder)

	// Deactivating the holder frees its order value.
	require.NoError(t, s.DeleteBannerItem(ctx, first.Id))
	again := models.BannerItem{Orden: 1, Imagen: "c.jpg", Alt: "c"}
	assert.NoError(t, s.CreateBannerItem(ctx, &again))
}

func TestUpdateBannerItemRejectsDuplicateOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := models.BannerItem{Orden: 1, Imagen: "a.jpg", Alt: "a"}
	b := models.BannerItem{Orden: 2, Imagen: "b.jpg", Alt: "b"}
	require.NoError(t, s.CreateBannerItem(ctx, &a))
	require.NoError(t, s.CreateBannerItem(ctx, &b))

	orden := 1
	_, err := s.UpdateBannerItem(ctx, b.Id, models.BannerUpdate{Orden: &orden})
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	items, err := s.ListBanner(ctx, true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Orden)
	assert.Equal(t, 2, items[1].Orden)

	// Re-stating an item's own order is not a collision.
	_, err = s.UpdateBannerItem(ctx, a.Id, models.BannerUpdate{Orden: &orden})
	assert.NoError(t, err)
}

func TestListBannerSortedByOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, orden := range []int{3, 1, 2} {
		item := models.BannerItem{Orden: orden, Imagen: "x.jpg", Alt: "x"}
		require.NoError(t, s.CreateBannerItem(ctx, &item))
	}

	items, err := s.ListBanner(ctx, true)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i+1, item.Orden)
	}
}

func TestDeleteProductIsSoft(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := newTestProduct(t, s, "Lavanda", 5990, 4)

	require.NoError(t, s.DeleteProduct(ctx, p.Id))

	active, err := s.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	// The document itself survives.
	got, err := s.ProductByID(ctx, p.Id)
	require.NoError(t, err)
	assert.False(t, got.Activo)

	assert.ErrorIs(t, s.DeleteProduct(ctx, primitive.NewObjectID()), ErrNotFound)
}
