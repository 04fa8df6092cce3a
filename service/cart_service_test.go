package service_test

import (
	"context"
	"testing"

	"mostrador-pos/cart"
	"mostrador-pos/models"
	"mostrador-pos/repository"
	"mostrador-pos/service"
	"mostrador-pos/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts map[int64]cart.ProductSnapshot

func (f fakeProducts) GetSnapshot(_ context.Context, id int64) (cart.ProductSnapshot, error) {
	p, ok := f[id]
	if !ok {
		return cart.ProductSnapshot{}, repository.ErrProductNotFound
	}
	return p, nil
}

func newCartService(products fakeProducts) *service.CartService {
	m := session.NewManager(session.NewMemoryStore(), decimal.NewFromInt(10), cart.PYG, nil)
	return service.NewCartService(m, products, nil)
}

func catalog() fakeProducts {
	return fakeProducts{
		1: {ProductID: 1, Name: "Termo 1L", SKU: "TER-1L", UnitPrice: 100000, AvailableStock: 5},
		2: {ProductID: 2, Name: "Cargador USB-C", SKU: "CAR-USBC", UnitPrice: 45000, AvailableStock: 3},
	}
}

func start(t *testing.T, svc *service.CartService) string {
	t.Helper()
	res, err := svc.Start(context.Background(), &models.StartSessionRequest{Cashier: "caja1"})
	require.NoError(t, err)
	return res.SessionID
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds_with_totals", func(t *testing.T) {
		svc := newCartService(catalog())
		id := start(t, svc)

		res, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 1, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, res.Items, 1)
		assert.Equal(t, int64(220000), res.Totals.Total)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, "PYG", res.Currency)
		assert.Equal(t, "10", res.TaxRate)
	})

	t.Run("clamp_is_a_warning", func(t *testing.T) {
		svc := newCartService(catalog())
		id := start(t, svc)

		res, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 2, Quantity: 10})
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, models.WarningStockLimitReached, res.Warnings[0].Code)
		assert.Equal(t, 3, res.Warnings[0].Quantity)
	})

	t.Run("unknown_product", func(t *testing.T) {
		svc := newCartService(catalog())
		id := start(t, svc)

		_, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 99, Quantity: 1})
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("out_of_stock", func(t *testing.T) {
		products := catalog()
		p := products[1]
		p.AvailableStock = 0
		products[1] = p
		svc := newCartService(products)
		id := start(t, svc)

		_, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 1, Quantity: 1})
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
	})

	t.Run("unknown_session", func(t *testing.T) {
		_, err := newCartService(catalog()).AddItem(ctx, "nope", &models.AddItemRequest{ProductID: 1, Quantity: 1})
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestCartService_LineOperations(t *testing.T) {
	ctx := context.Background()
	svc := newCartService(catalog())
	id := start(t, svc)
	added, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	itemID := added.Items[0].ItemID

	res, err := svc.SetLineDiscount(ctx, id, itemID, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(198000), res.Totals.Total)

	_, err = svc.SetLineDiscount(ctx, id, itemID, 999999)
	assert.ErrorIs(t, err, cart.ErrInvalidDiscount)

	_, err = svc.SetLineDiscount(ctx, id, "missing", 1)
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	res, err = svc.SetQuantity(ctx, id, itemID, 10)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, int64(528000), res.Totals.Total)

	_, err = svc.SetQuantity(ctx, id, "missing", 1)
	assert.ErrorIs(t, err, service.ErrItemNotFound)

	_, err = svc.SetCartDiscount(ctx, id, 480001)
	assert.ErrorIs(t, err, cart.ErrInvalidDiscount)

	res, err = svc.SetCartDiscount(ctx, id, 80000)
	require.NoError(t, err)
	assert.Equal(t, int64(440000), res.Totals.Total)

	res, err = svc.RemoveItem(ctx, id, itemID)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.CartDiscount)

	// removing twice is fine
	_, err = svc.RemoveItem(ctx, id, itemID)
	assert.NoError(t, err)
}

func TestCartService_RefreshStock(t *testing.T) {
	ctx := context.Background()
	products := catalog()
	svc := newCartService(products)
	id := start(t, svc)
	_, err := svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 1, Quantity: 4})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, id, &models.AddItemRequest{ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	// another counter sold three termos and the last charger
	p := products[1]
	p.AvailableStock = 2
	products[1] = p
	delete(products, 2)

	res, err := svc.RefreshStock(ctx, id)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, models.WarningStockLimitReached, res.Warnings[0].Code)
	assert.Equal(t, models.WarningSoldOut, res.Warnings[1].Code)
}

func TestCartService_Discard(t *testing.T) {
	ctx := context.Background()
	svc := newCartService(catalog())
	id := start(t, svc)

	require.NoError(t, svc.Discard(ctx, id))
	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
