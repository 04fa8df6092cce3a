package cart_test

import (
	"fmt"
	"math"
	"testing"

	"mostrador-pos/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	seq := 0
	return cart.New(decimal.NewFromInt(10), cart.PYG, cart.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("line-%d", seq)
	}))
}

func termo() cart.ProductSnapshot {
	return cart.ProductSnapshot{ProductID: 1, Name: "Termo 1L", SKU: "TER-1L", UnitPrice: 100000, AvailableStock: 5}
}

func cargador() cart.ProductSnapshot {
	return cart.ProductSnapshot{ProductID: 2, Name: "Cargador USB-C", SKU: "CAR-USBC", UnitPrice: 45000, AvailableStock: 3}
}

func TestCart_Scenarios(t *testing.T) {
	c := newTestCart(t)

	// A: two units, 10% tax
	res, err := c.AddItem(termo(), 2)
	require.NoError(t, err)
	assert.Equal(t, cart.OutcomeApplied, res.Outcome)
	assert.Equal(t, cart.Totals{
		Subtotal:           200000,
		DiscountedSubtotal: 200000,
		Tax:                20000,
		Total:              220000,
		ItemCount:          2,
	}, c.Totals())

	// B: line discount
	_, err = c.SetLineDiscount(res.ItemID, 20000)
	require.NoError(t, err)
	totals := c.Totals()
	assert.Equal(t, int64(200000), totals.Subtotal)
	assert.Equal(t, int64(20000), totals.LineDiscount)
	assert.Equal(t, int64(180000), totals.DiscountedSubtotal)
	assert.Equal(t, int64(18000), totals.Tax)
	assert.Equal(t, int64(198000), totals.Total)

	// C: quantity above stock clamps
	qr := c.SetQuantity(res.ItemID, 10)
	assert.True(t, qr.StockLimitReached())
	assert.Equal(t, 5, qr.Quantity)
	totals = c.Totals()
	assert.Equal(t, int64(500000), totals.Subtotal)
	assert.Equal(t, int64(480000), totals.DiscountedSubtotal)
	assert.Equal(t, int64(48000), totals.Tax)
	assert.Equal(t, int64(528000), totals.Total)

	// D: cart discount above discounted subtotal is rejected
	before := c.State()
	err = c.SetCartDiscount(totals.DiscountedSubtotal + 1)
	assert.ErrorIs(t, err, cart.ErrInvalidDiscount)
	assert.Equal(t, before, c.State())

	// E: zero quantity removes
	qr = c.SetQuantity(res.ItemID, 0)
	assert.Equal(t, cart.OutcomeRemoved, qr.Outcome)
	_, found := c.FindItem(res.ItemID)
	assert.False(t, found)
}

func TestCart_EmptyTotals(t *testing.T) {
	c := cart.New(decimal.NewFromInt(10), cart.PYG)
	assert.Equal(t, cart.Totals{}, c.Totals())
	assert.True(t, c.IsEmpty())
}

func TestCart_AddItem(t *testing.T) {
	t.Run("merges_same_product", func(t *testing.T) {
		c := newTestCart(t)
		first, err := c.AddItem(termo(), 1)
		require.NoError(t, err)
		second, err := c.AddItem(termo(), 2)
		require.NoError(t, err)

		assert.Equal(t, first.ItemID, second.ItemID)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 3, second.Quantity)
	})

	t.Run("merge_clamps_to_stock", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(termo(), 4)
		require.NoError(t, err)
		res, err := c.AddItem(termo(), 4)
		require.NoError(t, err)

		assert.True(t, res.StockLimitReached())
		assert.Equal(t, 5, res.Quantity)
	})

	t.Run("merge_with_huge_quantity_saturates", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(termo(), 3)
		require.NoError(t, err)
		res, err := c.AddItem(termo(), math.MaxInt)
		require.NoError(t, err)

		assert.Equal(t, cart.OutcomeClamped, res.Outcome)
		assert.Equal(t, 5, res.Quantity)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, 5, c.Items()[0].Quantity)
	})

	t.Run("merge_after_stock_dropped_clamps", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(termo(), 4)
		require.NoError(t, err)
		p := termo()
		p.AvailableStock = 2
		res, err := c.AddItem(p, 1)
		require.NoError(t, err)

		assert.True(t, res.StockLimitReached())
		assert.Equal(t, 2, res.Quantity)
	})

	t.Run("new_line_clamps_to_stock", func(t *testing.T) {
		c := newTestCart(t)
		res, err := c.AddItem(cargador(), 7)
		require.NoError(t, err)
		assert.True(t, res.StockLimitReached())
		assert.Equal(t, 3, res.Quantity)
	})

	t.Run("different_variant_opens_new_line", func(t *testing.T) {
		c := newTestCart(t)
		negro := termo()
		negro.Variant = "negro"
		_, err := c.AddItem(termo(), 1)
		require.NoError(t, err)
		_, err = c.AddItem(negro, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("discounted_line_is_not_merged", func(t *testing.T) {
		c := newTestCart(t)
		first, err := c.AddItem(termo(), 1)
		require.NoError(t, err)
		_, err = c.SetLineDiscount(first.ItemID, 5000)
		require.NoError(t, err)

		second, err := c.AddItem(termo(), 1)
		require.NoError(t, err)
		assert.NotEqual(t, first.ItemID, second.ItemID)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(termo(), 0)
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects_out_of_stock", func(t *testing.T) {
		c := newTestCart(t)
		p := termo()
		p.AvailableStock = 0
		_, err := c.AddItem(p, 1)
		assert.ErrorIs(t, err, cart.ErrOutOfStock)
	})

	t.Run("keeps_insertion_order", func(t *testing.T) {
		c := newTestCart(t)
		_, _ = c.AddItem(cargador(), 1)
		_, _ = c.AddItem(termo(), 1)
		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, int64(2), items[0].ProductID)
		assert.Equal(t, int64(1), items[1].ProductID)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 1)
		_, _ = c.AddItem(cargador(), 1)

		first := c.RemoveItem(res.ItemID)
		afterFirst := c.State()
		second := c.RemoveItem(res.ItemID)

		assert.Equal(t, cart.OutcomeRemoved, first.Outcome)
		assert.Equal(t, cart.OutcomeNotFound, second.Outcome)
		assert.Equal(t, afterFirst, c.State())
	})

	t.Run("add_then_remove_restores_state", func(t *testing.T) {
		c := newTestCart(t)
		_, _ = c.AddItem(cargador(), 2)
		require.NoError(t, c.SetCartDiscount(10000))
		before := c.State()
		beforeTotals := c.Totals()

		res, err := c.AddItem(termo(), 3)
		require.NoError(t, err)
		c.RemoveItem(res.ItemID)

		assert.Equal(t, before, c.State())
		assert.Equal(t, beforeTotals, c.Totals())
	})

	t.Run("lowers_cart_discount_that_no_longer_fits", func(t *testing.T) {
		c := newTestCart(t)
		a, _ := c.AddItem(termo(), 1)
		_, _ = c.AddItem(cargador(), 1)
		require.NoError(t, c.SetCartDiscount(120000))

		c.RemoveItem(a.ItemID)
		assert.Equal(t, int64(45000), c.CartDiscount())
		assert.GreaterOrEqual(t, c.Totals().DiscountedSubtotal, int64(0))
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("unknown_item_is_noop", func(t *testing.T) {
		c := newTestCart(t)
		_, _ = c.AddItem(termo(), 1)
		before := c.State()

		res := c.SetQuantity("missing", 3)
		assert.Equal(t, cart.OutcomeNotFound, res.Outcome)
		assert.False(t, res.Found())
		assert.Equal(t, before, c.State())
	})

	t.Run("negative_removes", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 2)
		out := c.SetQuantity(res.ItemID, -1)
		assert.Equal(t, cart.OutcomeRemoved, out.Outcome)
		assert.True(t, c.IsEmpty())
	})

	t.Run("within_stock_applies", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 1)
		out := c.SetQuantity(res.ItemID, 4)
		assert.Equal(t, cart.OutcomeApplied, out.Outcome)
		item, ok := c.FindItem(res.ItemID)
		require.True(t, ok)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("lowering_quantity_caps_line_discount", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 3)
		_, err := c.SetLineDiscount(res.ItemID, 250000)
		require.NoError(t, err)

		c.SetQuantity(res.ItemID, 2)
		item, _ := c.FindItem(res.ItemID)
		assert.Equal(t, int64(200000), item.LineDiscount)
		assert.Equal(t, int64(0), item.LineSubtotal())
	})
}

func TestCart_SetLineDiscount(t *testing.T) {
	c := newTestCart(t)
	res, _ := c.AddItem(termo(), 2)

	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{name: "negative", amount: -1, wantErr: true},
		{name: "above_gross", amount: 200001, wantErr: true},
		{name: "zero", amount: 0},
		{name: "whole_line", amount: 200000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.State()
			_, err := c.SetLineDiscount(res.ItemID, tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, cart.ErrInvalidDiscount)
				assert.Equal(t, before, c.State())
				return
			}
			require.NoError(t, err)
			item, _ := c.FindItem(res.ItemID)
			assert.Equal(t, tt.amount, item.LineDiscount)
		})
	}

	t.Run("unknown_item_is_noop", func(t *testing.T) {
		out, err := c.SetLineDiscount("missing", 10)
		assert.NoError(t, err)
		assert.Equal(t, cart.OutcomeNotFound, out.Outcome)
	})
}

func TestCart_SetCartDiscount(t *testing.T) {
	c := newTestCart(t)
	res, _ := c.AddItem(termo(), 2)
	_, _ = c.SetLineDiscount(res.ItemID, 50000)

	assert.ErrorIs(t, c.SetCartDiscount(-5), cart.ErrInvalidDiscount)
	assert.ErrorIs(t, c.SetCartDiscount(150001), cart.ErrInvalidDiscount)
	require.NoError(t, c.SetCartDiscount(150000))

	totals := c.Totals()
	assert.Equal(t, int64(0), totals.DiscountedSubtotal)
	assert.Equal(t, int64(0), totals.Tax)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCart_Clear(t *testing.T) {
	c := newTestCart(t)
	_, _ = c.AddItem(termo(), 2)
	require.NoError(t, c.SetCartDiscount(1000))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.CartDiscount())
	assert.Equal(t, cart.Totals{}, c.Totals())
}

func TestCart_UpdateStock(t *testing.T) {
	t.Run("reclamps_quantity", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 4)
		results := c.UpdateStock(1, 2)

		require.Len(t, results, 1)
		assert.True(t, results[0].StockLimitReached())
		item, _ := c.FindItem(res.ItemID)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 2, item.AvailableStock)
	})

	t.Run("sold_out_removes_line", func(t *testing.T) {
		c := newTestCart(t)
		_, _ = c.AddItem(termo(), 1)
		_, _ = c.AddItem(cargador(), 1)
		results := c.UpdateStock(1, 0)

		require.Len(t, results, 1)
		assert.Equal(t, cart.OutcomeRemoved, results[0].Outcome)
		assert.Equal(t, 1, c.Len())
	})
}

func TestCart_Invariants(t *testing.T) {
	c := newTestCart(t)
	a, _ := c.AddItem(termo(), 3)
	b, _ := c.AddItem(cargador(), 1)

	ops := []func(){
		func() { c.SetQuantity(a.ItemID, 9) },
		func() { _, _ = c.SetLineDiscount(b.ItemID, 45000) },
		func() { _ = c.SetCartDiscount(c.Totals().DiscountedSubtotal) },
		func() { c.SetQuantity(a.ItemID, 1) },
		func() { c.UpdateStock(2, 1) },
		func() { c.SetQuantity(b.ItemID, 0) },
		func() { _, _ = c.AddItem(cargador(), 2) },
	}

	for i, op := range ops {
		op()
		totals := c.Totals()
		assert.GreaterOrEqual(t, totals.Subtotal, int64(0), "step %d", i)
		assert.GreaterOrEqual(t, totals.DiscountedSubtotal, int64(0), "step %d", i)
		assert.GreaterOrEqual(t, totals.Tax, int64(0), "step %d", i)
		assert.GreaterOrEqual(t, totals.Total, int64(0), "step %d", i)
		for _, item := range c.Items() {
			assert.GreaterOrEqual(t, item.Quantity, 1, "step %d", i)
			assert.LessOrEqual(t, item.Quantity, item.AvailableStock, "step %d", i)
			assert.LessOrEqual(t, item.LineDiscount, item.Gross(), "step %d", i)
		}
	}
}

func TestCart_Monotonicity(t *testing.T) {
	t.Run("more_quantity_never_lowers_total", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 1)
		_, _ = c.SetLineDiscount(res.ItemID, 30000)
		prev := c.Totals().Total
		for q := 2; q <= 5; q++ {
			c.SetQuantity(res.ItemID, q)
			total := c.Totals().Total
			assert.GreaterOrEqual(t, total, prev)
			prev = total
		}
	})

	t.Run("more_discount_never_raises_total", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 2)
		prev := c.Totals().Total
		for _, d := range []int64{0, 1, 999, 50000, 200000} {
			_, err := c.SetLineDiscount(res.ItemID, d)
			require.NoError(t, err)
			total := c.Totals().Total
			assert.LessOrEqual(t, total, prev)
			prev = total
		}
	})

	t.Run("more_cart_discount_never_raises_total", func(t *testing.T) {
		c := newTestCart(t)
		res, _ := c.AddItem(termo(), 3)
		_, _ = c.AddItem(cargador(), 1)
		_, err := c.SetLineDiscount(res.ItemID, 15000)
		require.NoError(t, err)

		prev := c.Totals().Total
		limit := c.Totals().Subtotal - c.Totals().LineDiscount
		for _, d := range []int64{0, 1, 5, 9999, 100000, limit - 1, limit} {
			require.NoError(t, c.SetCartDiscount(d))
			total := c.Totals().Total
			assert.LessOrEqual(t, total, prev, "cart discount %d", d)
			prev = total
		}
		assert.Equal(t, int64(0), prev)
	})

	t.Run("more_added_quantity_never_lowers_total", func(t *testing.T) {
		c := newTestCart(t)
		_, err := c.AddItem(termo(), 3)
		require.NoError(t, err)
		prev := c.Totals().Total
		for _, q := range []int{1, 1000, math.MaxInt} {
			_, err := c.AddItem(termo(), q)
			require.NoError(t, err)
			total := c.Totals().Total
			assert.GreaterOrEqual(t, total, prev, "add %d", q)
			prev = total
		}
	})
}

func TestCart_FromStateFloorsCorruptDiscount(t *testing.T) {
	c := cart.FromState(cart.State{
		Currency: cart.PYG,
		TaxRate:  decimal.NewFromInt(10),
		Items: []cart.LineItem{
			{ItemID: "x", ProductID: 1, UnitPrice: 1000, AvailableStock: 1, Quantity: 1},
		},
		CartDiscount: 5000,
	})

	totals := c.Totals()
	assert.Equal(t, int64(0), totals.DiscountedSubtotal)
	assert.Equal(t, int64(0), totals.Total)
}

func TestCart_SnapshotIsACopy(t *testing.T) {
	c := newTestCart(t)
	res, _ := c.AddItem(termo(), 2)
	snap := c.Snapshot()

	c.SetQuantity(res.ItemID, 5)
	assert.Equal(t, 2, snap.Items[0].Quantity)
	assert.Equal(t, int64(220000), snap.Totals.Total)
	assert.False(t, snap.TakenAt.IsZero())
}
