package cart

import (
	"testing"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(productID int64, size string, price float64) domain.CartItem {
	return domain.CartItem{
		ProductID: productID,
		Name:      "Midnight Rose Elegance",
		SizeLabel: size,
		UnitPrice: price,
	}
}

func TestAddItem_MergesOnCompoundKey(t *testing.T) {
	sut := New()

	sut.AddItem(item(1, "50ml", 10), 1)
	sut.AddItem(item(1, "50ml", 10), 1)

	items := sut.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_DifferentSizesAreSeparateLines(t *testing.T) {
	sut := New()

	sut.AddItem(item(1, "50ml", 125), 1)
	sut.AddItem(item(1, "100ml", 185), 1)

	require.Len(t, sut.Items(), 2)
	assert.Equal(t, 2, sut.ItemCount())
}

func TestAddItem_QuantityClampedToMax(t *testing.T) {
	sut := New()

	for i := 0; i < 15; i++ {
		sut.AddItem(item(1, "50ml", 10), 1)
	}

	items := sut.Items()
	require.Len(t, items, 1)
	assert.Equal(t, MaxQuantity, items[0].Quantity)
}

func TestAddItem_ClampsOnInsertToo(t *testing.T) {
	sut := New()

	sut.AddItem(item(1, "50ml", 10), 99)

	items := sut.Items()
	require.Len(t, items, 1)
	assert.Equal(t, MaxQuantity, items[0].Quantity)
}

func TestAddItem_DefaultsToOne(t *testing.T) {
	sut := New()

	sut.AddItem(item(1, "50ml", 10), 0)

	items := sut.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)

	sut.UpdateQuantity(1, "50ml", 0)

	assert.Empty(t, sut.Items())
	assert.Equal(t, 0, sut.ItemCount())
}

func TestUpdateQuantity_SetsAndClamps(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)

	sut.UpdateQuantity(1, "50ml", 7)
	assert.Equal(t, 7, sut.Items()[0].Quantity)

	sut.UpdateQuantity(1, "50ml", 25)
	assert.Equal(t, MaxQuantity, sut.Items()[0].Quantity)
}

func TestRemoveItem_OnlyTouchesMatchingSize(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 125), 1)
	sut.AddItem(item(1, "100ml", 185), 1)

	sut.RemoveItem(1, "50ml")

	items := sut.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "100ml", items[0].SizeLabel)
}

func TestSubtotal(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)
	sut.AddItem(item(2, "100ml", 5), 3)

	assert.Equal(t, 35.0, sut.Subtotal())
}

func TestItemCount_SumsQuantitiesNotLines(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)
	sut.AddItem(item(2, "100ml", 5), 3)

	assert.Equal(t, 5, sut.ItemCount())
	assert.Len(t, sut.Items(), 2)
}

func TestClear(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)

	sut.Clear()

	assert.Empty(t, sut.Items())
	assert.Equal(t, 0.0, sut.Subtotal())
}

func TestItems_ReturnsCopy(t *testing.T) {
	sut := New()
	sut.AddItem(item(1, "50ml", 10), 2)

	items := sut.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, sut.Items()[0].Quantity)
}
