package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyTotalIsZero(t *testing.T) {
	s := NewStore()

	assert.True(t, decimal.Zero.Equal(s.TotalPrice()))
	assert.Equal(t, 0, s.Len())
}

func TestStore_AddAndTotal(t *testing.T) {
	s := NewStore()
	lumpia := newTestItem("m1", "Lumpia", dec("60"))
	sisig := newTestItem("m2", "Sisig", dec("180"))

	_, err := s.Add(lumpia, 2, "", nil)
	require.NoError(t, err)
	_, err = s.Add(sisig, 1, "", nil)
	require.NoError(t, err)

	// 60*2 + 180
	assert.True(t, dec("300").Equal(s.TotalPrice()))
	assert.Equal(t, 2, s.Len())
}

func TestStore_MergeIdenticalCustomization(t *testing.T) {
	s := NewStore()
	item := newCustomizableItem()

	first, err := s.Add(item, 1, "v2", []Choice{{AddOnID: "a1", Quantity: 2}})
	require.NoError(t, err)

	second, err := s.Add(item, 2, "v2", []Choice{{AddOnID: "a1", Quantity: 2}})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 3, s.Get(first.ID).Quantity)
}

func TestStore_MergeIgnoresAddOnPickOrder(t *testing.T) {
	s := NewStore()
	item := newCustomizableItem()

	first, err := s.Add(item, 1, "", []Choice{
		{AddOnID: "a1", Quantity: 1},
		{AddOnID: "a2", Quantity: 1},
	})
	require.NoError(t, err)

	second, err := s.Add(item, 1, "", []Choice{
		{AddOnID: "a2", Quantity: 1},
		{AddOnID: "a1", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, s.Len())
}

func TestStore_DistinctCustomizationsStayDistinct(t *testing.T) {
	s := NewStore()
	item := newCustomizableItem()

	regular, err := s.Add(item, 1, "v1", nil)
	require.NoError(t, err)
	large, err := s.Add(item, 1, "v2", nil)
	require.NoError(t, err)

	require.NotEqual(t, regular.ID, large.ID)
	assert.Equal(t, 2, s.Len())

	// Each entry is independently updatable and removable.
	s.UpdateQuantity(regular.ID, 5)
	assert.Equal(t, 5, s.Get(regular.ID).Quantity)
	assert.Equal(t, 1, s.Get(large.ID).Quantity)

	s.Remove(large.ID)
	assert.Equal(t, 1, s.Len())
	assert.NotNil(t, s.Get(regular.ID))
}

func TestStore_MergedEntryKeepsFrozenPrice(t *testing.T) {
	s := NewStore()
	item := newTestItem("m1", "Lumpia", dec("60"))

	first, err := s.Add(item, 1, "", nil)
	require.NoError(t, err)

	item.BasePrice = dec("80")
	_, err = s.Add(item, 1, "", nil)
	require.NoError(t, err)

	// Merge increments quantity but keeps the price frozen at first add.
	assert.Equal(t, 2, s.Get(first.ID).Quantity)
	assert.True(t, dec("120").Equal(s.TotalPrice()))
}

func TestStore_UpdateQuantityZeroRemoves(t *testing.T) {
	s := NewStore()
	item := newTestItem("m1", "Lumpia", dec("60"))

	entry, err := s.Add(item, 2, "", nil)
	require.NoError(t, err)

	s.UpdateQuantity(entry.ID, 0)
	assert.Nil(t, s.Get(entry.ID))
	assert.Equal(t, 0, s.Len())
}

func TestStore_UpdateQuantityNegativeRemoves(t *testing.T) {
	s := NewStore()
	item := newTestItem("m1", "Lumpia", dec("60"))

	entry, err := s.Add(item, 2, "", nil)
	require.NoError(t, err)

	s.UpdateQuantity(entry.ID, -3)
	assert.Nil(t, s.Get(entry.ID))
	assert.True(t, decimal.Zero.Equal(s.TotalPrice()))
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore()
	item := newTestItem("m1", "Lumpia", dec("60"))

	_, err := s.Add(item, 1, "", nil)
	require.NoError(t, err)

	s.Remove("missing")
	s.UpdateQuantity("missing", 4)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	item := newTestItem("m1", "Lumpia", dec("60"))

	_, err := s.Add(item, 1, "", nil)
	require.NoError(t, err)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.True(t, decimal.Zero.Equal(s.TotalPrice()))
}

func TestStore_ValidationLeavesCartUntouched(t *testing.T) {
	s := NewStore()
	item := newCustomizableItem()

	_, err := s.Add(item, 1, "", nil)
	require.NoError(t, err)

	_, err = s.Add(item, 1, "bogus", nil)
	require.Error(t, err)

	assert.Equal(t, 1, s.Len())
	assert.True(t, dec("180").Equal(s.TotalPrice()))
}

func TestStore_ItemsSnapshotInInsertionOrder(t *testing.T) {
	s := NewStore()
	lumpia := newTestItem("m1", "Lumpia", dec("60"))
	sisig := newTestItem("m2", "Sisig", dec("180"))

	_, err := s.Add(lumpia, 1, "", nil)
	require.NoError(t, err)
	_, err = s.Add(sisig, 1, "", nil)
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Lumpia", items[0].Name)
	assert.Equal(t, "Sisig", items[1].Name)

	// The snapshot is a copy: mutating it does not touch the store.
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Items()[0].Quantity)
}
