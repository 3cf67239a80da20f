package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

func newCustomizableItem() *menu.Item {
	item := newTestItem("m1", "Sisig", dec("180"))
	item.Variations = []menu.Variation{
		{ID: "v1", Name: "Regular", Price: dec("0")},
		{ID: "v2", Name: "Large", Price: dec("40")},
	}
	item.AddOns = []menu.AddOn{
		{ID: "a1", Name: "Extra Egg", Price: dec("15"), Category: "extras"},
		{ID: "a2", Name: "Extra Rice", Price: dec("20"), Category: "extras"},
	}
	return item
}

func TestNewItem_FreezesUnitPrice(t *testing.T) {
	item := newCustomizableItem()

	entry, err := NewItem(item, 2, "v2", []Choice{{AddOnID: "a1", Quantity: 2}})
	require.NoError(t, err)

	// 180 + 40 + 15*2
	assert.True(t, dec("250").Equal(entry.UnitPrice))
	assert.True(t, dec("500").Equal(entry.LineTotal()))

	// Repricing the menu item afterwards must not affect the entry.
	item.BasePrice = dec("999")
	assert.True(t, dec("250").Equal(entry.UnitPrice))
}

func TestNewItem_QuantityTooLow(t *testing.T) {
	item := newCustomizableItem()

	_, err := NewItem(item, 0, "", nil)
	require.ErrorIs(t, err, ErrQuantityTooLow)
	assert.True(t, IsValidationError(err))
}

func TestNewItem_Unavailable(t *testing.T) {
	item := newCustomizableItem()
	item.Available = false

	_, err := NewItem(item, 1, "", nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestNewItem_UnknownVariation(t *testing.T) {
	item := newCustomizableItem()

	_, err := NewItem(item, 1, "bogus", nil)

	var uvErr *UnknownVariationError
	require.ErrorAs(t, err, &uvErr)
	assert.Equal(t, "bogus", uvErr.VariationID)
	assert.True(t, IsValidationError(err))
}

func TestNewItem_UnknownAddOn(t *testing.T) {
	item := newCustomizableItem()

	_, err := NewItem(item, 1, "", []Choice{{AddOnID: "nope", Quantity: 1}})

	var uaErr *UnknownAddOnError
	require.ErrorAs(t, err, &uaErr)
	assert.Equal(t, "nope", uaErr.AddOnID)
}

func TestNewItem_ZeroAddOnQuantityRejected(t *testing.T) {
	item := newCustomizableItem()

	_, err := NewItem(item, 1, "", []Choice{{AddOnID: "a1", Quantity: 0}})

	var aqErr *AddOnQuantityError
	require.ErrorAs(t, err, &aqErr)
	assert.Equal(t, "a1", aqErr.AddOnID)
	assert.True(t, IsValidationError(err))
}

func TestNewItem_NoVariationIsAllowed(t *testing.T) {
	item := newCustomizableItem()

	entry, err := NewItem(item, 1, "", nil)
	require.NoError(t, err)
	assert.Nil(t, entry.SelectedVariation)
	assert.True(t, dec("180").Equal(entry.UnitPrice))
}

func TestAddOnOccurrences_ExpandsQuantities(t *testing.T) {
	item := newCustomizableItem()

	entry, err := NewItem(item, 1, "", []Choice{
		{AddOnID: "a1", Quantity: 3},
		{AddOnID: "a2", Quantity: 1},
	})
	require.NoError(t, err)

	occ := entry.AddOnOccurrences()
	require.Len(t, occ, 4)
	assert.Equal(t, "Extra Egg", occ[0].Name)
	assert.Equal(t, "Extra Egg", occ[2].Name)
	assert.Equal(t, "Extra Rice", occ[3].Name)

	// The projection is pure: stored selections stay aggregated.
	require.Len(t, entry.SelectedAddOns, 2)
	assert.Equal(t, 3, entry.SelectedAddOns[0].Quantity)
}
