package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestItem(id, name string, base decimal.Decimal) *menu.Item {
	return &menu.Item{
		ID:        id,
		Name:      name,
		BasePrice: base,
		Available: true,
		Category:  "mains",
	}
}

func TestUnitPrice_BaseOnly(t *testing.T) {
	item := newTestItem("m1", "Lumpia", dec("60"))

	got := UnitPrice(item, nil, nil)
	assert.True(t, dec("60").Equal(got))
}

func TestUnitPrice_EffectiveOverridesBase(t *testing.T) {
	item := newTestItem("m1", "Lumpia", dec("60"))
	item.EffectivePrice = dec("55")

	got := UnitPrice(item, nil, nil)
	assert.True(t, dec("55").Equal(got))
}

func TestUnitPrice_DiscountTakesPrecedence(t *testing.T) {
	item := newTestItem("m1", "Lumpia", dec("60"))
	item.EffectivePrice = dec("55")
	item.DiscountPrice = dec("45")
	item.OnDiscount = true

	got := UnitPrice(item, nil, nil)
	assert.True(t, dec("45").Equal(got))
}

func TestUnitPrice_DiscountFlagWithoutPriceIgnored(t *testing.T) {
	item := newTestItem("m1", "Lumpia", dec("60"))
	item.OnDiscount = true

	got := UnitPrice(item, nil, nil)
	assert.True(t, dec("60").Equal(got))
}

func TestUnitPrice_VariationDelta(t *testing.T) {
	item := newTestItem("m1", "Sisig", dec("180"))
	large := &menu.Variation{ID: "v2", Name: "Large", Price: dec("40")}

	got := UnitPrice(item, large, nil)
	assert.True(t, dec("220").Equal(got))
}

func TestUnitPrice_NegativeVariationDelta(t *testing.T) {
	item := newTestItem("m1", "Sisig", dec("180"))
	small := &menu.Variation{ID: "v0", Name: "Solo", Price: dec("-30")}

	got := UnitPrice(item, small, nil)
	assert.True(t, dec("150").Equal(got))
}

func TestUnitPrice_AddOns(t *testing.T) {
	item := newTestItem("m1", "Silog", dec("120"))
	egg := menu.AddOn{ID: "a1", Name: "Extra Egg", Price: dec("15")}
	rice := menu.AddOn{ID: "a2", Name: "Extra Rice", Price: dec("20")}

	got := UnitPrice(item, nil, []Selection{
		{AddOn: egg, Quantity: 2},
		{AddOn: rice, Quantity: 1},
	})
	// 120 + 15*2 + 20*1
	assert.True(t, dec("170").Equal(got))
}

func TestUnitPrice_AllComponents(t *testing.T) {
	item := newTestItem("m1", "Sisig", dec("180"))
	item.DiscountPrice = dec("150")
	item.OnDiscount = true
	large := &menu.Variation{ID: "v2", Name: "Large", Price: dec("40")}
	egg := menu.AddOn{ID: "a1", Name: "Extra Egg", Price: dec("15")}

	got := UnitPrice(item, large, []Selection{{AddOn: egg, Quantity: 3}})
	// 150 + 40 + 15*3
	assert.True(t, dec("235").Equal(got))
}

func TestUnitPrice_FreeAddOnContributesNothing(t *testing.T) {
	item := newTestItem("m1", "Halo-Halo", dec("95"))
	spoon := menu.AddOn{ID: "a9", Name: "Extra Spoon", Price: decimal.Zero}

	got := UnitPrice(item, nil, []Selection{{AddOn: spoon, Quantity: 4}})
	assert.True(t, dec("95").Equal(got))
}
