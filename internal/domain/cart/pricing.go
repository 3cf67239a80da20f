package cart

import (
	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

// Selection is one chosen add-on with its quantity. Quantity is always
// positive: an unselected add-on simply has no Selection.
type Selection struct {
	AddOn    menu.AddOn
	Quantity int
}

// UnitPrice computes the effective per-unit price of a customized item:
// the item's selling price (discount, effective, or base, in that order)
// plus the variation's signed delta plus every add-on surcharge multiplied
// by its selected quantity.
//
// Inputs are assumed validated by NewItem; the computation itself never
// rounds, full precision is kept until the formatting boundary.
func UnitPrice(item *menu.Item, variation *menu.Variation, selections []Selection) decimal.Decimal {
	price := item.UnitPrice()
	if variation != nil {
		price = price.Add(variation.Price)
	}
	for _, sel := range selections {
		qty := decimal.NewFromInt(int64(sel.Quantity))
		price = price.Add(sel.AddOn.Price.Mul(qty))
	}
	return price
}
