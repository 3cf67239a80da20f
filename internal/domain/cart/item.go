package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

// Sentinel errors for cart entry validation.
var (
	ErrQuantityTooLow = fmt.Errorf("quantity must be at least 1")
	ErrUnavailable    = fmt.Errorf("item is not available")
)

// UnknownVariationError indicates the chosen variation does not belong to
// the menu item.
type UnknownVariationError struct {
	ItemID      string
	VariationID string
}

func (e *UnknownVariationError) Error() string {
	return fmt.Sprintf("variation %s does not belong to item %s", e.VariationID, e.ItemID)
}

// UnknownAddOnError indicates a selected add-on does not belong to the
// menu item.
type UnknownAddOnError struct {
	ItemID  string
	AddOnID string
}

func (e *UnknownAddOnError) Error() string {
	return fmt.Sprintf("add-on %s does not belong to item %s", e.AddOnID, e.ItemID)
}

// AddOnQuantityError indicates a selected add-on carries a non-positive
// quantity. Zero-quantity selections must be dropped by the caller, not
// passed through.
type AddOnQuantityError struct {
	AddOnID  string
	Quantity int
}

func (e *AddOnQuantityError) Error() string {
	return fmt.Sprintf("add-on %s has invalid quantity %d", e.AddOnID, e.Quantity)
}

// Choice identifies one add-on pick by id with its chosen quantity, before
// it has been resolved against the menu item.
type Choice struct {
	AddOnID  string
	Quantity int
}

// Item is one customized, priced, quantified entry in the cart.
//
// UnitPrice is frozen at construction time: later changes to the source
// menu item never retroactively reprice entries already in the cart.
type Item struct {
	ID         string
	MenuItemID string
	Name       string
	Quantity   int

	SelectedVariation *menu.Variation
	SelectedAddOns    []Selection

	UnitPrice decimal.Decimal
}

// NewItem validates the customization against the menu item, resolves the
// variation and add-on choices, and freezes the per-unit price. The entry
// identity is assigned by the store on insertion.
func NewItem(m *menu.Item, quantity int, variationID string, choices []Choice) (*Item, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}
	if !m.Available {
		return nil, ErrUnavailable
	}

	var variation *menu.Variation
	if variationID != "" {
		variation = m.Variation(variationID)
		if variation == nil {
			return nil, &UnknownVariationError{ItemID: m.ID, VariationID: variationID}
		}
	}

	selections := make([]Selection, 0, len(choices))
	for _, c := range choices {
		if c.Quantity <= 0 {
			return nil, &AddOnQuantityError{AddOnID: c.AddOnID, Quantity: c.Quantity}
		}
		addOn := m.AddOn(c.AddOnID)
		if addOn == nil {
			return nil, &UnknownAddOnError{ItemID: m.ID, AddOnID: c.AddOnID}
		}
		selections = append(selections, Selection{AddOn: *addOn, Quantity: c.Quantity})
	}

	return &Item{
		MenuItemID:        m.ID,
		Name:              m.Name,
		Quantity:          quantity,
		SelectedVariation: variation,
		SelectedAddOns:    selections,
		UnitPrice:         UnitPrice(m, variation, selections),
	}, nil
}

// LineTotal is the entry's contribution to the grand total.
func (i *Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddOnOccurrences flattens the add-on selections into individual
// occurrences, one per selected unit, for display surfaces that list each
// add-on separately. The projection is pure; the stored selections stay
// aggregated.
func (i *Item) AddOnOccurrences() []menu.AddOn {
	var out []menu.AddOn
	for _, sel := range i.SelectedAddOns {
		for n := 0; n < sel.Quantity; n++ {
			out = append(out, sel.AddOn)
		}
	}
	return out
}

// fingerprint canonically encodes the entry's customization so entries with
// identical menu item, variation, and add-on selections compare equal
// regardless of the order the add-ons were picked in.
func (i *Item) fingerprint() string {
	var b strings.Builder
	b.WriteString(i.MenuItemID)
	b.WriteByte('|')
	if i.SelectedVariation != nil {
		b.WriteString(i.SelectedVariation.ID)
	}

	keys := make([]string, len(i.SelectedAddOns))
	for idx, sel := range i.SelectedAddOns {
		keys[idx] = fmt.Sprintf("%s:%d", sel.AddOn.ID, sel.Quantity)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
	}
	return b.String()
}

// IsValidationError reports whether err comes from cart entry validation,
// as opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	var (
		uv *UnknownVariationError
		ua *UnknownAddOnError
		aq *AddOnQuantityError
	)
	switch {
	case errors.Is(err, ErrQuantityTooLow), errors.Is(err, ErrUnavailable):
		return true
	case errors.As(err, &uv), errors.As(err, &ua), errors.As(err, &aq):
		return true
	}
	return false
}
