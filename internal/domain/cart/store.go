package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
)

// ErrEmptyCart is returned when an operation requires at least one entry.
var ErrEmptyCart = fmt.Errorf("cart is empty")

// Store owns the ordered collection of cart entries for one browsing
// session. It is the single source of truth for every surface reading the
// cart; all mutations are synchronous and immediately observable.
//
// The store itself is not safe for concurrent use. Callers that share a
// store across goroutines (the HTTP session layer does) must serialize
// access externally.
type Store struct {
	items []Item
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add builds a cart entry for the given customization and inserts it.
//
// Merge policy: re-adding a menu item with identical customization
// increments the existing entry's quantity instead of appending a
// duplicate; the existing entry keeps its originally frozen unit price.
// Any difference in variation or add-on selection yields a distinct entry.
func (s *Store) Add(m *menu.Item, quantity int, variationID string, choices []Choice) (*Item, error) {
	entry, err := NewItem(m, quantity, variationID, choices)
	if err != nil {
		return nil, err
	}

	fp := entry.fingerprint()
	for idx := range s.items {
		if s.items[idx].fingerprint() == fp {
			s.items[idx].Quantity += quantity
			return &s.items[idx], nil
		}
	}

	entry.ID = uuid.New().String()
	s.items = append(s.items, *entry)
	return &s.items[len(s.items)-1], nil
}

// UpdateQuantity sets the entry's quantity. A quantity of zero or less
// removes the entry: no entry with a non-positive quantity is ever stored.
// Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}
	for idx := range s.items {
		if s.items[idx].ID == id {
			s.items[idx].Quantity = quantity
			return
		}
	}
}

// Remove deletes the entry with the given identity. Unknown ids are a
// no-op.
func (s *Store) Remove(id string) {
	for idx := range s.items {
		if s.items[idx].ID == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.items = nil
}

// Get returns the entry with the given identity, or nil.
func (s *Store) Get(id string) *Item {
	for idx := range s.items {
		if s.items[idx].ID == id {
			return &s.items[idx]
		}
	}
	return nil
}

// Items returns a snapshot of the entries in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of distinct entries.
func (s *Store) Len() int {
	return len(s.items)
}

// TotalPrice returns Σ(unit price × quantity) over all entries.
// An empty cart totals zero.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for idx := range s.items {
		total = total.Add(s.items[idx].LineTotal())
	}
	return total
}
