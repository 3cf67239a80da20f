package menu

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Item represents a dish on the menu, including its customization options.
// Items are read-only reference data: the engine consumes them, it never
// mutates them.
type Item struct {
	ID          string
	Name        string
	Description string
	BasePrice   decimal.Decimal
	// DiscountPrice applies only while OnDiscount is set. A zero value
	// means no discount price has been configured.
	DiscountPrice decimal.Decimal
	// EffectivePrice overrides BasePrice when non-zero.
	EffectivePrice decimal.Decimal
	OnDiscount     bool
	Popular        bool
	Available      bool
	Category       string
	Image          string
	Variations     []Variation
	AddOns         []AddOn
}

// Variation is a mutually exclusive serving size or style option.
// Price is a signed delta relative to the item's effective price.
type Variation struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// AddOn is an optional, independently quantifiable enhancement.
// Price is a non-negative surcharge per add-on unit.
type AddOn struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

// Category is a menu section used for grouping and navigation.
type Category struct {
	ID       string
	Name     string
	Position int
}

// SiteSettings holds the restaurant branding consumed by the order
// composer and the public settings endpoint.
type SiteSettings struct {
	SiteName         string
	SiteLogo         string
	MessengerChannel string
	CurrencySymbol   string
}

// Variation returns the variation with the given id, or nil when the item
// has no such variation.
func (i *Item) Variation(id string) *Variation {
	for idx := range i.Variations {
		if i.Variations[idx].ID == id {
			return &i.Variations[idx]
		}
	}
	return nil
}

// AddOn returns the add-on with the given id, or nil when the item has no
// such add-on.
func (i *Item) AddOn(id string) *AddOn {
	for idx := range i.AddOns {
		if i.AddOns[idx].ID == id {
			return &i.AddOns[idx]
		}
	}
	return nil
}

// UnitPrice returns the price a single uncustomized unit sells for:
// the discount price while the item is on discount, otherwise the
// effective price override, otherwise the base price.
func (i *Item) UnitPrice() decimal.Decimal {
	if i.OnDiscount && !i.DiscountPrice.IsZero() {
		return i.DiscountPrice
	}
	if !i.EffectivePrice.IsZero() {
		return i.EffectivePrice
	}
	return i.BasePrice
}

// Repository defines read operations for the menu reference feed.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	Categories(ctx context.Context) ([]Category, error)
}

// SettingsRepository provides the site branding reference feed.
type SettingsRepository interface {
	Get(ctx context.Context) (*SiteSettings, error)
}
