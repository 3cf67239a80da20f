package checkout

import (
	"time"
)

// ServiceType discriminates the closed set of fulfillment services.
type ServiceType string

const (
	ServiceDineIn   ServiceType = "dine-in"
	ServicePickup   ServiceType = "pickup"
	ServiceDelivery ServiceType = "delivery"
)

// Canned pickup windows offered alongside the free-text custom option.
const (
	PickupQuick    = "5-10"
	PickupStandard = "15-20"
	PickupRelaxed  = "25-30"
	PickupCustom   = "custom"
)

// Service carries exactly the fields that apply to one fulfillment
// variant. The closed union makes it impossible to read a field that does
// not belong to the active service type.
type Service interface {
	Type() ServiceType

	// missingFields lists the human-readable names of required fields
	// that are still empty, for the Details→Payment guard.
	missingFields() []string
}

// DineIn is table service with a reservation.
type DineIn struct {
	PartySize   int
	Reservation time.Time
}

func (d DineIn) Type() ServiceType { return ServiceDineIn }

func (d DineIn) missingFields() []string {
	var missing []string
	if d.PartySize < 1 {
		missing = append(missing, "party size")
	}
	if d.Reservation.IsZero() {
		missing = append(missing, "reservation time")
	}
	return missing
}

// Pickup is collection at the counter after a chosen preparation window.
type Pickup struct {
	Window     string
	CustomTime string
}

func (p Pickup) Type() ServiceType { return ServicePickup }

func (p Pickup) missingFields() []string {
	if p.Window == PickupCustom && p.CustomTime == "" {
		return []string{"custom pickup time"}
	}
	return nil
}

// TimeString resolves the window to the text shown to the operator:
// the canned minute range, or the guest's free-text custom time.
func (p Pickup) TimeString() string {
	if p.Window == PickupCustom {
		return p.CustomTime
	}
	return p.Window + " minutes"
}

// ValidPickupWindow reports whether w is one of the offered windows.
func ValidPickupWindow(w string) bool {
	switch w {
	case PickupQuick, PickupStandard, PickupRelaxed, PickupCustom:
		return true
	}
	return false
}

// Delivery brings the order to the guest's address.
type Delivery struct {
	Address  string
	Landmark string
}

func (d Delivery) Type() ServiceType { return ServiceDelivery }

func (d Delivery) missingFields() []string {
	if d.Address == "" {
		return []string{"delivery address"}
	}
	return nil
}
