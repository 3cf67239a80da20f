package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDineInSession() *Session {
	s := NewSession()
	s.GuestName = "Juan Dela Cruz"
	s.ContactNumber = "09171234567"
	s.Service = DineIn{
		PartySize:   2,
		Reservation: time.Date(2025, time.June, 14, 19, 30, 0, 0, time.UTC),
	}
	return s
}

func TestSession_StartsAtDetails(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StepDetails, s.Step)
}

func TestSession_GuestFieldsRequiredForEveryService(t *testing.T) {
	for _, svc := range []Service{
		DineIn{PartySize: 2, Reservation: time.Now()},
		Pickup{Window: PickupQuick},
		Delivery{Address: "123 Mabini St"},
	} {
		s := NewSession()
		s.Service = svc

		err := s.Proceed()

		var incomplete *IncompleteDetailsError
		require.ErrorAs(t, err, &incomplete)
		assert.Contains(t, incomplete.Missing, "guest name")
		assert.Contains(t, incomplete.Missing, "contact number")
		assert.Equal(t, StepDetails, s.Step)
	}
}

func TestSession_ServiceTypeRequired(t *testing.T) {
	s := NewSession()
	s.GuestName = "Juan Dela Cruz"
	s.ContactNumber = "09171234567"

	err := s.Proceed()

	var incomplete *IncompleteDetailsError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Missing, "service type")
}

func TestSession_DineInGuard(t *testing.T) {
	s := validDineInSession()
	s.Service = DineIn{PartySize: 0}

	err := s.Proceed()

	var incomplete *IncompleteDetailsError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Missing, "party size")
	assert.Contains(t, incomplete.Missing, "reservation time")
	assert.False(t, s.CanProceed())

	s.Service = DineIn{PartySize: 2, Reservation: time.Now()}
	require.NoError(t, s.Proceed())
	assert.Equal(t, StepPayment, s.Step)
}

func TestSession_DineInMissingReservationOnly(t *testing.T) {
	s := validDineInSession()
	s.Service = DineIn{PartySize: 4}

	assert.False(t, s.CanProceed())
	assert.Equal(t, []string{"reservation time"}, s.MissingDetails())
}

func TestSession_PickupGuard(t *testing.T) {
	s := validDineInSession()

	// Canned windows require no further input.
	s.Service = Pickup{Window: PickupStandard}
	assert.True(t, s.CanProceed())

	// Custom requires the free-text time.
	s.Service = Pickup{Window: PickupCustom}
	err := s.Proceed()
	var incomplete *IncompleteDetailsError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"custom pickup time"}, incomplete.Missing)

	s.Service = Pickup{Window: PickupCustom, CustomTime: "4:30 PM"}
	require.NoError(t, s.Proceed())
	assert.Equal(t, StepPayment, s.Step)
}

func TestSession_DeliveryGuard(t *testing.T) {
	s := validDineInSession()

	s.Service = Delivery{}
	assert.False(t, s.CanProceed())

	// Landmark is optional.
	s.Service = Delivery{Address: "123 Mabini St, Makati"}
	require.NoError(t, s.Proceed())
	assert.Equal(t, StepPayment, s.Step)
}

func TestSession_BackPreservesData(t *testing.T) {
	s := validDineInSession()
	s.Notes = "window table please"
	require.NoError(t, s.Proceed())
	s.SelectPayment("gcash")

	require.NoError(t, s.Back())

	assert.Equal(t, StepDetails, s.Step)
	assert.Equal(t, "Juan Dela Cruz", s.GuestName)
	assert.Equal(t, "window table please", s.Notes)
	assert.Equal(t, "gcash", s.PaymentMethodID)
}

func TestSession_BackFromDetailsRefused(t *testing.T) {
	s := NewSession()
	require.ErrorIs(t, s.Back(), ErrNotInPayment)
}

func TestPickup_TimeString(t *testing.T) {
	assert.Equal(t, "5-10 minutes", Pickup{Window: PickupQuick}.TimeString())
	assert.Equal(t, "25-30 minutes", Pickup{Window: PickupRelaxed}.TimeString())
	assert.Equal(t, "around 6 PM", Pickup{Window: PickupCustom, CustomTime: "around 6 PM"}.TimeString())
}

func TestValidPickupWindow(t *testing.T) {
	assert.True(t, ValidPickupWindow(PickupQuick))
	assert.True(t, ValidPickupWindow(PickupCustom))
	assert.False(t, ValidPickupWindow("45-60"))
}
