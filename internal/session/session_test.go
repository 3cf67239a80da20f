package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, checkout.StepDetails, s.Checkout.Step)
	assert.Equal(t, 0, s.Cart.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestManager_GetUnknown(t *testing.T) {
	m := NewManager(time.Hour)

	_, err := m.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()

	m.Delete(s.ID)
	_, err := m.Get(s.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is a no-op.
	m.Delete(s.ID)
}

func TestManager_SweepEvictsIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	idle := m.Create()
	active := m.Create()

	time.Sleep(20 * time.Millisecond)
	err := active.Do(func(_ *cart.Store, _ *checkout.Session) error { return nil })
	require.NoError(t, err)

	m.sweep(time.Now())

	_, err = m.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(active.ID)
	assert.NoError(t, err)
}

func TestSession_DoSerializesState(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create()

	err := s.Do(func(c *cart.Store, ck *checkout.Session) error {
		ck.GuestName = "Juan Dela Cruz"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", s.Checkout.GuestName)
}
