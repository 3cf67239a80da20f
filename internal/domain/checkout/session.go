package checkout

import (
	"fmt"
	"strings"
)

// Step is the explicit checkout position. The flow is linear:
// Details → Payment, with an explicit Back that preserves entered data.
type Step string

const (
	StepDetails Step = "details"
	StepPayment Step = "payment"
)

// IncompleteDetailsError is the guard failure for the Details→Payment
// transition. It lists every required field still missing so the caller
// can surface all of them at once.
type IncompleteDetailsError struct {
	Missing []string
}

func (e *IncompleteDetailsError) Error() string {
	return fmt.Sprintf("checkout details incomplete: %s", strings.Join(e.Missing, ", "))
}

// ErrNotInPayment is returned when Back is called outside the Payment step.
var ErrNotInPayment = fmt.Errorf("checkout is not in the payment step")

// Session is the serializable checkout record: guest identity, the chosen
// fulfillment service, notes, the current step, and the selected payment
// method. It is plain data; every transition goes through the methods
// below.
type Session struct {
	GuestName     string
	ContactNumber string
	Service       Service
	Notes         string

	Step            Step
	PaymentMethodID string
}

// NewSession starts a checkout at the Details step.
func NewSession() *Session {
	return &Session{Step: StepDetails}
}

// MissingDetails lists every required field that is still empty for the
// active service type. All service types require the guest name and
// contact number; each variant adds its own requirements.
func (s *Session) MissingDetails() []string {
	var missing []string
	if s.GuestName == "" {
		missing = append(missing, "guest name")
	}
	if s.ContactNumber == "" {
		missing = append(missing, "contact number")
	}
	if s.Service == nil {
		missing = append(missing, "service type")
	} else {
		missing = append(missing, s.Service.missingFields()...)
	}
	return missing
}

// CanProceed reports whether the Details→Payment guard passes. It is a
// pure predicate, re-evaluated on every input change.
func (s *Session) CanProceed() bool {
	return len(s.MissingDetails()) == 0
}

// Proceed performs the guarded Details→Payment transition. While any
// required field is missing the transition is refused and the step is
// unchanged. Proceeding from Payment is a no-op.
func (s *Session) Proceed() error {
	if missing := s.MissingDetails(); len(missing) > 0 {
		return &IncompleteDetailsError{Missing: missing}
	}
	s.Step = StepPayment
	return nil
}

// Back returns from Payment to Details without discarding entered data.
func (s *Session) Back() error {
	if s.Step != StepPayment {
		return ErrNotInPayment
	}
	s.Step = StepDetails
	return nil
}

// SelectPayment records the chosen payment method. Validation that the id
// belongs to the externally supplied method list is the caller's concern;
// the session only stores the choice.
func (s *Session) SelectPayment(methodID string) {
	s.PaymentMethodID = methodID
}
