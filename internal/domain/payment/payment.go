package payment

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested payment method does not exist.
var ErrNotFound = errors.New("payment method not found")

// Method represents one way a guest can settle an order. The account
// details are relayed verbatim to the guest; no payment is processed here.
type Method struct {
	ID            string
	Name          string
	AccountNumber string
	AccountName   string
	QRCodeURL     string
	Position      int
}

// Repository defines read operations for the payment method reference feed.
type Repository interface {
	List(ctx context.Context) ([]Method, error)
	GetByID(ctx context.Context, id string) (*Method, error)
}

// Default returns the method selected when none has been chosen yet:
// the first of the externally supplied list. It returns nil for an empty
// list so callers can render a pending state instead of failing.
func Default(methods []Method) *Method {
	if len(methods) == 0 {
		return nil
	}
	return &methods[0]
}
