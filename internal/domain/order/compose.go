// Package order turns a finished checkout into the text payload handed to
// the restaurant's Messenger channel. The payload is read by a human
// operator, so field order, labels, and whitespace are part of the
// contract: identical inputs must always produce byte-identical output.
package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
)

// Defaults used when no site settings are configured.
const (
	DefaultHeader   = "ORO RESTAURANT — PREMIUM SELECTION"
	DefaultClosing  = "Thank you for choosing Oro Restaurant. We are preparing your exquisite meal."
	DefaultCurrency = "₱"
)

// reservationLayout renders the dine-in reservation the way the guest saw
// it: full weekday and month, 2-digit clock.
const reservationLayout = "Monday, January 2, 2006 at 03:04 PM"

// Composer builds order payloads with the restaurant's branding.
type Composer struct {
	header   string
	closing  string
	currency string
}

// NewComposer returns a Composer. Empty arguments fall back to the Oro
// defaults.
func NewComposer(header, closing, currency string) *Composer {
	if header == "" {
		header = DefaultHeader
	}
	if closing == "" {
		closing = DefaultClosing
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Composer{header: header, closing: closing, currency: currency}
}

// Compose renders the deterministic order text. Service-specific lines are
// emitted only for the active service type; amounts are rounded to whole
// currency units for display only.
//
// method may be nil while the payment feed has not loaded; the session's
// raw method id is used as the display name in that case.
func (c *Composer) Compose(
	sess *checkout.Session,
	items []cart.Item,
	total decimal.Decimal,
	method *payment.Method,
) string {
	var lines []string

	lines = append(lines,
		c.header,
		"",
		"GUEST: "+sess.GuestName,
		"CONTACT: "+sess.ContactNumber,
		"SERVICE: "+strings.ToUpper(string(sess.Service.Type())),
	)
	lines = append(lines, c.serviceLines(sess.Service)...)

	lines = append(lines, "", "RESERVED SELECTIONS:")
	for idx := range items {
		lines = append(lines, c.itemLine(&items[idx]))
	}

	lines = append(lines,
		"",
		"TOTAL INVESTMENT: "+c.amount(total),
		"",
		"PAYMENT METHOD: "+methodName(sess, method),
		"PROOF OF PAYMENT: [Please attach screenshot here]",
	)

	if sess.Notes != "" {
		lines = append(lines, "", "SPECIAL REQUESTS: "+sess.Notes)
	}

	lines = append(lines, "", c.closing)

	return strings.Join(lines, "\n")
}

// serviceLines renders the block that applies to the active service type.
func (c *Composer) serviceLines(svc checkout.Service) []string {
	switch s := svc.(type) {
	case checkout.Delivery:
		lines := []string{"ADDRESS: " + s.Address}
		if s.Landmark != "" {
			lines = append(lines, "LANDMARK: "+s.Landmark)
		}
		return lines
	case checkout.Pickup:
		return []string{"PICKUP TIME: " + s.TimeString()}
	case checkout.DineIn:
		plural := ""
		if s.PartySize != 1 {
			plural = "s"
		}
		return []string{
			fmt.Sprintf("Party Size: %d person%s", s.PartySize, plural),
			"Preferred Time: " + s.Reservation.Format(reservationLayout),
		}
	}
	return nil
}

// itemLine renders one cart entry: upper-cased name, bracketed variation,
// "+" joined add-ons with an (xN) suffix for repeated ones, quantity, and
// the line total.
func (c *Composer) itemLine(item *cart.Item) string {
	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(strings.ToUpper(item.Name))

	if item.SelectedVariation != nil {
		fmt.Fprintf(&b, " [%s]", item.SelectedVariation.Name)
	}

	if len(item.SelectedAddOns) > 0 {
		names := make([]string, len(item.SelectedAddOns))
		for idx, sel := range item.SelectedAddOns {
			if sel.Quantity > 1 {
				names[idx] = fmt.Sprintf("%s (x%d)", sel.AddOn.Name, sel.Quantity)
			} else {
				names[idx] = sel.AddOn.Name
			}
		}
		b.WriteString(" + ")
		b.WriteString(strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, " x%d — %s", item.Quantity, c.amount(item.LineTotal()))
	return b.String()
}

// amount formats a money value for display: currency symbol prefix,
// rounded half away from zero to whole units. Stored values keep full
// precision; only the rendering rounds.
func (c *Composer) amount(v decimal.Decimal) string {
	return c.currency + v.StringFixed(0)
}

func methodName(sess *checkout.Session, method *payment.Method) string {
	if method != nil {
		return method.Name
	}
	return sess.PaymentMethodID
}
