package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
	"github.com/orofoodhouse/oro-orders/internal/domain/order"
	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
)

type orderResponse struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// PlaceOrder renders the order text for the session and the Messenger
// deep link carrying it. Nothing is persisted; the handoff happens in the
// guest's Messenger conversation.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.serverError(w, r, err, "get settings")
		return
	}

	var (
		sess     checkout.Session
		items    []cart.Item
		total    decimal.Decimal
		methodID string
	)
	err = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		if ck.Step != checkout.StepPayment {
			return checkout.ErrNotInPayment
		}
		if c.Len() == 0 {
			return cart.ErrEmptyCart
		}
		sess = *ck
		items = c.Items()
		total = c.TotalPrice()
		methodID = ck.PaymentMethodID
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotInPayment):
			writeError(w, http.StatusConflict, "checkout has not reached the payment step")
		case errors.Is(err, cart.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		default:
			h.serverError(w, r, err, "place order")
		}
		return
	}

	method, err := h.resolveMethod(r, methodID)
	if err != nil {
		h.serverError(w, r, err, "resolve payment method")
		return
	}

	composer := order.NewComposer("", "", settings.CurrencySymbol)
	text := composer.Compose(&sess, items, total, method)
	writeJSON(w, http.StatusOK, orderResponse{
		Text: text,
		URL:  order.DeepLink(settings.MessengerChannel, text),
	})
}

// resolveMethod looks up the selected payment method, falling back to the
// first configured one when the session never picked.
func (h *Handler) resolveMethod(r *http.Request, methodID string) (*payment.Method, error) {
	if methodID != "" {
		m, err := h.payments.GetByID(r.Context(), methodID)
		if err != nil {
			if errors.Is(err, payment.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return m, nil
	}

	methods, err := h.payments.List(r.Context())
	if err != nil {
		return nil, err
	}
	return payment.Default(methods), nil
}
