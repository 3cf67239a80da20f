package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
)

type detailsRequest struct {
	GuestName     string `json:"guestName"`
	ContactNumber string `json:"contactNumber"`
	Notes         string `json:"notes,omitempty"`
	ServiceType   string `json:"serviceType"`

	DineIn *struct {
		PartySize       int       `json:"partySize"`
		ReservationTime time.Time `json:"reservationTime"`
	} `json:"dineIn,omitempty"`

	Pickup *struct {
		Window     string `json:"window"`
		CustomTime string `json:"customTime,omitempty"`
	} `json:"pickup,omitempty"`

	Delivery *struct {
		Address  string `json:"address"`
		Landmark string `json:"landmark,omitempty"`
	} `json:"delivery,omitempty"`
}

type selectPaymentRequest struct {
	MethodID string `json:"methodId"`
}

type checkoutResponse struct {
	Step            string   `json:"step"`
	GuestName       string   `json:"guestName"`
	ContactNumber   string   `json:"contactNumber"`
	ServiceType     string   `json:"serviceType,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	PaymentMethodID string   `json:"paymentMethodId,omitempty"`
	CanProceed      bool     `json:"canProceed"`
	Missing         []string `json:"missing,omitempty"`
}

// PutCheckoutDetails records guest identity and the chosen fulfillment
// service. Saving partial details is allowed; the guard only gates the
// transition to Payment.
func (h *Handler) PutCheckoutDetails(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	svc, err := serviceFromRequest(&req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resp checkoutResponse
	_ = s.Do(func(_ *cart.Store, ck *checkout.Session) error {
		ck.GuestName = req.GuestName
		ck.ContactNumber = req.ContactNumber
		ck.Notes = req.Notes
		ck.Service = svc
		resp = toCheckoutResponse(ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// ProceedToPayment performs the guarded Details→Payment transition and
// defaults the payment method to the first available one.
func (h *Handler) ProceedToPayment(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	methods, err := h.payments.List(r.Context())
	if err != nil {
		h.serverError(w, r, err, "list payment methods")
		return
	}

	var resp checkoutResponse
	err = s.Do(func(_ *cart.Store, ck *checkout.Session) error {
		if err := ck.Proceed(); err != nil {
			return err
		}
		if ck.PaymentMethodID == "" {
			if def := payment.Default(methods); def != nil {
				ck.SelectPayment(def.ID)
			}
		}
		resp = toCheckoutResponse(ck)
		return nil
	})
	if err != nil {
		var incomplete *checkout.IncompleteDetailsError
		if errors.As(err, &incomplete) {
			writeJSON(w, http.StatusConflict, errorResponse{
				Code:    http.StatusConflict,
				Message: "checkout details incomplete",
				Missing: incomplete.Missing,
			})
			return
		}
		h.serverError(w, r, err, "proceed to payment")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// BackToDetails returns from Payment to Details, keeping entered data.
func (h *Handler) BackToDetails(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var resp checkoutResponse
	err := s.Do(func(_ *cart.Store, ck *checkout.Session) error {
		if err := ck.Back(); err != nil {
			return err
		}
		resp = toCheckoutResponse(ck)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelectPaymentMethod records the chosen settlement option after checking
// it against the reference feed.
func (h *Handler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req selectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if _, err := h.payments.GetByID(r.Context(), req.MethodID); err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			writeError(w, http.StatusUnprocessableEntity, "unknown payment method")
			return
		}
		h.serverError(w, r, err, "get payment method")
		return
	}

	var resp checkoutResponse
	_ = s.Do(func(_ *cart.Store, ck *checkout.Session) error {
		ck.SelectPayment(req.MethodID)
		resp = toCheckoutResponse(ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// serviceFromRequest maps the transport shape to the closed service union.
func serviceFromRequest(req *detailsRequest) (checkout.Service, error) {
	switch checkout.ServiceType(req.ServiceType) {
	case checkout.ServiceDineIn:
		svc := checkout.DineIn{}
		if req.DineIn != nil {
			svc.PartySize = req.DineIn.PartySize
			svc.Reservation = req.DineIn.ReservationTime
		}
		return svc, nil
	case checkout.ServicePickup:
		svc := checkout.Pickup{Window: checkout.PickupQuick}
		if req.Pickup != nil {
			if !checkout.ValidPickupWindow(req.Pickup.Window) {
				return nil, errors.Errorf("unknown pickup window %q", req.Pickup.Window)
			}
			svc.Window = req.Pickup.Window
			svc.CustomTime = req.Pickup.CustomTime
		}
		return svc, nil
	case checkout.ServiceDelivery:
		svc := checkout.Delivery{}
		if req.Delivery != nil {
			svc.Address = req.Delivery.Address
			svc.Landmark = req.Delivery.Landmark
		}
		return svc, nil
	case "":
		return nil, errors.New("serviceType is required")
	}
	return nil, errors.Errorf("unknown service type %q", req.ServiceType)
}

func toCheckoutResponse(ck *checkout.Session) checkoutResponse {
	resp := checkoutResponse{
		Step:            string(ck.Step),
		GuestName:       ck.GuestName,
		ContactNumber:   ck.ContactNumber,
		Notes:           ck.Notes,
		PaymentMethodID: ck.PaymentMethodID,
		CanProceed:      ck.CanProceed(),
		Missing:         ck.MissingDetails(),
	}
	if ck.Service != nil {
		resp.ServiceType = string(ck.Service.Type())
	}
	return resp
}
