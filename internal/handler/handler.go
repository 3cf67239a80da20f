// Package handler exposes the order engine over HTTP. Handlers decode and
// validate transport concerns, delegate to the domain, and map domain
// errors to status codes; no business rules live here.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
	"github.com/orofoodhouse/oro-orders/internal/session"
)

// Handler wires the reference-data repositories and the session manager
// into the HTTP API.
type Handler struct {
	menus    menu.Repository
	settings menu.SettingsRepository
	payments payment.Repository
	sessions *session.Manager
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	menus menu.Repository,
	settings menu.SettingsRepository,
	payments payment.Repository,
	sessions *session.Manager,
) *Handler {
	return &Handler{
		menus:    menus,
		settings: settings,
		payments: payments,
		sessions: sessions,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/menu", h.ListMenu)
	r.Get("/menu/{id}", h.GetMenuItem)
	r.Get("/categories", h.ListCategories)
	r.Get("/payment-methods", h.ListPaymentMethods)
	r.Get("/settings", h.GetSettings)

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.CreateCart)
		r.Route("/{cartID}", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{entryID}", h.UpdateItemQuantity)
			r.Delete("/items/{entryID}", h.RemoveItem)
			r.Put("/checkout/details", h.PutCheckoutDetails)
			r.Post("/checkout/proceed", h.ProceedToPayment)
			r.Post("/checkout/back", h.BackToDetails)
			r.Put("/checkout/payment", h.SelectPaymentMethod)
			r.Post("/order", h.PlaceOrder)
		})
	})

	return r
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the uniform error envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}
