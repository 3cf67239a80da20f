package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
	"github.com/orofoodhouse/oro-orders/internal/domain/payment"
)

type menuItemResponse struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	BasePrice      float64             `json:"basePrice"`
	DiscountPrice  float64             `json:"discountPrice,omitempty"`
	EffectivePrice float64             `json:"effectivePrice,omitempty"`
	OnDiscount     bool                `json:"isOnDiscount"`
	Popular        bool                `json:"popular"`
	Available      bool                `json:"available"`
	Category       string              `json:"category"`
	Image          string              `json:"image,omitempty"`
	Variations     []variationResponse `json:"variations,omitempty"`
	AddOns         []addOnResponse     `json:"addOns,omitempty"`
}

type variationResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type addOnResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type categoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type paymentMethodResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	QRCodeURL     string `json:"qr_code_url"`
}

type settingsResponse struct {
	SiteName         string `json:"site_name"`
	SiteLogo         string `json:"site_logo"`
	MessengerChannel string `json:"messenger_channel"`
	CurrencySymbol   string `json:"currency_symbol"`
}

// ListMenu returns the full menu reference feed.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menus.List(r.Context())
	if err != nil {
		h.serverError(w, r, err, "list menu")
		return
	}

	out := make([]menuItemResponse, len(items))
	for i := range items {
		out[i] = toMenuItemResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetMenuItem returns one menu item with its customization options.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.menus.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "menu item not found")
			return
		}
		h.serverError(w, r, err, "get menu item")
		return
	}
	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// ListCategories returns the menu sections.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menus.Categories(r.Context())
	if err != nil {
		h.serverError(w, r, err, "list categories")
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryResponse{ID: c.ID, Name: c.Name, Position: c.Position}
	}
	writeJSON(w, http.StatusOK, out)
}

// ListPaymentMethods returns the configured settlement options.
func (h *Handler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.payments.List(r.Context())
	if err != nil {
		h.serverError(w, r, err, "list payment methods")
		return
	}

	out := make([]paymentMethodResponse, len(methods))
	for i, m := range methods {
		out[i] = toPaymentMethodResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSettings returns the site branding.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		h.serverError(w, r, err, "get settings")
		return
	}
	writeJSON(w, http.StatusOK, settingsResponse{
		SiteName:         s.SiteName,
		SiteLogo:         s.SiteLogo,
		MessengerChannel: s.MessengerChannel,
		CurrencySymbol:   s.CurrencySymbol,
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	zctx.From(r.Context()).Error("handler error", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func toMenuItemResponse(item *menu.Item) menuItemResponse {
	out := menuItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		BasePrice:      item.BasePrice.InexactFloat64(),
		DiscountPrice:  item.DiscountPrice.InexactFloat64(),
		EffectivePrice: item.EffectivePrice.InexactFloat64(),
		OnDiscount:     item.OnDiscount,
		Popular:        item.Popular,
		Available:      item.Available,
		Category:       item.Category,
		Image:          item.Image,
	}
	for _, v := range item.Variations {
		out.Variations = append(out.Variations, variationResponse{
			ID:    v.ID,
			Name:  v.Name,
			Price: v.Price.InexactFloat64(),
		})
	}
	for _, a := range item.AddOns {
		out.AddOns = append(out.AddOns, addOnResponse{
			ID:       a.ID,
			Name:     a.Name,
			Price:    a.Price.InexactFloat64(),
			Category: a.Category,
		})
	}
	return out
}

func toPaymentMethodResponse(m payment.Method) paymentMethodResponse {
	return paymentMethodResponse{
		ID:            m.ID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		AccountName:   m.AccountName,
		QRCodeURL:     m.QRCodeURL,
	}
}
