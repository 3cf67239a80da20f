package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/orofoodhouse/oro-orders/internal/domain/cart"
	"github.com/orofoodhouse/oro-orders/internal/domain/checkout"
	"github.com/orofoodhouse/oro-orders/internal/domain/menu"
	"github.com/orofoodhouse/oro-orders/internal/session"
)

type addItemRequest struct {
	MenuItemID  string `json:"menuItemId"`
	Quantity    int    `json:"quantity"`
	VariationID string `json:"variationId,omitempty"`
	AddOns      []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"addOns,omitempty"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartEntryResponse struct {
	ID                string              `json:"id"`
	MenuItemID        string              `json:"menuItemId"`
	Name              string              `json:"name"`
	Quantity          int                 `json:"quantity"`
	TotalPrice        float64             `json:"totalPrice"`
	LineTotal         float64             `json:"lineTotal"`
	SelectedVariation *variationResponse  `json:"selectedVariation,omitempty"`
	SelectedAddOns    []selectionResponse `json:"selectedAddOns,omitempty"`
}

type selectionResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type cartResponse struct {
	ID         string              `json:"id"`
	Items      []cartEntryResponse `json:"items"`
	TotalPrice float64             `json:"totalPrice"`
	Step       string              `json:"step"`
}

// CreateCart starts a new browsing session.
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, cartResponse{
		ID:    s.ID,
		Items: []cartEntryResponse{},
		Step:  string(checkout.StepDetails),
	})
}

// GetCart returns the session's entries and grand total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var resp cartResponse
	_ = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		resp = toCartResponse(s.ID, c, ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// AddItem validates the customization against the menu feed and adds the
// entry to the cart, merging identically customized re-adds.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.menus.GetByID(r.Context(), req.MenuItemID)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			writeError(w, http.StatusNotFound, "menu item not found")
			return
		}
		h.serverError(w, r, err, "get menu item")
		return
	}

	choices := make([]cart.Choice, len(req.AddOns))
	for i, a := range req.AddOns {
		choices[i] = cart.Choice{AddOnID: a.ID, Quantity: a.Quantity}
	}

	var resp cartResponse
	err = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		if _, err := c.Add(item, req.Quantity, req.VariationID, choices); err != nil {
			return err
		}
		resp = toCartResponse(s.ID, c, ck)
		return nil
	})
	if err != nil {
		if cart.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.serverError(w, r, err, "add cart item")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateItemQuantity sets an entry's quantity. Zero or negative removes
// the entry.
func (h *Handler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entryID := chi.URLParam(r, "entryID")
	var resp cartResponse
	_ = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		c.UpdateQuantity(entryID, req.Quantity)
		resp = toCartResponse(s.ID, c, ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem deletes an entry by identity; unknown ids are a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	entryID := chi.URLParam(r, "entryID")
	var resp cartResponse
	_ = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		c.Remove(entryID)
		resp = toCartResponse(s.ID, c, ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// ClearCart empties the session's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var resp cartResponse
	_ = s.Do(func(c *cart.Store, ck *checkout.Session) error {
		c.Clear()
		resp = toCartResponse(s.ID, c, ck)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

// session resolves the cartID path parameter, writing a 404 when the
// session is unknown or already swept.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "cartID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return nil, false
	}
	return s, true
}

func toCartResponse(id string, c *cart.Store, ck *checkout.Session) cartResponse {
	items := c.Items()
	out := cartResponse{
		ID:         id,
		Items:      make([]cartEntryResponse, len(items)),
		TotalPrice: c.TotalPrice().InexactFloat64(),
		Step:       string(ck.Step),
	}
	for i := range items {
		out.Items[i] = toCartEntryResponse(&items[i])
	}
	return out
}

func toCartEntryResponse(item *cart.Item) cartEntryResponse {
	out := cartEntryResponse{
		ID:         item.ID,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		TotalPrice: item.UnitPrice.InexactFloat64(),
		LineTotal:  item.LineTotal().InexactFloat64(),
	}
	if item.SelectedVariation != nil {
		out.SelectedVariation = &variationResponse{
			ID:    item.SelectedVariation.ID,
			Name:  item.SelectedVariation.Name,
			Price: item.SelectedVariation.Price.InexactFloat64(),
		}
	}
	for _, sel := range item.SelectedAddOns {
		out.SelectedAddOns = append(out.SelectedAddOns, selectionResponse{
			ID:       sel.AddOn.ID,
			Name:     sel.AddOn.Name,
			Price:    sel.AddOn.Price.InexactFloat64(),
			Quantity: sel.Quantity,
		})
	}
	return out
}
