//go:build integration

package integration

import (
	"net/http"
	"strings"
	"testing"
)

func fillPickupDetails(t *testing.T, cartID string) {
	t.Helper()

	resp := doSend(t, http.MethodPut, "/api/carts/"+cartID+"/checkout/details", detailsRequest{
		GuestName:     "Maria Santos",
		ContactNumber: "0917 111 2222",
		ServiceType:   "pickup",
		Pickup:        &pickupJSON{Window: "15-20"},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put details: expected 200, got %d", resp.StatusCode)
	}
}

func TestCheckoutGuard(t *testing.T) {
	cartID := newCart(t)

	resp := doPost(t, "/api/carts/"+cartID+"/checkout/proceed", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	e := decodeJSON[errorResponse](t, resp)
	if len(e.Missing) == 0 {
		t.Fatal("expected missing field list")
	}
}

func TestCheckoutRoundTrip(t *testing.T) {
	cartID := newCart(t)
	fillPickupDetails(t, cartID)

	resp := doPost(t, "/api/carts/"+cartID+"/checkout/proceed", nil)
	ck := decodeJSON[checkoutResponse](t, resp)
	resp.Body.Close()

	if ck.Step != "payment" {
		t.Fatalf("step: got %q, want payment", ck.Step)
	}
	if ck.PaymentMethodID != "gcash" {
		t.Errorf("default payment: got %q, want gcash", ck.PaymentMethodID)
	}

	resp = doPost(t, "/api/carts/"+cartID+"/checkout/back", nil)
	ck = decodeJSON[checkoutResponse](t, resp)
	resp.Body.Close()

	if ck.Step != "details" {
		t.Fatalf("step after back: got %q, want details", ck.Step)
	}
	if ck.GuestName != "Maria Santos" {
		t.Errorf("details lost on back: guestName %q", ck.GuestName)
	}
}

func TestPlaceOrder(t *testing.T) {
	cartID := newCart(t)

	resp := doPost(t, "/api/carts/"+cartID+"/items", addItemRequest{
		MenuItemID:  "sisig",
		Quantity:    1,
		VariationID: "sisig-large",
		AddOns:      []addOnChoiceJSON{{ID: "sisig-egg", Quantity: 2}},
	})
	resp.Body.Close()

	fillPickupDetails(t, cartID)

	resp = doPost(t, "/api/carts/"+cartID+"/checkout/proceed", nil)
	resp.Body.Close()

	resp = doSend(t, http.MethodPut, "/api/carts/"+cartID+"/checkout/payment",
		map[string]string{"methodId": "maya"})
	resp.Body.Close()

	resp = doPost(t, "/api/carts/"+cartID+"/order", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("place order: expected 200, got %d", resp.StatusCode)
	}

	o := decodeJSON[orderResponse](t, resp)
	for _, want := range []string{
		"GUEST: Maria Santos",
		"SERVICE: PICKUP",
		"PICKUP TIME: 15-20 minutes",
		"• SIZZLING SISIG [Large] + Extra Egg (x2) x1 — ₱250",
		"TOTAL INVESTMENT: ₱250",
		"PAYMENT METHOD: Maya",
		"PROOF OF PAYMENT:",
	} {
		if !strings.Contains(o.Text, want) {
			t.Errorf("order text missing %q\n%s", want, o.Text)
		}
	}
	if !strings.HasPrefix(o.URL, "https://m.me/orofoodhouse?text=") {
		t.Errorf("deep link: got %q", o.URL)
	}
	if strings.ContainsAny(o.URL, " \n") {
		t.Error("deep link is not percent-encoded")
	}
}

func TestPlaceOrderBeforePayment(t *testing.T) {
	cartID := newCart(t)

	resp := doPost(t, "/api/carts/"+cartID+"/order", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}
