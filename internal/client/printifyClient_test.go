package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"printwear-storefront/internal/config"
	"strings"
	"testing"
)

func newTestPrintifyClient(baseURL string) PrintifyClient {
	return NewPrintifyClient(&config.Printify{
		BaseAPIURL: baseURL,
		APIKey:     "test-key",
	})
}

func TestCreateOrder(t *testing.T) {
	var gotAuth string
	var gotBody CreateOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/shops/shop-1/orders.json" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "po_42"})
	}))
	defer srv.Close()

	orderID, err := newTestPrintifyClient(srv.URL).CreateOrder(context.Background(), "shop-1", &CreateOrderRequest{
		ExternalID:     "cs_test_1",
		ShippingMethod: 1,
		LineItems: []OrderLineItem{
			{ProductID: "pf-100", VariantID: 101, Quantity: 2},
		},
		AddressTo: OrderAddress{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com",
			Country: "US", Address1: "1 Main St", City: "Springfield", Zip: "62704",
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if orderID != "po_42" {
		t.Fatalf("orderID = %q, want po_42", orderID)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotBody.ExternalID != "cs_test_1" || len(gotBody.LineItems) != 1 {
		t.Fatalf("request body mismatch: %+v", gotBody)
	}
}

func TestCreateOrderRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"variant is out of stock"}`))
	}))
	defer srv.Close()

	_, err := newTestPrintifyClient(srv.URL).CreateOrder(context.Background(), "shop-1", &CreateOrderRequest{})
	if err == nil || !strings.Contains(err.Error(), "variant is out of stock") {
		t.Fatalf("remote error text must be surfaced, got %v", err)
	}
}

func TestGetProductsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		resp := printifyProductsPage{LastPage: 2}
		switch page {
		case "1":
			resp.CurrentPage = 1
			resp.Data = []PrintifyProduct{{ID: "pf-1"}}
		case "2":
			resp.CurrentPage = 2
			resp.Data = []PrintifyProduct{{ID: "pf-2"}}
		default:
			t.Fatalf("unexpected page %q", page)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	products, err := newTestPrintifyClient(srv.URL).GetProducts(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("GetProducts returned error: %v", err)
	}
	if len(products) != 2 || products[0].ID != "pf-1" || products[1].ID != "pf-2" {
		t.Fatalf("pagination not followed: %+v", products)
	}
}

func TestSendToProduction(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shops/shop-1/orders/po_42/send_to_production.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		called = true
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if err := newTestPrintifyClient(srv.URL).SendToProduction(context.Background(), "shop-1", "po_42"); err != nil {
		t.Fatalf("SendToProduction returned error: %v", err)
	}
	if !called {
		t.Fatal("endpoint not called")
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewPrintifyClient(&config.Printify{BaseAPIURL: "http://unused"})
	if _, err := c.GetShops(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
