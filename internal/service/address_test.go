package service

import (
	"errors"
	"printwear-storefront/internal/model"
	"testing"
)

func TestSplitName(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{name: "full name", input: "Jane Doe", wantFirst: "Jane", wantLast: "Doe"},
		{name: "middle name folds into last", input: "Jane Q Doe", wantFirst: "Jane", wantLast: "Q Doe"},
		{name: "single token", input: "Jane", wantFirst: "Jane", wantLast: "Customer"},
		{name: "empty", input: "", wantFirst: "Customer", wantLast: "Order"},
		{name: "whitespace only", input: "   ", wantFirst: "Customer", wantLast: "Order"},
		{name: "surrounding whitespace", input: "  Jane   Doe  ", wantFirst: "Jane", wantLast: "Doe"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := splitName(tc.input)
			if first != tc.wantFirst || last != tc.wantLast {
				t.Fatalf("splitName(%q) = %q, %q; want %q, %q", tc.input, first, last, tc.wantFirst, tc.wantLast)
			}
		})
	}
}

func makeSession() *model.CheckoutSession {
	return &model.CheckoutSession{
		ID:            "cs_test_1",
		CustomerEmail: "jane@example.com",
		CustomerDetails: &model.SessionContact{
			Name:  "Jane Q Doe",
			Email: "jane@example.com",
			Phone: "555-0100",
			Address: &model.SessionAddress{
				Line1:      "9 Billing Rd",
				City:       "Springfield",
				PostalCode: "11111",
				Country:    "US",
			},
		},
		ShippingDetails: &model.SessionContact{
			Name: "Jane Q Doe",
			Address: &model.SessionAddress{
				Line1:      "1 Main St",
				Line2:      "Apt 2",
				City:       "Springfield",
				State:      "IL",
				PostalCode: "62704",
				Country:    "US",
			},
		},
	}
}

func TestResolveShippingAddress(t *testing.T) {
	sess := makeSession()

	addr, err := resolveShippingAddress(sess)
	if err != nil {
		t.Fatalf("resolveShippingAddress returned error: %v", err)
	}
	if addr.FirstName != "Jane" || addr.LastName != "Q Doe" {
		t.Fatalf("name split mismatch: got %q %q", addr.FirstName, addr.LastName)
	}
	if addr.Address1 != "1 Main St" || addr.Zip != "62704" {
		t.Fatalf("expected shipping details to win over customer details, got %+v", addr)
	}
	if addr.Email != "jane@example.com" {
		t.Fatalf("email mismatch: got %q", addr.Email)
	}
	if addr.Region != "IL" || addr.Address2 != "Apt 2" {
		t.Fatalf("optional fields not passed through: %+v", addr)
	}
}

func TestResolveShippingAddressFallsBackToCustomerDetails(t *testing.T) {
	sess := makeSession()
	sess.ShippingDetails = nil

	addr, err := resolveShippingAddress(sess)
	if err != nil {
		t.Fatalf("resolveShippingAddress returned error: %v", err)
	}
	if addr.Address1 != "9 Billing Rd" {
		t.Fatalf("expected customer address fallback, got %+v", addr)
	}
}

func TestResolveShippingAddressRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(s *model.CheckoutSession)
	}{
		{name: "no address at all", mut: func(s *model.CheckoutSession) {
			s.ShippingDetails = nil
			s.CustomerDetails = nil
		}},
		{name: "missing postal code", mut: func(s *model.CheckoutSession) {
			s.ShippingDetails.Address.PostalCode = ""
		}},
		{name: "missing line1", mut: func(s *model.CheckoutSession) {
			s.ShippingDetails.Address.Line1 = ""
		}},
		{name: "missing city", mut: func(s *model.CheckoutSession) {
			s.ShippingDetails.Address.City = ""
		}},
		{name: "missing country", mut: func(s *model.CheckoutSession) {
			s.ShippingDetails.Address.Country = ""
		}},
		{name: "missing email", mut: func(s *model.CheckoutSession) {
			s.CustomerDetails.Email = ""
			s.CustomerEmail = ""
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess := makeSession()
			tc.mut(sess)

			if _, err := resolveShippingAddress(sess); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestResolveShippingAddressMissingNameUsesPlaceholders(t *testing.T) {
	sess := makeSession()
	sess.ShippingDetails.Name = ""

	addr, err := resolveShippingAddress(sess)
	if err != nil {
		t.Fatalf("a missing name must not block fulfillment: %v", err)
	}
	if addr.FirstName != "Customer" || addr.LastName != "Order" {
		t.Fatalf("expected placeholder pair, got %q %q", addr.FirstName, addr.LastName)
	}
}
