package service

import (
	"context"
	"errors"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/model"
	"testing"
)

func checkoutProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*model.Product{
		"prod-1": {
			ID:         "prod-1",
			PrintifyID: "pf-100",
			Title:      "Classic Logo Tee",
			Active:     true,
			Variants: []model.ProductVariant{
				{VariantID: 101, Title: "S / Black", PriceCents: 2500, IsEnabled: true, IsDefault: true, IsAvailable: true},
			},
		},
	}}
}

func TestCreateSessionReturnsURL(t *testing.T) {
	svc := NewCheckoutService(&fakeStripeClient{}, checkoutProductRepo(), "https://shop.test")

	url, err := svc.CreateSession(context.Background(), []dto.CheckoutItem{
		{ProductID: "prod-1", VariantID: 101, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if url == "" {
		t.Fatal("expected a checkout URL")
	}
}

func TestCreateSessionRejectsUnresolvableCart(t *testing.T) {
	cases := []struct {
		name  string
		items []dto.CheckoutItem
	}{
		{name: "empty cart", items: nil},
		{name: "unknown product", items: []dto.CheckoutItem{{ProductID: "nope", VariantID: 101, Quantity: 1}}},
		{name: "unknown variant", items: []dto.CheckoutItem{{ProductID: "prod-1", VariantID: 999, Quantity: 1}}},
		{name: "zero quantity", items: []dto.CheckoutItem{{ProductID: "prod-1", VariantID: 101, Quantity: 0}}},
		{name: "partial resolve", items: []dto.CheckoutItem{
			{ProductID: "prod-1", VariantID: 101, Quantity: 1},
			{ProductID: "nope", VariantID: 1, Quantity: 1},
		}},
	}

	svc := NewCheckoutService(&fakeStripeClient{}, checkoutProductRepo(), "https://shop.test")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateSession(context.Background(), tc.items); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
