package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"printwear-storefront/internal/client"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/model"
	"printwear-storefront/internal/repository"

	"gorm.io/gorm"
)

type CheckoutService interface {
	// CreateSession resolves the cart against the catalog and returns the
	// hosted checkout URL.
	CreateSession(ctx context.Context, items []dto.CheckoutItem) (string, error)
}

type checkoutServiceImpl struct {
	stripeClient client.StripeClient
	productRepo  repository.ProductRepository
	baseURL      string
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	productRepo repository.ProductRepository,
	baseURL string,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient: stripeClient,
		productRepo:  productRepo,
		baseURL:      baseURL,
	}
}

type resolvedItem struct {
	productID    string
	name         string
	imageSrc     string
	variantID    int64
	variantTitle string
	priceCents   int64
	quantity     int
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, items []dto.CheckoutItem) (string, error) {
	resolved := make([]resolvedItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}

		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return "", fmt.Errorf("look up product %q: %w", item.ProductID, err)
		}
		if !product.Active {
			continue
		}

		var matched *model.ProductVariant
		for i := range product.Variants {
			v := &product.Variants[i]
			if v.VariantID == item.VariantID && v.IsEnabled {
				matched = v
				break
			}
		}
		if matched == nil {
			continue
		}

		resolved = append(resolved, resolvedItem{
			productID:    product.ID,
			name:         product.Title,
			imageSrc:     toDisplayProduct(product).ImageSrc,
			variantID:    matched.VariantID,
			variantTitle: matched.Title,
			priceCents:   matched.PriceCents,
			quantity:     item.Quantity,
		})
	}

	if len(resolved) == 0 || len(resolved) != len(items) {
		return "", fmt.Errorf("%w: cart does not resolve against the catalog", ErrValidation)
	}

	lineItems := make([]client.CheckoutLineItem, len(resolved))
	metadataItems := make([]dto.CartItem, len(resolved))
	for i, item := range resolved {
		lineItems[i] = client.CheckoutLineItem{
			Name:            item.name,
			Description:     item.variantTitle,
			ImageURL:        item.imageSrc,
			UnitAmountCents: item.priceCents,
			Quantity:        int64(item.quantity),
		}
		metadataItems[i] = dto.CartItem{
			ID:           item.productID,
			Name:         item.name,
			VariantID:    item.variantID,
			VariantTitle: item.variantTitle,
			Price:        float64(item.priceCents) / 100,
			Quantity:     item.quantity,
		}
	}

	metadata, err := json.Marshal(metadataItems)
	if err != nil {
		return "", fmt.Errorf("encode cart metadata: %w", err)
	}

	url, err := s.stripeClient.CreateCheckoutSession(ctx, &client.CheckoutSessionParams{
		LineItems:     lineItems,
		ItemsMetadata: string(metadata),
		SuccessURL:    s.baseURL + "/checkout/confirmation",
		CancelURL:     s.baseURL + "/cart",
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return url, nil
}
