package client

import (
	"context"
	"errors"
	"fmt"
	"printwear-storefront/internal/config"
	"time"

	stripe "github.com/stripe/stripe-go/v80"
	stripeapi "github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
)

// ErrInvalidSignature covers a missing or mismatched Stripe-Signature header.
var ErrInvalidSignature = errors.New("invalid webhook signature")

type StripeClient interface {
	// VerifyEvent checks the Stripe-Signature header against the webhook
	// secret and returns the decoded event.
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (string, error)
}

type CheckoutLineItem struct {
	Name            string
	Description     string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int64
}

type CheckoutSessionParams struct {
	LineItems     []CheckoutLineItem
	ItemsMetadata string // serialized cart, read back by the webhook
	SuccessURL    string
	CancelURL     string
}

type stripeClientImpl struct {
	api           *stripeapi.API
	secretKey     string
	webhookSecret string
	tolerance     time.Duration
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	api := &stripeapi.API{}
	api.Init(stripeCfg.SecretKey, nil)

	return &stripeClientImpl{
		api:           api,
		secretKey:     stripeCfg.SecretKey,
		webhookSecret: stripeCfg.WebhookSecret,
		tolerance:     stripeCfg.SignatureTolerance,
	}
}

func (c *stripeClientImpl) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if c.webhookSecret == "" {
		return stripe.Event{}, fmt.Errorf("%w: stripe webhook secret missing", ErrNotConfigured)
	}
	if sigHeader == "" {
		return stripe.Event{}, fmt.Errorf("%w: missing Stripe-Signature header", ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                c.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event, nil
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (string, error) {
	if c.secretKey == "" {
		return "", fmt.Errorf("%w: stripe secret key missing", ErrNotConfigured)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(params.LineItems))
	for i, item := range params.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Description != "" {
			productData.Description = stripe.String(item.Description)
		}
		if item.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(item.UnitAmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		}
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItems,
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA"}),
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata("items", params.ItemsMetadata)

	sess, err := c.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		return "", fmt.Errorf("stripe create checkout session: %w", err)
	}
	return sess.URL, nil
}
