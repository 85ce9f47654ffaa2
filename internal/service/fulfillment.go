package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"printwear-storefront/internal/client"
	"printwear-storefront/internal/config"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/model"
	"printwear-storefront/internal/repository"

	stripe "github.com/stripe/stripe-go/v80"
	"gorm.io/gorm"
)

// defaultShippingMethod is Printify's standard shipping option.
const defaultShippingMethod = 1

type FulfillmentService interface {
	// HandleEvent verifies and processes one webhook delivery. A returned
	// error means the upstream should redeliver (or, for verification
	// failures, drop) the event; a returned ack means we are done with it.
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) (*dto.WebhookAck, error)
}

type fulfillmentServiceImpl struct {
	stripeClient   client.StripeClient
	printifyClient client.PrintifyClient
	printifyCfg    config.Printify
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	log            *slog.Logger
}

func NewFulfillmentService(
	stripeClient client.StripeClient,
	printifyClient client.PrintifyClient,
	printifyCfg config.Printify,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	log *slog.Logger,
) FulfillmentService {
	return &fulfillmentServiceImpl{
		stripeClient:   stripeClient,
		printifyClient: printifyClient,
		printifyCfg:    printifyCfg,
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		log:            log,
	}
}

func (s *fulfillmentServiceImpl) HandleEvent(ctx context.Context, payload []byte, sigHeader string) (*dto.WebhookAck, error) {
	event, err := s.stripeClient.VerifyEvent(payload, sigHeader)
	if err != nil {
		if errors.Is(err, client.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	// other event types are acknowledged without side effects
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		s.log.Debug("ignoring event", "type", event.Type)
		return &dto.WebhookAck{Received: true}, nil
	}

	var session model.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: decode session payload: %v", ErrVerification, err)
	}

	return s.fulfillSession(ctx, &session)
}

func (s *fulfillmentServiceImpl) fulfillSession(ctx context.Context, session *model.CheckoutSession) (*dto.WebhookAck, error) {
	// fail closed before any side effect if fulfillment cannot run at all
	if s.printifyCfg.APIKey == "" || s.printifyCfg.ShopID == "" {
		return nil, fmt.Errorf("%w: printify credentials missing", ErrConfiguration)
	}

	items := parseCartItems(session.Metadata["items"])

	if err := s.orderRepo.UpsertPaid(ctx, &model.Order{
		SessionID:    session.ID,
		Email:        customerEmail(session),
		ShippingJSON: marshalShipping(session),
		ItemsJSON:    session.Metadata["items"],
		TotalCents:   session.AmountTotal,
		Currency:     session.Currency,
	}); err != nil {
		return nil, fmt.Errorf("%w: upsert order %s: %v", ErrPersistence, session.ID, err)
	}
	s.log.Info("order recorded", "session", session.ID, "status", model.OrderStatusPaid)

	address, err := resolveShippingAddress(session)
	if err != nil {
		// funds are captured; defer fulfillment to manual handling and ack
		// so Stripe does not redeliver
		if err := s.orderRepo.UpdateStatus(ctx, session.ID, model.OrderStatusNeedsShipping); err != nil {
			return nil, fmt.Errorf("%w: mark needs_shipping: %v", ErrPersistence, err)
		}
		s.log.Warn("order needs shipping details", "session", session.ID, "reason", err)
		return &dto.WebhookAck{Received: true, Warning: "order stored without a usable shipping address"}, nil
	}

	lineItems, err := s.resolveLineItems(ctx, items)
	if err != nil {
		if markErr := s.orderRepo.UpdateStatus(ctx, session.ID, model.OrderStatusMissingProduct); markErr != nil {
			return nil, fmt.Errorf("%w: mark missing_product: %v", ErrPersistence, markErr)
		}
		s.log.Error("product resolution failed", "session", session.ID, "err", err)
		return nil, err
	}

	lineItems = filterFulfillable(lineItems)
	if len(lineItems) == 0 {
		if err := s.orderRepo.UpdateStatus(ctx, session.ID, model.OrderStatusMissingItems); err != nil {
			return nil, fmt.Errorf("%w: mark missing_items: %v", ErrPersistence, err)
		}
		s.log.Error("no fulfillable line items", "session", session.ID)
		return nil, fmt.Errorf("%w: no fulfillable line items for session %s", ErrResolution, session.ID)
	}

	printifyOrderID, err := s.printifyClient.CreateOrder(ctx, s.printifyCfg.ShopID, &client.CreateOrderRequest{
		ExternalID:               session.ID,
		LineItems:                lineItems,
		ShippingMethod:           defaultShippingMethod,
		SendShippingNotification: true,
		AddressTo:                *address,
	})
	if err != nil {
		if markErr := s.orderRepo.RecordFulfillmentError(ctx, session.ID, err.Error(), model.OrderStatusPrintifyError); markErr != nil {
			return nil, fmt.Errorf("%w: mark printify_error: %v", ErrPersistence, markErr)
		}
		s.log.Error("printify order creation failed", "session", session.ID, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrFulfillment, err)
	}

	status := model.OrderStatusOrderCreated
	if err := s.orderRepo.RecordFulfillment(ctx, session.ID, printifyOrderID, status); err != nil {
		return nil, fmt.Errorf("%w: record fulfillment: %v", ErrPersistence, err)
	}
	s.log.Info("printify order created", "session", session.ID, "printify_order", printifyOrderID)

	if s.printifyCfg.SendToProduction {
		// the order exists either way; a failure here must not trigger
		// redelivery or it would be created twice
		if err := s.printifyClient.SendToProduction(ctx, s.printifyCfg.ShopID, printifyOrderID); err != nil {
			s.log.Error("send to production failed", "session", session.ID, "printify_order", printifyOrderID, "err", err)
			if markErr := s.orderRepo.RecordFulfillmentError(ctx, session.ID, err.Error(), status); markErr != nil {
				return nil, fmt.Errorf("%w: record send_to_production error: %v", ErrPersistence, markErr)
			}
			return &dto.WebhookAck{Received: true, Warning: "order created but not sent to production"}, nil
		}
		status = model.OrderStatusSentToProduction
		if err := s.orderRepo.UpdateStatus(ctx, session.ID, status); err != nil {
			return nil, fmt.Errorf("%w: mark sent_to_production: %v", ErrPersistence, err)
		}
		s.log.Info("printify order sent to production", "session", session.ID, "printify_order", printifyOrderID)
	}

	return &dto.WebhookAck{Received: true}, nil
}

// resolveLineItems maps internal product ids onto Printify product ids. Any
// unknown product fails the whole batch; the catalog may simply not have
// synced yet, so redelivery can succeed later.
func (s *fulfillmentServiceImpl) resolveLineItems(ctx context.Context, items []dto.CartItem) ([]client.OrderLineItem, error) {
	lineItems := make([]client.OrderLineItem, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown product %q", ErrResolution, item.ID)
			}
			return nil, fmt.Errorf("%w: look up product %q: %v", ErrPersistence, item.ID, err)
		}
		lineItems = append(lineItems, client.OrderLineItem{
			ProductID: product.PrintifyID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return lineItems, nil
}

// filterFulfillable drops items with a non-positive quantity or no variant.
// One malformed item must not sink the whole order.
func filterFulfillable(items []client.OrderLineItem) []client.OrderLineItem {
	kept := items[:0]
	for _, item := range items {
		if item.Quantity < 1 || item.VariantID == 0 {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func parseCartItems(raw string) []dto.CartItem {
	if raw == "" {
		return nil
	}
	var items []dto.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func customerEmail(session *model.CheckoutSession) string {
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		return session.CustomerDetails.Email
	}
	return session.CustomerEmail
}

func marshalShipping(session *model.CheckoutSession) string {
	if session.ShippingDetails == nil {
		return "{}"
	}
	data, err := json.Marshal(session.ShippingDetails)
	if err != nil {
		return "{}"
	}
	return string(data)
}
