package handler

import (
	"errors"
	"io"
	"net/http"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/service"

	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	fulfillmentService service.FulfillmentService
}

func NewWebhookHandler(fulfillmentService service.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{
		fulfillmentService: fulfillmentService,
	}
}

// StripeWebhook receives payment events. The response status is the only
// signal Stripe uses to decide on redelivery: 2xx means done, 4xx means the
// event is bad, 5xx asks for another try.
func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.WebhookAck{Error: "unreadable body"})
	}

	ack, err := h.fulfillmentService.HandleEvent(ctx, body, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, service.ErrVerification) {
			return c.JSON(http.StatusBadRequest, dto.WebhookAck{Error: err.Error()})
		}
		// configuration, persistence, resolution and fulfillment failures
		// all want redelivery
		return c.JSON(http.StatusInternalServerError, dto.WebhookAck{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, ack)
}
