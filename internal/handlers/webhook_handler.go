package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/services"
)

// WebhookHandler receives Midtrans HTTP notifications. The route is
// unauthenticated; the sha512 signature in the payload is the only
// credential, so it is verified before anything else.
type WebhookHandler struct {
	paymentService *services.PaymentService
	gateway        *services.MidtransClient
}

func NewWebhookHandler(paymentService *services.PaymentService, gateway *services.MidtransClient) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService, gateway: gateway}
}

func (h *WebhookHandler) Midtrans(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid notification body"})
	}

	if !h.gateway.VerifySignature(&n) {
		slog.Warn("webhook signature mismatch", "order_id", n.OrderID)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Invalid signature"})
	}

	if err := h.paymentService.HandleNotification(&n); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			slog.Warn("webhook for unknown order", "order_id", n.OrderID)
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Unknown order"})
		}
		slog.Error("webhook processing failed", "order_id", n.OrderID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to process notification"})
	}

	return c.JSON(fiber.Map{"success": true})
}
