package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/services"
	"github.com/tokapos/tokapos-backend/internal/tenant"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	paymentService      *services.PaymentService
	authService         *services.AuthService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, paymentService *services.PaymentService, authService *services.AuthService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		paymentService:      paymentService,
		authService:         authService,
	}
}

func (h *SubscriptionHandler) Status(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	status, err := h.subscriptionService.GetStatus(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch subscription status"})
	}
	return c.JSON(status)
}

// Action dispatches on the request body: startTrial grants the one-time
// trial, upgrade opens a payment session at the gateway.
func (h *SubscriptionHandler) Action(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.SubscriptionActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	switch req.Action {
	case "startTrial":
		status, err := h.subscriptionService.StartTrial(userID)
		if err != nil {
			if errors.Is(err, services.ErrTrialAlreadyUsed) {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to start trial"})
		}
		return c.JSON(status)
	case "upgrade":
		user, err := h.authService.GetUser(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
		}
		upgrade, err := h.paymentService.InitiateUpgrade(user)
		if err != nil {
			if errors.Is(err, services.ErrGatewayUnavailable) {
				return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: true, Message: "Payment gateway is unavailable, please try again later"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to initiate upgrade"})
		}
		return c.JSON(upgrade)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Unknown action"})
	}
}

// Reconcile lets the frontend report a payment outcome it observed in the
// Snap popup, without waiting for the asynchronous webhook.
func (h *SubscriptionHandler) Reconcile(c *fiber.Ctx) error {
	if _, err := tenant.GetUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	if req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "orderId is required"})
	}

	if err := h.paymentService.Reconcile(req.OrderID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrInvalidPaymentStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update payment"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *SubscriptionHandler) PaymentStatus(c *fiber.Ctx) error {
	if _, err := tenant.GetUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	orderID := c.Query("orderId")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "orderId is required"})
	}

	status, err := h.paymentService.CheckStatus(orderID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrGatewayUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: true, Message: "Payment gateway is unavailable, please try again later"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch payment status"})
		}
	}
	return c.JSON(status)
}
