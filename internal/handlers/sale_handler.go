package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/services"
	"github.com/tokapos/tokapos-backend/internal/tenant"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	sales, err := h.saleService.List(org.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch sales"})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) Create(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	sale, err := h.saleService.Create(org.ID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSaleLimitReached):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error() + ". Please upgrade to record more sales."})
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrEmptySale),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInsufficientStock),
			errors.Is(err, services.ErrInvalidPaymentMethod):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to create sale"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	saleID, err := uuid.Parse(c.Params("saleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid sale ID"})
	}

	sale, err := h.saleService.Get(org.ID, saleID)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch sale"})
	}
	return c.JSON(sale)
}
