package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/services"
	"github.com/tokapos/tokapos-backend/internal/tenant"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
	cfg        *config.Config
}

func NewOrganizationHandler(orgService *services.OrganizationService, cfg *config.Config) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService, cfg: cfg}
}

func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	orgs, err := h.orgService.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch organizations"})
	}
	return c.JSON(orgs)
}

func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	org, err := h.orgService.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrOrgLimitReached):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error() + ". Please upgrade to create more organizations."})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

func (h *OrganizationHandler) Get(c *fiber.Ctx) error {
	return c.JSON(tenant.GetOrganization(c))
}

func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	org, err := h.orgService.Update(tenant.GetOrganization(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.JSON(org)
}

func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	if err := h.orgService.Delete(tenant.GetOrganization(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete organization"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// Auth verifies the organization's admin password and sets the scoped
// admin session cookie.
func (h *OrganizationHandler) Auth(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.OrgAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	org := tenant.GetOrganization(c)
	token, err := h.orgService.VerifyAdminPassword(org, userID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrWrongOrgPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "org_auth_" + org.ID.String(),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.OrgAuthExpiry),
		HTTPOnly: true,
		SameSite: "Strict",
	})
	return c.JSON(fiber.Map{"success": true})
}

func (h *OrganizationHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangeOrgPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	if err := h.orgService.ChangeAdminPassword(tenant.GetOrganization(c), &req); err != nil {
		if errors.Is(err, services.ErrWrongOrgPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.JSON(fiber.Map{"success": true})
}
