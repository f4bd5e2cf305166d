package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tokapos/tokapos-backend/internal/config"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/models"
	"github.com/tokapos/tokapos-backend/internal/tenant"
	"gorm.io/gorm"
)

// RequireOrganization loads the organization named by the :organizationId path
// param, scoped to the authenticated user, and stores it in context locals.
// Organizations not owned by the caller are indistinguishable from absent ones.
func RequireOrganization(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		orgID, err := uuid.Parse(c.Params("organizationId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid organization ID",
			})
		}

		var org models.Organization
		if err := db.Scopes(tenant.OwnedBy(userID)).First(&org, "id = ?", orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Organization not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load organization",
			})
		}

		c.Locals("organization", &org)
		return c.Next()
	}
}

// OrgAdminRequired verifies the scoped admin session cookie issued by the
// organization auth endpoint. It must run after RequireOrganization.
func OrgAdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org := tenant.GetOrganization(c)
		userID, err := tenant.GetUserID(c)
		if org == nil || err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		cookie := c.Cookies("org_auth_" + org.ID.String())
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Organization admin authentication required",
			})
		}

		token, err := jwt.Parse(cookie, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Organization admin session expired",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid session claims",
			})
		}

		scope, _ := claims["scope"].(string)
		orgClaim, _ := claims["org"].(string)
		sub, _ := claims["sub"].(string)
		if scope != "org_admin" || orgClaim != org.ID.String() || sub != userID.String() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Organization admin access required",
			})
		}

		return c.Next()
	}
}
