package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tokapos/tokapos-backend/internal/dto"
	"github.com/tokapos/tokapos-backend/internal/services"
	"github.com/tokapos/tokapos-backend/internal/tenant"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	report, err := h.reportService.Dashboard(org.ID, c.Query("range", "7days"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to build dashboard"})
	}
	return c.JSON(report)
}

func (h *ReportHandler) SalesStats(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	stats, err := h.reportService.SalesStats(org.ID, c.Query("range", "week"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to build sales stats"})
	}
	return c.JSON(stats)
}

func (h *ReportHandler) InventorySummary(c *fiber.Ctx) error {
	org := tenant.GetOrganization(c)
	summary, err := h.reportService.InventorySummary(org.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to build inventory summary"})
	}
	return c.JSON(summary)
}
