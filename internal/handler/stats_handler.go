package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/tournest-backend/internal/middleware"
	"github.com/sefazor/tournest-backend/internal/models"
	"github.com/sefazor/tournest-backend/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.statsService.AdminStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}

func (h *StatsHandler) TouristStats(c *fiber.Ctx) error {
	stats, err := h.statsService.TouristStats(middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}

func (h *StatsHandler) TourGuideStats(c *fiber.Ctx) error {
	stats, err := h.statsService.TourGuideStats(middleware.UserEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(stats, ""))
}
