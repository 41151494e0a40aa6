package handlers

import (
	"freshkeep/domain"
	"freshkeep/internal/api/presenters"
	"freshkeep/pkg/analytics"
	"freshkeep/pkg/expiration"

	"github.com/gofiber/fiber/v2"
)

type (
	AnalyticsHandler interface {
		GetDashboardStats(c *fiber.Ctx) error
	}

	analyticsHandler struct {
		analyticsService analytics.AnalyticsService
		engine           expiration.Engine
	}
)

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService, engine expiration.Engine) AnalyticsHandler {
	return &analyticsHandler{
		analyticsService: analyticsService,
		engine:           engine,
	}
}

func (h *analyticsHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.analyticsService.GetDashboardStats(c.Context(), userID, h.engine.SoonThresholdDays())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
