package handlers

import (
	"freshkeep/domain"
	"freshkeep/internal/api/presenters"
	"freshkeep/pkg/expiration"
	"freshkeep/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		CountUnread(c *fiber.Ctx) error
		MarkRead(c *fiber.Ctx) error
		MarkAllRead(c *fiber.Ctx) error
		Evaluate(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
		engine              expiration.Engine
	}
)

func NewNotificationHandler(notificationService notification.NotificationService, engine expiration.Engine) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		engine:              engine,
	}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	unreadOnly := c.Query("unread_only") == "true"
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	notifications, count, err := h.notificationService.GetNotifications(c.Context(), userID, unreadOnly, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"notifications": notifications,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) CountUnread(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	count, err := h.notificationService.CountUnread(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetNotifications, err)
	}

	return presenters.SuccessResponse(c, domain.UnreadCountResponse{Count: count}, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	notificationID := c.Params("id")

	if err := h.notificationService.MarkRead(c.Context(), notificationID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkRead)
}

func (h *notificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.notificationService.MarkAllRead(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkAllRead, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkAllRead)
}

// Evaluate runs an on-demand expiration pass for the calling user.
func (h *notificationHandler) Evaluate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	result, err := h.engine.EvaluateUser(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEvaluate, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessEvaluate)
}
