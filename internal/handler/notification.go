package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	notifications, err := h.notificationSvc.List(c.Context(), userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load notifications"})
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}

	if err := h.notificationSvc.MarkRead(c.Context(), id, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update notification"})
	}
	return c.JSON(fiber.Map{"success": true})
}
