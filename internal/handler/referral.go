package handler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetReferrals(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	overview, err := h.referralSvc.GetOverview(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load referrals"})
	}
	return c.JSON(overview)
}

func (h *Handler) GetReferralStats(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	stats, err := h.referralSvc.GetStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load referral stats"})
	}
	return c.JSON(stats)
}
