package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailyvest/backend/internal/middleware"
)

func getUserID(c *fiber.Ctx) int64 {
	return middleware.GetUserID(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}
