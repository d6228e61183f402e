package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailyvest/backend/internal/service"
)

// AdminAuth allows only users with the admin role flag through.
func AdminAuth(adminSvc *service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := adminSvc.IsAdmin(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to check admin status",
			})
		}

		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}

		return c.Next()
	}
}

// BlockCheck rejects requests from accounts blocked by deadline
// enforcement.
func BlockCheck(userSvc *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID != 0 {
			user, err := userSvc.GetUser(c.Context(), userID)
			if err == nil && user.Blocked {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "account blocked",
				})
			}
		}
		return c.Next()
	}
}
