package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dailyvest/backend/internal/repository"
	"github.com/dailyvest/backend/internal/service"
)

type WithdrawRequest struct {
	Amount int64  `json:"amount"` // minor currency units
	Method string `json:"method"`
}

func (h *Handler) GetWallet(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	wallet, err := h.walletSvc.GetWallet(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load wallet"})
	}
	return c.JSON(wallet)
}

func (h *Handler) GetTransactions(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	transactions, err := h.walletSvc.GetTransactions(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load transactions"})
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.walletSvc.Withdraw(c.Context(), userID, req.Amount, req.Method); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "insufficient balance"})
		case errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "withdrawal failed"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
