package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dailyvest/backend/internal/model"
	"github.com/dailyvest/backend/internal/repository"
	"github.com/dailyvest/backend/internal/service"
)

type CreateInvestmentRequest struct {
	PackageID   int64             `json:"package_id"`
	PaymentMode model.PaymentMode `json:"payment_mode"`
}

type PaymentRequest struct {
	InvestmentID string `json:"investment_id"`
	Amount       int64  `json:"amount"` // minor currency units
	UsePoints    bool   `json:"use_points"`
}

func (h *Handler) GetPackages(c *fiber.Ctx) error {
	packages, err := h.investmentSvc.ListPackages(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load packages"})
	}
	return c.JSON(packages)
}

func (h *Handler) CreateInvestment(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	var req CreateInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	inv, err := h.investmentSvc.Create(c.Context(), userID, req.PackageID, req.PaymentMode)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "investment package not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *Handler) GetUserInvestments(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	investments, err := h.investmentSvc.ListUserInvestments(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load investments"})
	}
	return c.JSON(investments)
}

func (h *Handler) MakePayment(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == 0 {
		return unauthorized(c)
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	investmentID, err := uuid.Parse(req.InvestmentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid investment id"})
	}

	inv, err := h.investmentSvc.ApplyPayment(c.Context(), userID, investmentID, req.Amount, req.UsePoints)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvestmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "investment not found"})
		case errors.Is(err, repository.ErrInsufficientFunds):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "insufficient balance"})
		case errors.Is(err, repository.ErrInsufficientPoints):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "insufficient points"})
		case errors.Is(err, service.ErrAlreadyPaid),
			errors.Is(err, service.ErrInvestmentClosed),
			errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "payment failed"})
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"investment": inv,
	})
}
