package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dailyvest/backend/internal/config"
	"github.com/dailyvest/backend/internal/service"
)

type Handler struct {
	cfg             *config.Config
	userSvc         *service.UserService
	investmentSvc   *service.InvestmentService
	walletSvc       *service.WalletService
	referralSvc     *service.ReferralService
	notificationSvc *service.NotificationService
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	investmentSvc *service.InvestmentService,
	walletSvc *service.WalletService,
	referralSvc *service.ReferralService,
	notificationSvc *service.NotificationService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		userSvc:         userSvc,
		investmentSvc:   investmentSvc,
		walletSvc:       walletSvc,
		referralSvc:     referralSvc,
		notificationSvc: notificationSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
