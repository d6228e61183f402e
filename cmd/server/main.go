package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dailyvest/backend/internal/config"
	"github.com/dailyvest/backend/internal/handler"
	"github.com/dailyvest/backend/internal/middleware"
	"github.com/dailyvest/backend/internal/repository"
	"github.com/dailyvest/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Create services
	notificationSvc := service.NewNotificationService(repo)
	commissionSvc := service.NewCommissionService(repo)
	investmentSvc := service.NewInvestmentService(repo, commissionSvc)
	userSvc := service.NewUserService(repo, cfg)
	walletSvc := service.NewWalletService(repo)
	referralSvc := service.NewReferralService(repo)
	adminSvc := service.NewAdminService(repo)

	// Background settlement workers
	returnsWorker := service.NewReturnsWorker(repo, notificationSvc, cfg.Jobs.ReturnsInterval)
	deadlineWorker := service.NewDeadlineWorker(repo, notificationSvc, cfg.Jobs.DeadlineInterval)

	// Create handlers
	h := handler.New(cfg, userSvc, investmentSvc, walletSvc, referralSvc, notificationSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Public auth endpoints
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)

	// Authenticated API
	api := app.Group("/api", middleware.Auth(cfg), middleware.BlockCheck(userSvc))

	api.Get("/user/me", h.GetMe)

	// Investments
	api.Get("/investments/packages", h.GetPackages)
	api.Post("/investments", h.CreateInvestment)
	api.Get("/investments/user", h.GetUserInvestments)
	api.Post("/investments/payment", h.MakePayment)

	// Wallet
	api.Get("/wallet", h.GetWallet)
	api.Get("/wallet/transactions", h.GetTransactions)
	api.Post("/wallet/withdraw", h.Withdraw)

	// Referrals
	api.Get("/referrals", h.GetReferrals)
	api.Get("/referrals/stats", h.GetReferralStats)

	// Notifications
	api.Get("/notifications", h.GetNotifications)
	api.Post("/notifications/:id/read", h.MarkNotificationRead)

	// Admin panel
	admin := app.Group("/api/admin", middleware.Auth(cfg), middleware.AdminAuth(adminSvc))
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users/:user_id/unblock", adminHandler.UnblockUser)

	// Internal endpoints for running the settlement jobs on demand
	internal := app.Group("/internal")
	internal.Post("/cron/returns", func(c *fiber.Ctx) error {
		processed, err := returnsWorker.ProcessDailyReturns(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"processed": processed})
	})

	internal.Post("/cron/deadlines", func(c *fiber.Ctx) error {
		report, err := deadlineWorker.EnforceDeadlines(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.JSON(report)
	})

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go returnsWorker.Start(ctx)
	go deadlineWorker.Start(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
