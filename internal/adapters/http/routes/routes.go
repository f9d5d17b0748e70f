package routes

import (
	"bloodlink-api/internal/adapters/http/handlers"
	"bloodlink-api/internal/adapters/http/middleware"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/config"
	"bloodlink-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, then registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	bankRepo := repositories.NewBankRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	donorRepo := repositories.NewDonorRepository(db)
	recipientRepo := repositories.NewRecipientRepository(db)
	donationRepo := repositories.NewDonationRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	stockRepo := repositories.NewStockRepository(db)

	// Services
	txRunner := services.NewTxRunner(db)
	authService := services.NewAuthService(adminRepo, refreshTokenRepo, cfg)
	donorService := services.NewDonorService(donorRepo, bankRepo)
	recipientService := services.NewRecipientService(recipientRepo, bankRepo)
	donationService := services.NewDonationService(txRunner, donationRepo, donorRepo, adminRepo, stockRepo)
	requestService := services.NewRequestService(txRunner, requestRepo, recipientRepo, adminRepo, stockRepo)
	adminService := services.NewAdminService(adminRepo, bankRepo, refreshTokenRepo)
	stockService := services.NewStockService(stockRepo)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	donorHandler := handlers.NewDonorHandler(donorService)
	recipientHandler := handlers.NewRecipientHandler(recipientService)
	donationHandler := handlers.NewDonationHandler(donationService)
	requestHandler := handlers.NewRequestHandler(requestService)
	adminHandler := handlers.NewAdminHandler(adminService)
	stockHandler := handlers.NewStockHandler(stockService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/signin", middleware.SignInRateLimiter(), authHandler.SignIn)
	app.Post("/auth/refresh", authHandler.Refresh)
	app.Post("/auth/logout", authHandler.SignOut)

	app.Post("/donor", donorHandler.Register)
	app.Post("/recipient", recipientHandler.Register)
	app.Get("/bloodstock", stockHandler.List)

	// Authenticated admin routes
	admin := app.Group("/admin", middleware.AuthMiddleware(cfg))

	admin.Get("/dashboard", dashboardHandler.Summary)
	admin.Get("/bloodstock", stockHandler.ListAdmin)

	admin.Get("/manage-donors", donorHandler.List)
	admin.Get("/donor-history/:id", donorHandler.History)
	admin.Put("/update-donor/:id", donorHandler.Update)
	admin.Delete("/delete-donor/:id", donorHandler.Delete)

	admin.Get("/manage-recipients", recipientHandler.List)
	admin.Get("/recipient-history/:id", recipientHandler.History)
	admin.Put("/update-recipient/:id", recipientHandler.Update)
	admin.Delete("/delete-recipient/:id", recipientHandler.Delete)

	admin.Get("/donations", donationHandler.List)
	admin.Get("/donation-details/:id", donationHandler.Details)
	admin.Post("/add-donation", donationHandler.Add)

	admin.Get("/requests", requestHandler.List)
	admin.Get("/request-details/:id", requestHandler.Details)
	admin.Post("/add-request", requestHandler.Add)
	admin.Put("/update-request-status/:id", requestHandler.UpdateStatus)

	// Admin account management (Manager role only)
	manager := admin.Group("/", middleware.ManagerOnly())
	manager.Post("/add-admin", adminHandler.Create)
	manager.Get("/list", adminHandler.List)
	manager.Patch("/update-admin/:id", adminHandler.Update)
	manager.Delete("/delete-admin/:id", adminHandler.Delete)
}
