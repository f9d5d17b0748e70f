package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"bloodlink-api/internal/adapters/http/middleware"
	"bloodlink-api/internal/adapters/http/routes"
	"bloodlink-api/internal/adapters/persistence/models"
	"bloodlink-api/internal/adapters/persistence/repositories"
	"bloodlink-api/internal/config"
	"bloodlink-api/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "bloodlink-api/docs" // Swagger docs
)

// @title BloodLink API
// @version 1.0
// @description Multi-tenant blood bank inventory and workflow API

// @contact.name API Support
// @contact.email support@bloodlink.example.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed banks, stock rows and the bootstrap admin
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Scheduled housekeeping (token purge, stock reconciliation)
	maintenance := services.NewMaintenanceService(
		repositories.NewRefreshTokenRepository(db),
		repositories.NewDonationRepository(db),
		repositories.NewRequestRepository(db),
		repositories.NewStockRepository(db),
		repositories.NewBankRepository(db),
	)
	maintenance.Start()
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BloodLink API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
