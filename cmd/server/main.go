package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"nagari-society/internal/adapters/http/middleware"
	"nagari-society/internal/adapters/http/routes"
	"nagari-society/internal/adapters/persistence/models"
	"nagari-society/internal/config"
	"nagari-society/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title Nagari Society API
// @version 1.0
// @description Residential society management API - notices, complaints, vendors, expenses, maintenance payments and AGM records

// @host localhost:8080
// @BasePath /api/v1
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

	// The admin account comes from configuration, never from code
	if err := config.SeedAdminIdentity(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed admin identity: %v", err)
	}

	if cfg.IsDev() {
		if err := config.SeedSampleData(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed sample data: %v", err)
		}
	}

	// Scheduled jobs: monthly dues, vendor contract sweep, token purge
	cronService := services.NewCronService(db, cfg)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Nagari Society API v1.0",
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
