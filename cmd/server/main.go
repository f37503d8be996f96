package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/middleware"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/routes"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/models"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/TeemXTech/Grievance-sub002/docs" // Swagger docs
)

// @title Grievance Portal API
// @version 1.0
// @description Citizen grievance management portal with role-based access
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@grievance.gov.in

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration (fails fast on missing/short JWT secret)
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

	// Seed default accounts and master data
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed accounts: %v", err)
	}
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Grievance Portal API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	grievanceService := routes.Setup(app, db, cfg)

	// Scheduler: hourly overdue flagging, nightly denylist purge
	cronService := services.NewCronService(grievanceService, repositories.NewRevokedTokenRepository(db))
	cronService.Start()
	defer cronService.Stop()

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
