package routes

import (
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/handlers"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/http/middleware"
	"github.com/TeemXTech/Grievance-sub002/internal/adapters/persistence/repositories"
	"github.com/TeemXTech/Grievance-sub002/internal/config"
	"github.com/TeemXTech/Grievance-sub002/internal/core/services"

	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services, handlers and routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.GrievanceService {
	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	revokedRepo := repositories.NewRevokedTokenRepository(db)
	grievanceRepo := repositories.NewGrievanceRepository(db)
	updateRepo := repositories.NewGrievanceUpdateRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	districtRepo := repositories.NewDistrictRepository(db)
	eventRepo := repositories.NewEventRepository(db)

	// Services
	authService := services.NewAuthService(accountRepo, revokedRepo, cfg)
	userService := services.NewUserService(accountRepo)
	grievanceService := services.NewGrievanceService(grievanceRepo, updateRepo, categoryRepo, accountRepo)
	eventService := services.NewEventService(eventRepo)
	dashboardService := services.NewDashboardService(db)
	masterService := services.NewMasterService(categoryRepo, districtRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	grievanceHandler := handlers.NewGrievanceHandler(grievanceService)
	eventHandler := handlers.NewEventHandler(eventService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	masterHandler := handlers.NewMasterHandler(masterService)

	// API info, health, docs (public)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Grievance Portal API",
			"version": "1.0",
			"docs":    "/swagger/index.html",
		})
	})
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	// Every request below passes through the authorization gate:
	// token extraction, validation, denylist, account status, role matrix.
	app.Use(middleware.Gate(cfg, middleware.DefaultRouteMatrix(), accountRepo, revokedRepo))

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)

	// Profile
	profile := api.Group("/profile")
	profile.Put("/password", userHandler.ChangePassword)

	// Grievances
	grievances := api.Group("/grievances")
	grievances.Get("/track/:tracking_no", grievanceHandler.Track) // public
	grievances.Post("/", grievanceHandler.Submit)
	grievances.Get("/", grievanceHandler.List)
	grievances.Get("/:id", grievanceHandler.Get)
	grievances.Get("/:id/history", grievanceHandler.History)
	grievances.Post("/:id/triage", grievanceHandler.Triage)
	grievances.Post("/:id/assign", grievanceHandler.Assign)
	grievances.Post("/:id/progress", grievanceHandler.Progress)
	grievances.Post("/:id/resolve", grievanceHandler.Resolve)
	grievances.Post("/:id/close", grievanceHandler.Close)
	grievances.Post("/:id/reject", grievanceHandler.Reject)
	grievances.Post("/:id/reopen", grievanceHandler.Reopen)
	grievances.Delete("/:id", grievanceHandler.Delete)

	// Master data lookups (any authenticated role)
	api.Get("/categories", middleware.MasterDataCache(), masterHandler.ListCategories)
	api.Get("/districts", middleware.MasterDataCache(), masterHandler.ListDistricts)

	// Master data management (admin)
	master := api.Group("/master")
	master.Post("/categories", masterHandler.CreateCategory)
	master.Put("/categories/:id", masterHandler.UpdateCategory)
	master.Delete("/categories/:id", masterHandler.DeleteCategory)
	master.Post("/districts", masterHandler.CreateDistrict)
	master.Put("/districts/:id", masterHandler.UpdateDistrict)
	master.Delete("/districts/:id", masterHandler.DeleteDistrict)

	// Account management (admin)
	users := api.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Minister's office
	minister := api.Group("/minister")
	minister.Get("/overview", dashboardHandler.Minister)

	// Calendar events (minister's office + admin)
	events := api.Group("/events")
	events.Get("/", eventHandler.List)
	events.Post("/", eventHandler.Create)
	events.Get("/:id", eventHandler.Get)
	events.Put("/:id", eventHandler.Update)
	events.Delete("/:id", eventHandler.Delete)

	// Dashboards
	dashboard := api.Group("/dashboard", middleware.PrivateCacheHeaders())
	dashboard.Get("/admin", dashboardHandler.Admin)
	dashboard.Get("/minister", dashboardHandler.Minister)
	dashboard.Get("/officer", dashboardHandler.Officer)
	dashboard.Get("/me", dashboardHandler.Me)

	return grievanceService
}
