package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-portfolio/config"
	"github.com/sahilchouksey/academic-portfolio/database"
	"github.com/sahilchouksey/academic-portfolio/handlers"
	admin_handlers "github.com/sahilchouksey/academic-portfolio/handlers/admin"
	auth_handlers "github.com/sahilchouksey/academic-portfolio/handlers/auth"
	content_handlers "github.com/sahilchouksey/academic-portfolio/handlers/content"
	setup_handlers "github.com/sahilchouksey/academic-portfolio/handlers/setup"
	"github.com/sahilchouksey/academic-portfolio/services"
	"github.com/sahilchouksey/academic-portfolio/utils"
	"github.com/sahilchouksey/academic-portfolio/utils/auth"
	"github.com/sahilchouksey/academic-portfolio/utils/cache"
	"github.com/sahilchouksey/academic-portfolio/utils/middleware"
	"github.com/sahilchouksey/academic-portfolio/utils/validation"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the route table needs
type Deps struct {
	Env    *config.EnvironmentVariable
	Store  database.Storage
	Cache  *cache.RedisCache // nil disables the IP guard
	Log    *logrus.Logger
	Hasher auth.Hasher
}

func SetupRoutes(app *fiber.App, deps Deps) {
	env := deps.Env
	db := deps.Store.GetDB()

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: env.JWT_EXPIRES_IN,
		Issuer: env.JWT_ISSUER,
	})
	validator := validation.NewValidator()

	// Services
	credentialService := services.NewCredentialService(db, deps.Hasher, jwtManager, services.LockoutPolicy{
		MaxAttempts:  env.LOGIN_MAX_ATTEMPTS,
		LockDuration: env.LOGIN_LOCK_DURATION,
	}, deps.Log)
	adminService := services.NewAdminService(db, deps.Hasher, deps.Log)
	personalService := services.NewPersonalService(db)
	searchService := services.NewSearchService(db)
	seeder := database.NewSeeder(db, deps.Log, deps.Hasher)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)
	bruteForceProtection := middleware.NewBruteForceProtection(deps.Cache, deps.Log)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(credentialService, validator, bruteForceProtection, deps.Log)
	adminHandler := admin_handlers.NewAdminHandler(adminService, validator)
	resources := content_handlers.NewResources(db, validator, env.MAX_PAGE_SIZE)
	personalHandler := content_handlers.NewPersonalHandler(personalService, validator)
	searchHandler := content_handlers.NewSearchHandler(searchService)
	setupHandler := setup_handlers.NewSetupHandler(db, seeder, env.ADMIN_EMAIL, env.ADMIN_PASSWORD)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins: env.ALLOWED_ORIGINS,
		AccessLog:      env.GO_ENV != "test",
	})
	app.Use(middleware.Metrics())

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))
	app.Get("/metrics", middleware.MetricsHandler())

	api := app.Group(env.API_PREFIX)

	// Setup routes (public, idempotent)
	api.Post("/init", setupHandler.Init)
	api.Get("/status", setupHandler.GetStatus)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", bruteForceProtection.Check(), authHandler.Login)
	authGroup.Get("/profile", authMiddleware.Required(), authHandler.GetProfile)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	authGroup.Get("/verify", authMiddleware.Required(), authHandler.Verify)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.Required())
	admin.Get("/dashboard", adminHandler.Dashboard)

	admins := admin.Group("/admins", authMiddleware.RequireSuperAdmin(), middleware.AdminAuditLog(deps.Log, "admins"))
	admins.Get("/", adminHandler.ListAdmins)
	admins.Post("/", adminHandler.CreateAdmin)
	admins.Put("/:id", adminHandler.UpdateAdmin)
	admins.Delete("/:id", adminHandler.DeleteAdmin)

	// Content routes. Fixed paths go before the generated ones.
	content := api.Group("/content")
	content.Get("/search", searchHandler.Search)
	content.Get("/personal", personalHandler.GetPersonal)
	content.Put("/personal", authMiddleware.Required(), middleware.AdminAuditLog(deps.Log, "personal"), personalHandler.UpdatePersonal)

	resources.Register(content, authMiddleware.Required(), middleware.AdminAuditLog(deps.Log, "content"))
}
