package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voltclass/labtrack-api/internal/config"
	"github.com/voltclass/labtrack-api/internal/handler"
	"github.com/voltclass/labtrack-api/internal/middleware"
	"github.com/voltclass/labtrack-api/internal/models"
	"github.com/voltclass/labtrack-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	TaskHandler       *handler.TaskHandler
	ReportHandler     *handler.ReportHandler
	UserHandler       *handler.UserHandler
	ActivityHandler   *handler.ActivityHandler
	DashboardHandler  *handler.DashboardHandler
	SessionMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	sessionMiddleware := deps.SessionMiddleware
	if sessionMiddleware == nil {
		sessionMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.Use("/login", middleware.RateLimit("login", cfg.LoginRateMax, time.Minute))
		deps.AuthHandler.Register(auth)

		protected := api.Group("/auth", sessionMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.TaskHandler != nil {
		tasks := api.Group("/tasks", sessionMiddleware)
		deps.TaskHandler.Register(tasks)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", sessionMiddleware)
		deps.ReportHandler.Register(reports)
	}

	if deps.UserHandler != nil {
		admin := api.Group("/admin/users", sessionMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.UserHandler.Register(admin)
	}

	if deps.ActivityHandler != nil {
		activity := api.Group("/activity", sessionMiddleware)
		deps.ActivityHandler.Register(activity)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", sessionMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}
}
