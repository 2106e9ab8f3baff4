package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/campus-auth/internal/api/http/handlers"
	"github.com/campuskit/campus-auth/internal/auth"
	"github.com/campuskit/campus-auth/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Each protected route declares the role
// set allowed to pass its gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	userGroup := app.Group("/user")
	userGroup.Post("/register", cfg.Users.Register)
	userGroup.Post("/login", cfg.Users.Login)

	userGroup.Get("/users",
		cfg.AuthMiddleware.Handle,
		auth.RequireRoles(domain.RoleAdmin, domain.RoleSuperadmin),
		cfg.Users.List)
}
