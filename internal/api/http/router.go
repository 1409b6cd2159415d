package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-tracker/internal/api/http/handlers"
	"github.com/spec-kit/task-tracker/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Tasks   *handlers.TasksHandler
	Users   *handlers.UsersHandler
	Gateway *auth.Gateway
}

// RegisterRoutes wires HTTP routes. The authentication gateway runs on the
// /api group only: /auth endpoints handle raw tokens themselves, and logout
// in particular must see an already-revoked token rather than have the
// gateway reject it first.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	api := app.Group("/api", cfg.Gateway.Handle)

	tasks := api.Group("/tasks")
	tasks.Get("/", cfg.Tasks.ListTasks)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Post("/", auth.RequirePrincipal(), cfg.Tasks.CreateTask)
	tasks.Put("/:id", auth.RequirePrincipal(), cfg.Tasks.UpdateTask)
	tasks.Delete("/:id", auth.RequirePrincipal(), cfg.Tasks.DeleteTask)

	users := api.Group("/users")
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Post("/", auth.RequirePrincipal(), cfg.Users.CreateUser)
	users.Put("/:id", auth.RequirePrincipal(), cfg.Users.UpdateUser)
	users.Delete("/:id", auth.RequirePrincipal(), cfg.Users.DeleteUser)
}
