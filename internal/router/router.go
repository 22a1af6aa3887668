package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noobie-hq/noobie-api/internal/config"
	"github.com/noobie-hq/noobie-api/internal/handler"
	"github.com/noobie-hq/noobie-api/internal/middleware"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CommitHandler       *handler.CommitHandler
	ProfileHandler      *handler.ProfileHandler
	AuthHandler         *handler.AuthHandler
	InvitationHandler   *handler.InvitationHandler
	TrainingTaskHandler *handler.TrainingTaskHandler
	LeaderboardHandler  *handler.LeaderboardHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Commit gate consumed by the git hook; credentials ride in the body,
	// so the limiter keys on client IP rather than a JWT subject.
	if deps.CommitHandler != nil {
		commits := api.Group("/commits", middleware.RateLimit("commit-review", cfg.ReviewRateLimit, cfg.ReviewRateWindow))
		deps.CommitHandler.Register(commits)
	}

	if deps.ProfileHandler != nil {
		users := api.Group("/users")
		deps.ProfileHandler.Register(users)
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
	}

	if deps.InvitationHandler != nil {
		invitations := api.Group("/invitations", jwtMiddleware, middleware.RequireRole(middleware.AuthRoleCompany))
		deps.InvitationHandler.Register(invitations)
	}

	if deps.TrainingTaskHandler != nil {
		training := api.Group("/training", jwtMiddleware, middleware.RequireRole(middleware.AuthRoleCompany),
			middleware.RateLimit("training-tasks", cfg.ReviewRateLimit, cfg.ReviewRateWindow))
		deps.TrainingTaskHandler.Register(training)
	}

	if deps.LeaderboardHandler != nil {
		leaderboard := api.Group("/leaderboard")
		deps.LeaderboardHandler.Register(leaderboard)
	}
}
