package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rajput-vishal01/videovault/internal/handlers"
	"github.com/rajput-vishal01/videovault/internal/metrics"
	"github.com/rajput-vishal01/videovault/internal/middleware"
)

type Deps struct {
	Auth        *handlers.AuthHandler
	Videos      *handlers.VideoHandler
	AuthLimiter *middleware.RateLimiter // nil disables limiting
}

func Register(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	auth := api.Group("/auth")
	if d.AuthLimiter != nil {
		auth.Post("/register", d.AuthLimiter.ByIP(), d.Auth.Register)
		auth.Post("/login", d.AuthLimiter.ByIP(), d.Auth.Login)
	} else {
		auth.Post("/register", d.Auth.Register)
		auth.Post("/login", d.Auth.Login)
	}
	auth.Get("/imagekit-auth", d.Auth.ImageKitAuth)

	videos := api.Group("/videos")
	videos.Get("/", d.Videos.List)
	videos.Post("/", d.Videos.Create)
	videos.Get("/:id", d.Videos.Get)
}
