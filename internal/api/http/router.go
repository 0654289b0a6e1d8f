package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Accounts  *handlers.AccountsHandler
	Cart      *handlers.CartHandler
	Addresses *handlers.AddressHandler
	Catalog   *handlers.CatalogHandler
	Session   *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Paths and verbs follow the original
// client contract: everything is a POST, and unmatched routes return an
// empty 404.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running")
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Accounts.Register)
	app.Post("/login", cfg.Accounts.Login)
	app.Post("/getAllProducts", cfg.Catalog.All)

	session := cfg.Session.Handle
	app.Post("/getDefaultCart", session, cfg.Cart.GetDefault)
	app.Post("/addToCart", session, cfg.Cart.Add)
	app.Post("/removeFromCart", session, cfg.Cart.Remove)
	app.Post("/deleteFromCart", session, cfg.Cart.Delete)

	app.Post("/getAddress", session, cfg.Addresses.Get)
	app.Post("/addAddress", session, cfg.Addresses.Add)
	app.Post("/editAddress", session, cfg.Addresses.Edit)
	app.Post("/delAddress", session, cfg.Addresses.Delete)

	app.Use(func(c *fiber.Ctx) error {
		// empty body, not fiber's default status text
		return c.Status(fiber.StatusNotFound).Send(nil)
	})
}
