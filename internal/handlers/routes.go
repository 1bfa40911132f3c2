package handlers

import (
	"github.com/gofiber/fiber/v2"

	"walletcore/internal/middleware"
)

// SetupRoutes wires every handler into the fiber app.
func SetupRoutes(app *fiber.App, authH *AuthHandler, txH *TransactionHandler, userH *UserHandler, accountH *AccountHandler, productH *ProductHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)

	protected := api.Group("", middleware.Auth())

	protected.Get("/transactions", txH.List)
	protected.Get("/transactions/:id", txH.Get)
	protected.Post("/transactions", txH.Create)
	protected.Put("/transactions/:id", middleware.RequireAdmin(), txH.Update)
	protected.Delete("/transactions/:id", middleware.RequireAdmin(), txH.Delete)

	protected.Get("/accounts", accountH.List)
	protected.Post("/accounts", accountH.Create)

	protected.Get("/products", productH.List)

	protected.Get("/users", middleware.RequireAdmin(), userH.List)
	protected.Get("/users/:id", userH.Get)
	protected.Put("/users/product/:id", userH.ExchangePoints)
}
