package routes

import (
	accountController "github.com/Henzp/tienda-plantas/controllers/accounts"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AccountRoute(app *fiber.App, ct *accountController.Controller, mw *middlewares.Middleware) {
	app.Get("/api/user-profile", mw.LoadSession, ct.GetUserProfile)
	app.Put("/api/user-profile", mw.LoadSession, ct.UpdateUserProfile)
}
