package routes

import (
	authController "github.com/Henzp/tienda-plantas/controllers/auth"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(app *fiber.App, ct *authController.Controller, mw *middlewares.Middleware) {
	app.Post("/api/register", ct.Register)
	app.Post("/api/login", ct.Login)
	app.Post("/api/logout", ct.Logout)
	app.Get("/api/session-status", mw.LoadSession, ct.SessionStatus)
}
