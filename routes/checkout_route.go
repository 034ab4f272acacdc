package routes

import (
	checkoutController "github.com/Henzp/tienda-plantas/controllers/checkout"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func CheckoutRoute(app *fiber.App, ct *checkoutController.Controller, mw *middlewares.Middleware) {
	app.Post("/api/procesar-compra", mw.LoadSession, ct.ProcessPurchase)
}
