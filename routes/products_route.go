package routes

import (
	productsController "github.com/Henzp/tienda-plantas/controllers/products"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(app *fiber.App, ct *productsController.Controller, mw *middlewares.Middleware) {
	app.Get("/api/productos", ct.GetAllProducts)
	app.Get("/api/productos/:id", ct.GetProduct)

	// Catalog writes are admin territory.
	app.Post("/api/productos", mw.LoadSession, mw.RequireAdmin, ct.AddProduct)
	app.Put("/api/productos/:id", mw.LoadSession, mw.RequireAdmin, ct.UpdateProduct)
	app.Delete("/api/productos/:id", mw.LoadSession, mw.RequireAdmin, ct.DeleteProduct)
}
