package routes

import (
	bannerController "github.com/Henzp/tienda-plantas/controllers/banner"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func BannerRoute(app *fiber.App, ct *bannerController.Controller, mw *middlewares.Middleware) {
	app.Get("/api/banner", ct.GetBanner)

	app.Post("/api/banner", mw.LoadSession, mw.RequireAdmin, ct.AddBannerItem)
	// Registered before :id so "reordenar" is not taken for an id.
	app.Put("/api/banner/reordenar", mw.LoadSession, mw.RequireAdmin, ct.ReorderBanner)
	app.Put("/api/banner/:id", mw.LoadSession, mw.RequireAdmin, ct.UpdateBannerItem)
	app.Delete("/api/banner/:id", mw.LoadSession, mw.RequireAdmin, ct.DeleteBannerItem)
}
