package routes

import (
	mediaController "github.com/Henzp/tienda-plantas/controllers/media"
	"github.com/Henzp/tienda-plantas/middlewares"

	"github.com/gofiber/fiber/v2"
)

func MediaRoute(app *fiber.App, ct *mediaController.Controller, mw *middlewares.Middleware) {
	app.Post("/api/upload-images", mw.LoadSession, mw.RequireAdmin, ct.UploadImages)
	app.Delete("/api/delete-image/:publicId", mw.LoadSession, mw.RequireAdmin, ct.DeleteImage)
	app.Get("/api/uploaded-images", mw.LoadSession, mw.RequireAdmin, ct.ListImages)
}
