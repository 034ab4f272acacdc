package routes

import (
	healthController "github.com/Henzp/tienda-plantas/controllers/health"

	"github.com/gofiber/fiber/v2"
)

func HealthRoute(app *fiber.App, ct *healthController.Controller) {
	app.Get("/api/health", ct.Health)
	app.Get("/api/test/estado-db", ct.DBStatus)
	app.Get("/api/test/cloudinary", ct.MediaStatus)
}
