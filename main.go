package main

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/configs"
	accountController "github.com/Henzp/tienda-plantas/controllers/accounts"
	authController "github.com/Henzp/tienda-plantas/controllers/auth"
	bannerController "github.com/Henzp/tienda-plantas/controllers/banner"
	checkoutController "github.com/Henzp/tienda-plantas/controllers/checkout"
	healthController "github.com/Henzp/tienda-plantas/controllers/health"
	mediaController "github.com/Henzp/tienda-plantas/controllers/media"
	productsController "github.com/Henzp/tienda-plantas/controllers/products"
	"github.com/Henzp/tienda-plantas/media"
	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/routes"
	"github.com/Henzp/tienda-plantas/sessions"
	"github.com/Henzp/tienda-plantas/stores"
)

func main() {
	logger := configs.NewLogger(configs.EnvAppEnv())
	defer logger.Sync()

	client, err := configs.ConnectDB(context.Background())
	if err != nil {
		logger.Fatal("no se pudo crear el cliente de MongoDB", zap.Error(err))
	}
	if err := configs.PingDB(context.Background(), client); err != nil {
		// Keep serving: reads degrade to empty results and writes report
		// the outage until the server comes back.
		logger.Warn("MongoDB no disponible al iniciar", zap.Error(err))
	} else {
		logger.Info("Conectado a MongoDB")
	}
	store := stores.NewMongoStore(client)
	if err := store.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("no se pudieron crear los índices", zap.Error(err))
	}

	mediaService, err := media.NewCloudinaryService(
		configs.EnvCloudinaryCloudName(),
		configs.EnvCloudinaryAPIKey(),
		configs.EnvCloudinaryAPISecret(),
	)
	if err != nil {
		logger.Fatal("no se pudo configurar Cloudinary", zap.Error(err))
	}

	sessionStore := sessions.NewStore(time.Duration(configs.EnvSessionTTLHours()) * time.Hour)
	mw := middlewares.New(sessionStore)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowCredentials: true}))
	app.Static("/", "./public")

	routes.UserRoute(app, authController.NewController(store, sessionStore, logger), mw)
	routes.AccountRoute(app, accountController.NewController(store, sessionStore, logger), mw)
	routes.ProductsRoute(app, productsController.NewController(store, logger), mw)
	routes.BannerRoute(app, bannerController.NewController(store, logger), mw)
	routes.CheckoutRoute(app, checkoutController.NewController(store, logger), mw)
	routes.MediaRoute(app, mediaController.NewController(mediaService, logger), mw)
	routes.HealthRoute(app, healthController.NewController(store, mediaService, logger))

	app.Use(fallbackHandler)

	seedBanner(store, logger)

	logger.Info("Servidor corriendo", zap.String("puerto", configs.EnvPort()))
	if err := app.Listen(":" + configs.EnvPort()); err != nil {
		logger.Fatal("error en el servidor", zap.Error(err))
	}
}

// fallbackHandler answers everything the routes and the ./public static
// files did not. Unknown API paths get a structured 404; other paths go
// home. The root itself terminates with a 404 when ./public has no index,
// so a missing static directory cannot redirect in a loop.
func fallbackHandler(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  "Endpoint no encontrado",
			"path":   c.Path(),
			"method": c.Method(),
		})
	}
	if c.Path() == "/" {
		return responses.Error(c, fiber.StatusNotFound, "Recurso no encontrado")
	}
	return c.Redirect("/")
}

// seedBanner fills an empty carousel with the stock example slides.
func seedBanner(store stores.Store, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := store.CountBanner(ctx)
	if err != nil {
		logger.Warn("no se pudo inicializar el banner", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	seeds := []models.BannerItem{
		{Orden: 1, Imagen: "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=300&h=200&fit=crop", Alt: "Planta de interior 1"},
		{Orden: 2, Imagen: "https://images.unsplash.com/photo-1493606278519-11aa9a6b8453?w=300&h=200&fit=crop", Alt: "Planta de interior 2"},
		{Orden: 3, Imagen: "https://images.unsplash.com/photo-1544568100-847a948585b9?w=300&h=200&fit=crop", Alt: "Planta de interior 3"},
		{Orden: 4, Imagen: "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=300&h=200&fit=crop", Alt: "Planta de interior 4"},
		{Orden: 5, Imagen: "https://images.unsplash.com/photo-1509423350716-97f2360af8e4?w=300&h=200&fit=crop", Alt: "Planta de interior 5"},
	}
	for i := range seeds {
		if err := store.CreateBannerItem(ctx, &seeds[i]); err != nil {
			logger.Warn("no se pudo crear un item del banner", zap.Int("orden", seeds[i].Orden), zap.Error(err))
			return
		}
	}
	logger.Info("Banner inicializado con imágenes de ejemplo", zap.Int("items", len(seeds)))
}
