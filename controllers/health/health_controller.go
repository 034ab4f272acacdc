package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/configs"
	"github.com/Henzp/tienda-plantas/media"
	"github.com/Henzp/tienda-plantas/stores"
)

type Controller struct {
	Store stores.Store
	Media media.Service
	Log   *zap.Logger
}

func NewController(store stores.Store, svc media.Service, log *zap.Logger) *Controller {
	return &Controller{Store: store, Media: svc, Log: log}
}

func (ct *Controller) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": configs.EnvAppEnv(),
	})
}

// DBStatus reports connectivity and collection counts.
func (ct *Controller) DBStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	estado := "Conectado"
	if err := ct.Store.Ping(ctx); err != nil {
		estado = "Desconectado"
	}

	counts, err := ct.Store.Counts(ctx)
	if err != nil {
		ct.Log.Warn("error contando documentos", zap.Error(err))
	}

	return c.JSON(fiber.Map{
		"estado":    estado,
		"database":  configs.EnvDBName(),
		"productos": counts.Productos,
		"usuarios":  counts.Usuarios,
		"banner":    counts.Banner,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MediaStatus pings the hosted image service.
func (ct *Controller) MediaStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	if err := ct.Media.Ping(ctx); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "Error",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":    "Conectado",
		"cloudName": configs.EnvCloudinaryCloudName(),
	})
}
