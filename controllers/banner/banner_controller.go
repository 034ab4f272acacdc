package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/stores"
)

var validate = validator.New()

type Controller struct {
	Store stores.Store
	Log   *zap.Logger
}

func NewController(store stores.Store, log *zap.Logger) *Controller {
	return &Controller{Store: store, Log: log}
}

// GetBanner lists the active carousel slides ordered ascending. Outages
// degrade to an empty list, same policy as the product listing.
func (ct *Controller) GetBanner(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	items, err := ct.Store.ListBanner(ctx, true)
	if err != nil {
		ct.Log.Warn("error obteniendo banner, degradando a lista vacía", zap.Error(err))
		return c.JSON([]models.BannerItem{})
	}
	return c.JSON(items)
}

func (ct *Controller) AddBannerItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var item models.BannerItem
	if err := c.BodyParser(&item); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(item); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Imagen, alt y orden son requeridos")
	}

	if err := ct.Store.CreateBannerItem(ctx, &item); err != nil {
		switch {
		case errors.Is(err, stores.ErrDuplicateOrder):
			return responses.Error(c, fiber.StatusBadRequest, "Ya existe una imagen con ese orden")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error creando banner", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error creando banner")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (ct *Controller) UpdateBannerItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusNotFound, "Imagen del banner no encontrada")
	}
	var upd models.BannerUpdate
	if err := c.BodyParser(&upd); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if upd.Orden != nil && (*upd.Orden < 1 || *upd.Orden > 10) {
		return responses.Error(c, fiber.StatusBadRequest, "El orden debe estar entre 1 y 10")
	}

	item, err := ct.Store.UpdateBannerItem(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrDuplicateOrder):
			return responses.Error(c, fiber.StatusBadRequest, "Ya existe una imagen con ese orden")
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Imagen del banner no encontrada")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error actualizando banner", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error actualizando banner")
		}
	}
	return c.JSON(item)
}

func (ct *Controller) DeleteBannerItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusNotFound, "Imagen del banner no encontrada")
	}
	if err := ct.Store.DeleteBannerItem(ctx, id); err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Imagen del banner no encontrada")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error eliminando banner", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error eliminando banner")
		}
	}
	return responses.Message(c, fiber.StatusOK, "Imagen del banner eliminada exitosamente")
}

type reorderRequest struct {
	Items []models.BannerOrder `json:"items"`
}

// ReorderBanner applies a bulk order change and returns the re-sorted
// active slides.
func (ct *Controller) ReorderBanner(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil || req.Items == nil {
		return responses.Error(c, fiber.StatusBadRequest, "Se requiere un array de items")
	}

	items, err := ct.Store.ReorderBanner(ctx, req.Items)
	if err != nil {
		if errors.Is(err, stores.ErrUnavailable) {
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		}
		ct.Log.Error("error reordenando banner", zap.Error(err))
		return responses.Error(c, fiber.StatusInternalServerError, "Error reordenando banner")
	}
	return c.JSON(items)
}
