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

// GetAllProducts lists active products, newest first. A store outage
// degrades to an empty list: the shop front keeps rendering.
func (ct *Controller) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	products, err := ct.Store.ListProducts(ctx, true)
	if err != nil {
		ct.Log.Warn("error obteniendo productos, degradando a lista vacía", zap.Error(err))
		return c.JSON([]models.Product{})
	}
	return c.JSON(products)
}

func (ct *Controller) GetProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	product, err := ct.Store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
		}
		ct.Log.Error("error obteniendo producto", zap.Error(err))
		return responses.Error(c, fiber.StatusInternalServerError, "Error obteniendo producto")
	}
	return c.JSON(product)
}

func (ct *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(product); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Nombre, descripción, precio y categoría son requeridos")
	}

	if err := ct.Store.CreateProduct(ctx, &product); err != nil {
		if errors.Is(err, stores.ErrUnavailable) {
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		}
		ct.Log.Error("error creando producto", zap.Error(err))
		return responses.Error(c, fiber.StatusInternalServerError, "Error creando producto")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (ct *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	var upd models.ProductUpdate
	if err := c.BodyParser(&upd); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if upd.Precio != nil && *upd.Precio < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "El precio no puede ser negativo")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return responses.Error(c, fiber.StatusBadRequest, "El stock no puede ser negativo")
	}

	product, err := ct.Store.UpdateProduct(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error actualizando producto", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error actualizando producto")
		}
	}
	return c.JSON(product)
}

// DeleteProduct flips the active flag; the row survives for sale history.
func (ct *Controller) DeleteProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
	}
	if err := ct.Store.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Producto no encontrado")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error eliminando producto", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error eliminando producto")
		}
	}
	return responses.Message(c, fiber.StatusOK, "Producto eliminado exitosamente")
}
