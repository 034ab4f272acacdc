package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/stores"
)

type Controller struct {
	Store stores.Store
	Log   *zap.Logger
}

func NewController(store stores.Store, log *zap.Logger) *Controller {
	return &Controller{Store: store, Log: log}
}

type purchaseRequest struct {
	Items []models.PurchaseItem `json:"items"`
	// Total comes from the browser cart and is advisory only; the sale is
	// priced from the stored products.
	Total float64 `json:"total"`
}

// ProcessPurchase runs the checkout transaction: stock validation and
// decrement plus the sale record, all-or-nothing.
func (ct *Controller) ProcessPurchase(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	identity, ok := middlewares.Identity(c)
	if !ok {
		return responses.Error(c, fiber.StatusUnauthorized, "Debe iniciar sesión para comprar")
	}

	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if len(req.Items) == 0 {
		return responses.Error(c, fiber.StatusBadRequest, "El carrito está vacío")
	}
	for _, it := range req.Items {
		if it.Cantidad < 1 {
			return responses.Error(c, fiber.StatusBadRequest, "Cantidad inválida")
		}
	}

	userID := identity.UserID
	if identity.IsAdmin {
		userID = "admin"
	}

	sale, err := ct.Store.ProcessPurchase(ctx, userID, req.Items)
	if err != nil {
		var stockErr *stores.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			return responses.Error(c, fiber.StatusBadRequest, stockErr.Error())
		case errors.Is(err, stores.ErrProductNotFound):
			return responses.Error(c, fiber.StatusBadRequest, "Producto no encontrado")
		case errors.Is(err, stores.ErrEmptyCart):
			return responses.Error(c, fiber.StatusBadRequest, "El carrito está vacío")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error procesando compra", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error procesando la compra")
		}
	}

	ct.Log.Info("compra procesada",
		zap.String("boleta", sale.Boleta),
		zap.String("usuario", sale.UsuarioId),
		zap.Float64("total", sale.Total))

	return c.JSON(fiber.Map{
		"message":      "Compra procesada exitosamente",
		"saleId":       sale.Id.Hex(),
		"receiptToken": sale.Boleta,
		"total":        sale.Total,
	})
}
