package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/sessions"
	"github.com/Henzp/tienda-plantas/stores"
)

type Controller struct {
	Store    stores.Store
	Sessions *sessions.Store
	Log      *zap.Logger
}

func NewController(store stores.Store, sess *sessions.Store, log *zap.Logger) *Controller {
	return &Controller{Store: store, Sessions: sess, Log: log}
}

// requireUserIdentity rejects admins too: the static admin has no stored
// profile to read or edit.
func requireUserIdentity(c *fiber.Ctx) (sessions.Identity, primitive.ObjectID, error) {
	identity, ok := middlewares.Identity(c)
	if !ok || identity.IsAdmin {
		return sessions.Identity{}, primitive.NilObjectID,
			responses.Error(c, fiber.StatusUnauthorized, "No hay sesión de usuario válida")
	}
	id, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		return sessions.Identity{}, primitive.NilObjectID,
			responses.Error(c, fiber.StatusUnauthorized, "No hay sesión de usuario válida")
	}
	return identity, id, nil
}

func (ct *Controller) GetUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	_, id, err := requireUserIdentity(c)
	if err != nil {
		return err
	}

	user, err := ct.Store.UserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Usuario no encontrado")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error obteniendo perfil", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error interno del servidor")
		}
	}
	return c.JSON(fiber.Map{"user": user})
}

func (ct *Controller) UpdateUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	identity, id, err := requireUserIdentity(c)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	upd.Nombre = strings.TrimSpace(upd.Nombre)
	if upd.Nombre == "" {
		return responses.Error(c, fiber.StatusBadRequest, "El nombre es requerido")
	}

	user, err := ct.Store.UpdateUserProfile(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusNotFound, "Usuario no encontrado")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error actualizando perfil", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error interno del servidor")
		}
	}

	// Keep the display name in the live session current.
	identity.Nombre = user.Nombre
	ct.Sessions.Update(c.Cookies(sessions.CookieName), identity)

	return c.JSON(fiber.Map{
		"message": "Perfil actualizado correctamente",
		"user":    user,
	})
}
