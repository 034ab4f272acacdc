package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Henzp/tienda-plantas/configs"
	"github.com/Henzp/tienda-plantas/middlewares"
	"github.com/Henzp/tienda-plantas/models"
	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/sessions"
	"github.com/Henzp/tienda-plantas/stores"
)

const bcryptCost = 12

var validate = validator.New()

type Controller struct {
	Store    stores.Store
	Sessions *sessions.Store
	Log      *zap.Logger
}

func NewController(store stores.Store, sess *sessions.Store, log *zap.Logger) *Controller {
	return &Controller{Store: store, Sessions: sess, Log: log}
}

type registerRequest struct {
	Nombre    string `json:"nombre" validate:"required"`
	Apellido  string `json:"apellido" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Comuna    string `json:"comuna"`
	Region    string `json:"region"`
}

// Register creates the account and starts a session right away.
func (ct *Controller) Register(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if err := validate.Struct(req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Todos los campos obligatorios deben ser completados")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return responses.Error(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}

	user := models.User{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Email:     stores.NormalizeEmail(req.Email),
		Password:  string(hashed),
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Comuna:    req.Comuna,
		Region:    req.Region,
	}
	if err := ct.Store.CreateUser(ctx, &user); err != nil {
		switch {
		case errors.Is(err, stores.ErrDuplicateEmail):
			return responses.Error(c, fiber.StatusBadRequest, "El email ya está registrado")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error registrando usuario", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error interno del servidor")
		}
	}

	token := ct.Sessions.Create(sessions.Identity{
		UserID: user.Id.Hex(),
		Nombre: user.Nombre,
		Email:  user.Email,
	})
	ct.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Usuario registrado exitosamente",
		"usuario": fiber.Map{
			"id":       user.Id.Hex(),
			"nombre":   user.Nombre,
			"apellido": user.Apellido,
			"email":    user.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the static admin pair first; only non-admin credentials
// touch the user store.
func (ct *Controller) Login(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Error(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if req.Email == "" || req.Password == "" {
		return responses.Error(c, fiber.StatusBadRequest, "Email y password son requeridos")
	}

	adminUser := configs.EnvAdminUsername()
	if adminUser != "" && req.Email == adminUser && req.Password == configs.EnvAdminPassword() {
		token := ct.Sessions.Create(sessions.Identity{
			Nombre:  "Administrador",
			Email:   req.Email,
			IsAdmin: true,
		})
		ct.setSessionCookie(c, token)
		return c.JSON(fiber.Map{
			"message":    "Login exitoso",
			"usuario":    fiber.Map{"id": "admin", "nombre": "Administrador", "email": req.Email, "esAdmin": true},
			"userType":   "admin",
			"redirectTo": "/admin",
		})
	}

	user, err := ct.Store.UserByEmail(ctx, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrNotFound):
			return responses.Error(c, fiber.StatusUnauthorized, "Credenciales inválidas")
		case errors.Is(err, stores.ErrUnavailable):
			return responses.Error(c, fiber.StatusServiceUnavailable, "Base de datos no disponible")
		default:
			ct.Log.Error("error en login", zap.Error(err))
			return responses.Error(c, fiber.StatusInternalServerError, "Error interno del servidor")
		}
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return responses.Error(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	token := ct.Sessions.Create(sessions.Identity{
		UserID: user.Id.Hex(),
		Nombre: user.Nombre,
		Email:  user.Email,
	})
	ct.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"message":    "Login exitoso",
		"usuario":    fiber.Map{"id": user.Id.Hex(), "nombre": user.Nombre, "email": user.Email, "esAdmin": false},
		"userType":   "user",
		"redirectTo": "/perfil",
	})
}

// Logout destroys the session. Idempotent.
func (ct *Controller) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(sessions.CookieName); token != "" {
		ct.Sessions.Destroy(token)
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return responses.Message(c, fiber.StatusOK, "Sesión cerrada exitosamente")
}

// SessionStatus introspects the cookie. User sessions re-read the profile
// so edits show up immediately; a session whose user vanished resolves to
// unauthenticated.
func (ct *Controller) SessionStatus(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	identity, ok := middlewares.Identity(c)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	if identity.IsAdmin {
		return c.JSON(fiber.Map{
			"authenticated": true,
			"userType":      "admin",
			"user":          fiber.Map{"id": "admin", "nombre": identity.Nombre, "email": identity.Email},
		})
	}

	id, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}
	user, err := ct.Store.UserByID(ctx, id)
	if err != nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"userType":      "user",
		"user": fiber.Map{
			"id":        user.Id.Hex(),
			"nombre":    user.Nombre,
			"apellido":  user.Apellido,
			"email":     user.Email,
			"telefono":  user.Telefono,
			"direccion": user.Direccion,
			"comuna":    user.Comuna,
			"region":    user.Region,
		},
	})
}

func (ct *Controller) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessions.CookieName,
		Value:    token,
		MaxAge:   int(ct.Sessions.TTL().Seconds()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
