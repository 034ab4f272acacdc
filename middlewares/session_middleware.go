package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Henzp/tienda-plantas/responses"
	"github.com/Henzp/tienda-plantas/sessions"
)

// IdentityKey is the Locals key the session middleware fills in.
const IdentityKey = "identity"

type Middleware struct {
	Sessions *sessions.Store
}

func New(store *sessions.Store) *Middleware {
	return &Middleware{Sessions: store}
}

// LoadSession resolves the session cookie into an identity when present.
// It never rejects; the guards below do.
func (m *Middleware) LoadSession(c *fiber.Ctx) error {
	if identity, ok := m.Sessions.Get(c.Cookies(sessions.CookieName)); ok {
		c.Locals(IdentityKey, identity)
	}
	return c.Next()
}

// RequireUser rejects requests without an authenticated session.
func (m *Middleware) RequireUser(c *fiber.Ctx) error {
	if _, ok := Identity(c); !ok {
		return responses.Error(c, fiber.StatusUnauthorized, "No autorizado")
	}
	return c.Next()
}

// RequireAdmin rejects everything but the static admin session.
func (m *Middleware) RequireAdmin(c *fiber.Ctx) error {
	identity, ok := Identity(c)
	if !ok || !identity.IsAdmin {
		return responses.Error(c, fiber.StatusUnauthorized, "Se requiere sesión de administrador")
	}
	return c.Next()
}

// Identity returns the authenticated identity loaded for this request.
func Identity(c *fiber.Ctx) (sessions.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(sessions.Identity)
	return identity, ok
}
