package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kits-invoicing/internal/application/dto"
)

// SessionCookieName cookie con el JWT de sesión del navegador.
const SessionCookieName = "kits_session"

// LocalUsername key en c.Locals con el usuario autenticado.
const LocalUsername = "username"

// tokenAuthenticator lo implementa *auth.AuthUseCase.
type tokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// AuthMiddleware valida el Bearer Token JWT (o, en su defecto, la cookie de sesión)
// y deja el usuario en c.Locals. Responde 401 JSON si falta o es inválido.
func AuthMiddleware(authn tokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookieName)
		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		username, err := authn.Authenticate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// SessionMiddleware protege las páginas HTML: sin cookie de sesión válida redirige a /login.
func SessionMiddleware(authn tokenAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username, err := authn.Authenticate(c.Cookies(SessionCookieName))
		if err != nil {
			c.ClearCookie(SessionCookieName)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// GetUsername devuelve el usuario del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
