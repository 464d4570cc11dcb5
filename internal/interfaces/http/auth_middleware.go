package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/application/session"
)

// Locals keys para los datos de sesión en Fiber.
const (
	LocalUsername = "username"
	LocalName     = "name"
	LocalRole     = "role"
	LocalToken    = "token"
)

// AuthMiddleware valida el Bearer Token y que la sesión siga registrada
// (logout la revoca aunque el token no haya expirado). Deja username, name y
// role en c.Locals.
func AuthMiddleware(sessions *session.UseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		user, err := sessions.CurrentUser(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o sesión cerrada"})
		}
		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalName, user.Name)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// AdminOnly exige rol admin; debe ir después de AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol admin"})
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUsername devuelve el username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	v := c.Locals(LocalUsername)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetToken devuelve el token crudo del contexto.
func GetToken(c *fiber.Ctx) string {
	v := c.Locals(LocalToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
