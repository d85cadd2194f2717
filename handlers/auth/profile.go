package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/serializers"
	"github.com/facet-unt/departamentos-api/utils/middleware"
	"github.com/facet-unt/departamentos-api/utils/response"
)

// Me handles GET /login/me/
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	return response.Success(c, serializers.NewUsuario(user))
}
