package viewset

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/utils/middleware"
	"github.com/facet-unt/departamentos-api/utils/response"
)

// Permission decides whether the request may run the matched action.
type Permission func(c *fiber.Ctx) bool

// SafeMethod reports GET, HEAD and OPTIONS requests.
func SafeMethod(c *fiber.Ctx) bool {
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

// AllowAny permits every request.
func AllowAny(*fiber.Ctx) bool { return true }

// IsAuthenticated requires a logged in usuario.
func IsAuthenticated(c *fiber.Ctx) bool {
	_, ok := middleware.GetUser(c)
	return ok
}

// IsStaff requires an administrator.
func IsStaff(c *fiber.Ctx) bool {
	u, ok := middleware.GetUser(c)
	return ok && u.IsAdmin()
}

// IsAuthenticatedOrReadOnly lets anyone read and logged in usuarios write.
func IsAuthenticatedOrReadOnly(c *fiber.Ctx) bool {
	return SafeMethod(c) || IsAuthenticated(c)
}

// ReadWrite applies read to safe methods and write to the rest.
func ReadWrite(read, write Permission) Permission {
	return func(c *fiber.Ctx) bool {
		if SafeMethod(c) {
			return read(c)
		}
		return write(c)
	}
}

// deny answers 401 to anonymous requests and 403 to authenticated ones.
func deny(c *fiber.Ctx) error {
	if IsAuthenticated(c) {
		return response.Forbidden(c, "")
	}
	return response.Unauthorized(c, "")
}
