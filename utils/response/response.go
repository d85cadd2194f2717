package response

import (
	"github.com/gofiber/fiber/v2"
)

// Detail is the error body used by the REST endpoints.
type Detail struct {
	Detail string `json:"detail"`
}

// RouteNotFoundBody is returned for any path no route matches.
var RouteNotFoundBody = fiber.Map{"error": "Not found"}

// Page is the paginated list body.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// Success returns a 200 with the payload as the whole body
func Success(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent returns a 204 No Content response
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Paginated returns a 200 with a {count,next,previous,results} body
func Paginated(c *fiber.Ctx, page Page) error {
	if page.Results == nil {
		page.Results = []any{}
	}
	return c.Status(fiber.StatusOK).JSON(page)
}

// Error returns a {"detail": message} body with the given status
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Detail{Detail: message})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// ParseError reports a malformed request body
func ParseError(c *fiber.Ctx, err error) error {
	return BadRequest(c, "JSON parse error - "+err.Error())
}

// Unauthorized returns a 401 Unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden returns a 403 Forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound returns a 404 for a missing object on a matched route
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Not found."
	}
	return Error(c, fiber.StatusNotFound, message)
}

// RouteNotFound returns the catch-all 404 body
func RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(RouteNotFoundBody)
}

// MethodNotAllowed returns a 405 naming the method
func MethodNotAllowed(c *fiber.Ctx) error {
	return Error(c, fiber.StatusMethodNotAllowed, `Method "`+c.Method()+`" not allowed.`)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Request was throttled."
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// ValidationError returns a 400 with field level messages
func ValidationError(c *fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fields)
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "A server error occurred."
	}
	return Error(c, fiber.StatusInternalServerError, message)
}

// ServiceUnavailable returns a 503 Service Unavailable response
func ServiceUnavailable(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Service temporarily unavailable."
	}
	return Error(c, fiber.StatusServiceUnavailable, message)
}
