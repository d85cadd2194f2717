package notificacion

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/serializers"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// NotificacionHandler serves the notificacion actions next to its CRUD routes
type NotificacionHandler struct {
	service *services.NotificationService
}

// NewNotificacionHandler creates a new notificacion handler
func NewNotificacionHandler(service *services.NotificationService) *NotificacionHandler {
	return &NotificacionHandler{service: service}
}

// PersonaParam reads the optional ?persona= filter.
func PersonaParam(c *fiber.Ctx) (*uint, validation.Errors) {
	raw := c.Query("persona")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, validation.Errors{"persona": {"Enter a whole number."}}
	}
	persona := uint(id)
	return &persona, nil
}

// MarcarLeida handles POST /notificacion/:id/marcar_leida/
func (h *NotificacionHandler) MarcarLeida(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.NotFound(c, "")
	}

	n, err := h.service.MarkAsRead(c.UserContext(), uint(id))
	if errors.Is(err, services.ErrNotificacionNotFound) {
		return response.NotFound(c, "")
	}
	if err != nil {
		return err
	}
	return response.Success(c, serializers.NewNotificacion(n))
}

// MarcarTodasLeidas handles POST /notificacion/marcar_todas_leidas/?persona=N
func (h *NotificacionHandler) MarcarTodasLeidas(c *fiber.Ctx) error {
	persona, errs := PersonaParam(c)
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}
	if persona == nil {
		return response.ValidationError(c, validation.Errors{"persona": {"This field is required."}})
	}

	updated, err := h.service.MarkAllAsRead(c.UserContext(), *persona)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"updated": updated})
}

// NoLeidasCount handles GET /notificacion/no_leidas_count/
func (h *NotificacionHandler) NoLeidasCount(c *fiber.Ctx) error {
	persona, errs := PersonaParam(c)
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	count, err := h.service.UnreadCount(c.UserContext(), persona)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.Map{"count": count})
}
