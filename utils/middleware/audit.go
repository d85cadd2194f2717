package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
)

// AuditLog stores one AdminAuditLog row per successful write by an
// authenticated usuario. resource names the registry prefix.
func AuditLog(db *gorm.DB, log *zap.Logger, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return err
		}

		user, ok := GetUser(c)
		status := c.Response().StatusCode()
		if !ok || err != nil || status >= fiber.StatusBadRequest {
			return err
		}

		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsed, perr := strconv.ParseUint(id, 10, 64); perr == nil {
				resourceID = uint(parsed)
			}
		}

		entry := model.AdminAuditLog{
			UsuarioID:  user.ID,
			Action:     auditAction(c.Method()),
			Resource:   resource,
			ResourceID: resourceID,
			Method:     c.Method(),
			Path:       truncate(c.Path(), 255),
			StatusCode: status,
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		}
		if dbErr := db.WithContext(c.UserContext()).Create(&entry).Error; dbErr != nil {
			log.Warn("audit log write failed", zap.Error(dbErr), zap.String("path", c.Path()))
		}
		return nil
	}
}

func auditAction(method string) string {
	switch method {
	case fiber.MethodPost:
		return "create"
	case fiber.MethodDelete:
		return "delete"
	}
	return "update"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
