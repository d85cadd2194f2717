package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/serializers"
	authutil "github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

const invalidCredentials = "No active account found with the given credentials"

// LoginRequest represents a usuario login request
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login handles POST /login/token/ and /auth/login/
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ParseError(c, err)
	}
	if errs := validation.Default().Check(&req); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	ip := c.IP()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user model.Usuario
	err := h.db.WithContext(c.UserContext()).Preload("Rol").Where("email = ?", email).First(&user).Error
	if err == nil {
		err = authutil.CheckUsuario(&user, req.Password)
	}
	if err != nil {
		if h.bruteForceProtection != nil {
			if rerr := h.bruteForceProtection.RecordFailedAttempt(c.UserContext(), ip, email); rerr != nil {
				logger.L().Warn("failed to record login attempt", zap.String("ip", ip), zap.Error(rerr))
			}
		}
		return response.Unauthorized(c, invalidCredentials)
	}

	if h.bruteForceProtection != nil {
		_ = h.bruteForceProtection.RecordSuccessfulAttempt(c.UserContext(), ip)
	}

	pair, err := h.issuePair(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.db.WithContext(c.UserContext()).Model(&user).Update("last_login", now).Error; err != nil {
		logger.L().Warn("failed to update last_login", zap.Uint("usuario", user.ID), zap.Error(err))
	}

	pair.User = serializers.NewUsuario(&user)
	return response.Success(c, pair)
}
