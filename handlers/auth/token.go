package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/model"
	authutil "github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/middleware"
	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// RefreshRequest carries the refresh token for refresh and logout
type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

// RefreshToken handles POST /login/token/refresh/. The old refresh token is
// blacklisted and a new pair is returned.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ParseError(c, err)
	}
	if errs := validation.Default().Check(&req); len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	claims, err := h.jwtManager.ValidateRefreshToken(req.Refresh)
	if errors.Is(err, authutil.ErrExpiredToken) {
		return response.Unauthorized(c, "Token is expired")
	}
	if err != nil {
		return response.Unauthorized(c, "Token is invalid or expired")
	}

	isRevoked, err := h.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return response.Unauthorized(c, "Token is blacklisted")
	}

	var user model.Usuario
	if err := h.db.WithContext(c.UserContext()).Preload("Rol").First(&user, claims.UserID).Error; err != nil || !user.IsActive {
		return response.Unauthorized(c, invalidCredentials)
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token is invalid or expired")
	}

	pair, err := h.issuePair(&user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, user.ID, claims.ExpiresAt.Time, "token_refresh"); err != nil {
		// the old token expires on its own
		logger.L().Warn("failed to blacklist refresh token", zap.Uint("usuario", user.ID), zap.Error(err))
	}

	return response.Success(c, pair)
}

// Logout handles POST /login/logout/ and /auth/logout/ by blacklisting the
// access token and, when sent, the refresh token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.blacklistService.RevokeToken(c.UserContext(), claims.ID, user.ID, claims.ExpiresAt.Time, "logout"); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	var req RefreshRequest
	if len(c.Body()) > 0 && c.BodyParser(&req) == nil && req.Refresh != "" {
		if refresh, err := h.jwtManager.ValidateRefreshToken(req.Refresh); err == nil && refresh.UserID == user.ID {
			if err := h.blacklistService.RevokeToken(c.UserContext(), refresh.ID, user.ID, refresh.ExpiresAt.Time, "logout"); err != nil {
				logger.L().Warn("failed to blacklist refresh token", zap.Uint("usuario", user.ID), zap.Error(err))
			}
		}
	}

	return response.Success(c, fiber.Map{"detail": "Successfully logged out."})
}
