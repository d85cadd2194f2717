package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facet-unt/departamentos-api/serializers"
	authutil "github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/middleware"
	"github.com/facet-unt/departamentos-api/utils/response"
	"github.com/facet-unt/departamentos-api/utils/validation"
)

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

// ChangePassword handles POST /login/change-password/. It sets
// has_changed_password, invalidates every issued token and returns a new pair.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ParseError(c, err)
	}
	errs := validation.Default().Check(&req)
	if errs == nil {
		errs = validation.Errors{}
	}
	if req.NewPassword != "" {
		if valid, msgs := validation.ValidatePassword(req.NewPassword); !valid {
			for _, msg := range msgs {
				errs.Add("new_password", msg)
			}
		}
	}
	if req.OldPassword != "" && authutil.VerifyPassword(user.PasswordHash, req.OldPassword) != nil {
		errs.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
	}
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user.PasswordHash = hash
	user.HasChangedPassword = true
	user.TokenVersion++
	err = h.db.WithContext(c.UserContext()).Model(user).Updates(map[string]interface{}{
		"password_hash":        user.PasswordHash,
		"has_changed_password": true,
		"token_version":        user.TokenVersion,
	}).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to change password")
	}

	pair, err := h.issuePair(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}
	pair.User = serializers.NewUsuario(user)
	return response.Success(c, pair)
}
