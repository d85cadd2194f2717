package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/response"
)

var (
	errMissingToken       = errors.New("Authentication credentials were not provided.")
	errInvalidHeader      = errors.New("Invalid authorization header.")
	errTokenRevoked       = errors.New("Token has been revoked.")
	errTokenInvalidated   = errors.New("Token has been invalidated.")
	errUserNotFound       = errors.New("User not found.")
	errUserInactive       = errors.New("User is inactive.")
	errWrongTokenType     = errors.New("Token has wrong type.")
	errTokenStatusUnknown = errors.New("Failed to check token status.")
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// authenticate resolves the bearer token to an active usuario.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.Usuario, *auth.Claims, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, nil, errMissingToken
	}

	// "Bearer <token>", simplejwt clients also send "JWT <token>"
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "JWT") {
		return nil, nil, errInvalidHeader
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		return nil, nil, err
	}
	if claims.TokenType != auth.TokenAccess {
		return nil, nil, errWrongTokenType
	}

	revoked, err := m.blacklistService.IsTokenRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return nil, nil, errTokenStatusUnknown
	}
	if revoked {
		return nil, nil, errTokenRevoked
	}

	var user model.Usuario
	if err := m.db.WithContext(c.UserContext()).Preload("Rol").First(&user, claims.UserID).Error; err != nil {
		return nil, nil, errUserNotFound
	}
	if !user.IsActive {
		return nil, nil, errUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, nil, errTokenInvalidated
	}

	return &user, claims, nil
}

func setLocals(c *fiber.Ctx, user *model.Usuario, claims *auth.Claims) {
	c.Locals("claims", claims)
	c.Locals("user", user)
}

// Required is middleware that requires a valid JWT token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, err := m.authenticate(c)
		if err != nil {
			return unauthorized(c, err)
		}
		setLocals(c, user, claims)
		return c.Next()
	}
}

// Optional is middleware that allows requests with or without a token.
// A bad token is still rejected, the same way the REST framework does.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, err := m.authenticate(c)
		switch {
		case errors.Is(err, errMissingToken):
			return c.Next()
		case err != nil:
			return unauthorized(c, err)
		}
		setLocals(c, user, claims)
		return c.Next()
	}
}

// RequireStaff rejects authenticated usuarios that are not staff.
// It must run after Required.
func (m *AuthMiddleware) RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetUser(c)
		if !ok {
			return response.Unauthorized(c, "")
		}
		if !user.IsAdmin() {
			return response.Forbidden(c, "")
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return response.Unauthorized(c, "Token has expired.")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
		return response.Unauthorized(c, "Given token not valid for any token type")
	case errors.Is(err, errTokenStatusUnknown):
		return response.InternalServerError(c, err.Error())
	}
	return response.Unauthorized(c, err.Error())
}

// GetUser extracts the authenticated usuario from context
func GetUser(c *fiber.Ctx) (*model.Usuario, bool) {
	u, ok := c.Locals("user").(*model.Usuario)
	return u, ok && u != nil
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok
}
