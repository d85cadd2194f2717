package auth

import (
	"gorm.io/gorm"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/serializers"
	authutil "github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil.
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
	}
}

// TokenPair is the body returned by login and refresh
type TokenPair struct {
	Access    string                     `json:"access"`
	Refresh   string                     `json:"refresh"`
	ExpiresIn int                        `json:"expires_in"` // seconds
	User      *serializers.UsuarioOutput `json:"user,omitempty"`
}

func subject(u *model.Usuario) authutil.Subject {
	return authutil.Subject{
		UserID:       u.ID,
		Email:        u.Email,
		Rol:          u.RoleName(),
		IsStaff:      u.IsStaff,
		TokenVersion: u.TokenVersion,
	}
}

// issuePair signs a new access and refresh token for u.
func (h *AuthHandler) issuePair(u *model.Usuario) (*TokenPair, error) {
	access, err := h.jwtManager.GenerateAccessToken(subject(u))
	if err != nil {
		return nil, err
	}
	refresh, err := h.jwtManager.GenerateRefreshToken(subject(u))
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:    access.Token,
		Refresh:   refresh.Token,
		ExpiresIn: int(h.jwtManager.AccessTTL().Seconds()),
	}, nil
}
