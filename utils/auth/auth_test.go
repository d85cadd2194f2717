package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/testutil"
)

func newManager() *JWTManager {
	return NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "facet-test", Expiry: time.Minute, RefreshExpiry: time.Hour})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()
	issued, err := m.GenerateAccessToken(Subject{UserID: 7, Email: "ana@facet.unt.edu.ar", Rol: "Docente", TokenVersion: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)

	claims, err := m.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "Docente", claims.Rol)
	assert.Equal(t, TokenAccess, claims.TokenType)
	assert.Equal(t, 2, claims.TokenVersion)
	assert.Equal(t, issued.JTI, claims.ID)

	_, err = m.ValidateRefreshToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	issued, err := m.GenerateAccessToken(Subject{UserID: 1})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	issued, err := newManager().GenerateRefreshToken(Subject{UserID: 1})
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "other", Issuer: "facet-test"})
	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = 12 })

	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := HashPassword("departamento")
	require.NoError(t, err)
	assert.NoError(t, VerifyPassword(hash, "departamento"))
	assert.ErrorIs(t, VerifyPassword(hash, "otra-clave"), ErrPasswordMismatch)

	u := &model.Usuario{PasswordHash: hash, IsActive: true}
	assert.NoError(t, CheckUsuario(u, "departamento"))
	u.IsActive = false
	assert.ErrorIs(t, CheckUsuario(u, "departamento"), ErrPasswordMismatch)
	assert.ErrorIs(t, CheckUsuario(&model.Usuario{IsActive: true}, "departamento"), ErrPasswordUnusable)
}

func TestBlacklist(t *testing.T) {
	db := testutil.NewDB(t)

	ctx := context.Background()
	svc := NewBlacklistService(db)

	u := testutil.NewFixtures(t, db).Usuario("x@facet.unt.edu.ar", "hash", false)

	require.NoError(t, svc.RevokeToken(ctx, "live", u.ID, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "old", u.ID, time.Now().Add(-time.Hour), "logout"))

	revoked, err := svc.IsTokenRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsTokenRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)

	n, err := svc.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, svc.RevokeAllUserTokens(ctx, u.ID))
	var reloaded model.Usuario
	require.NoError(t, db.First(&reloaded, u.ID).Error)
	assert.Equal(t, 1, reloaded.TokenVersion)
}
