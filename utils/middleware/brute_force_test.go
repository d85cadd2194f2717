package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facet-unt/departamentos-api/utils/cache"
)

func TestLockoutFor(t *testing.T) {
	assert.Zero(t, LockoutFor(4))
	assert.Equal(t, 2*time.Minute, LockoutFor(5))
	assert.Equal(t, time.Hour, LockoutFor(10))
	assert.Equal(t, 24*time.Hour, LockoutFor(30))
}

func TestBruteForceLocksAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	b := NewBruteForceProtection(cache.NewMemoryCache(), nil)
	const ip = "10.0.0.7"

	app := fiber.New(fiber.Config{ProxyHeader: "X-Real-IP"})
	app.Post("/login", b.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	login := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Real-IP", ip)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 4; i++ {
		require.NoError(t, b.RecordFailedAttempt(ctx, ip, "docente@facet.unt.edu.ar"))
	}
	assert.Equal(t, http.StatusOK, login().StatusCode)

	require.NoError(t, b.RecordFailedAttempt(ctx, ip, "docente@facet.unt.edu.ar"))
	resp := login()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))

	require.NoError(t, b.RecordSuccessfulAttempt(ctx, ip))
	assert.Equal(t, http.StatusOK, login().StatusCode)
}
