package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := NewAPIServer(":0", nil).GetEngine()
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	cases := []struct {
		target string
		status int
		body   string
	}{
		{"/boom", http.StatusInternalServerError, `{"detail": "A server error occurred."}`},
		{"/teapot", http.StatusTeapot, `{"detail": "short and stout"}`},
		{"/missing", http.StatusNotFound, `{"error": "Not found"}`},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.JSONEq(t, tc.body, string(body))
		})
	}
}
