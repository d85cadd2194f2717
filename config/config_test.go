package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DB_DRIVER", "")

	env, err := Get()
	require.NoError(t, err)

	assert.Equal(t, 8000, env.PORT)
	assert.Equal(t, "postgres", env.DB_DRIVER)
	assert.Equal(t, "/media/", env.MEDIA_URL)
	assert.Equal(t, 10, env.PAGE_SIZE)
	assert.Equal(t, 15*time.Minute, env.JWT_ACCESS_TTL)
	assert.Equal(t, 30, env.DESIGNATION_NOTICE_DAYS)
	assert.False(t, env.IsProduction())
}

func TestGetOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("MEDIA_URL", "uploads")
	t.Setenv("ALLOWED_ORIGINS", " https://facet.unt.edu.ar , ,http://localhost:3000")
	t.Setenv("PAGE_SIZE", "25")

	env, err := Get()
	require.NoError(t, err)

	assert.True(t, env.IsProduction())
	assert.Equal(t, "sqlite", env.DB_DRIVER)
	assert.Equal(t, "/uploads/", env.MEDIA_URL)
	assert.Equal(t, []string{"https://facet.unt.edu.ar", "http://localhost:3000"}, env.ALLOWED_ORIGINS)
	assert.Equal(t, 25, env.PAGE_SIZE)
}

func TestGetRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Get()
	assert.Error(t, err)
}
