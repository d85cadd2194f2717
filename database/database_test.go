package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/facet-unt/departamentos-api/config"
	"github.com/facet-unt/departamentos-api/model"
	"github.com/facet-unt/departamentos-api/utils/auth"
)

func openSQLite(t *testing.T) *GORMStore {
	t.Helper()
	env := &config.EnviornmentVariable{
		GO_ENV:      "test",
		DB_DRIVER:   "sqlite",
		SQLITE_PATH: filepath.Join(t.TempDir(), "facet.db"),
	}
	store, err := StartGORM(env, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Init())
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := openSQLite(t)
	require.NoError(t, store.HealthCheck())

	for _, m := range model.All() {
		assert.True(t, store.DB().Migrator().HasTable(m), "%T", m)
	}
}

func TestSeedAllIsIdempotent(t *testing.T) {
	auth.Cost = bcrypt.MinCost
	store := openSQLite(t)
	seeder := NewSeeder(store.DB(), zap.NewNop(), AdminCredentials{Email: "admin@facet.unt.edu.ar", Password: "clave-segura"})

	require.NoError(t, seeder.SeedAll())
	require.NoError(t, seeder.SeedAll())

	count := func(m interface{}) int64 {
		var n int64
		require.NoError(t, store.DB().Model(m).Count(&n).Error)
		return n
	}
	assert.EqualValues(t, 3, count(&model.Rol{}))
	assert.EqualValues(t, 1, count(&model.Usuario{}))
	assert.EqualValues(t, 6, count(&model.TipoTitulo{}))
	assert.EqualValues(t, 4, count(&model.Departamento{}))

	var admin model.Usuario
	require.NoError(t, store.DB().Preload("Rol").Where("email = ?", "admin@facet.unt.edu.ar").First(&admin).Error)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsActive)
	assert.Equal(t, model.RolAdministrador, admin.RoleName())
	assert.NoError(t, auth.VerifyPassword(admin.PasswordHash, "clave-segura"))
}

func TestSeedAdminUserSkipsWithoutCredentials(t *testing.T) {
	store := openSQLite(t)
	seeder := NewSeeder(store.DB(), zap.NewNop(), AdminCredentials{})

	require.NoError(t, seeder.SeedAll())

	var n int64
	require.NoError(t, store.DB().Model(&model.Usuario{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestPostgresDSN(t *testing.T) {
	env := &config.EnviornmentVariable{
		DB_HOST:      "db",
		DB_USER_NAME: "facet",
		DB_PASSWORD:  "secret",
		DB_PORT:      "5432",
		DB_SSL_MODE:  "disable",
	}
	assert.Equal(t,
		"host=db user=facet password=secret dbname=departamentos port=5432 sslmode=disable TimeZone=UTC",
		PostgresDSN(env, "departamentos"))
}
