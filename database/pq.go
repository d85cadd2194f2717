package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/config"
)

// EnsureDatabase creates DB_NAME on the server when it does not exist yet.
// It connects to the maintenance "postgres" database through lib/pq.
func EnsureDatabase(env *config.EnviornmentVariable, l *zap.Logger) (bool, error) {
	if env.DB_DRIVER != "postgres" {
		return false, nil
	}
	if env.DB_NAME == "" {
		return false, errors.New("DB_NAME is not set")
	}

	db, err := sql.Open("postgres", PostgresDSN(env, "postgres"))
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", env.DB_NAME).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		l.Info("database already exists", zap.String("name", env.DB_NAME))
		return false, nil
	}

	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(env.DB_NAME)); err != nil {
		return false, err
	}
	l.Info("created database", zap.String("name", env.DB_NAME))
	return true, nil
}
