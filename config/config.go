package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		// A missing .env is fine in containers, everything else is not.
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	GO_ENV string
	PORT   int
	// Database
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	SQLITE_PATH  string
	// JWT Configuration
	JWT_SECRET      string
	JWT_ISSUER      string
	JWT_ACCESS_TTL  time.Duration
	JWT_REFRESH_TTL time.Duration
	// Redis Configuration
	REDIS_URL string
	// HTTP
	ALLOWED_ORIGINS     []string
	RATE_LIMIT_REQUESTS int
	PAGE_SIZE           int
	// Media storage
	MEDIA_URL            string
	MEDIA_ROOT           string
	STORAGE_BACKEND      string
	DO_SPACES_ACCESS_KEY string
	DO_SPACES_SECRET_KEY string
	DO_SPACES_BUCKET     string
	DO_SPACES_REGION     string
	DO_SPACES_ENDPOINT   string
	// Scheduled jobs
	CRON_ENABLED            bool
	DESIGNATION_NOTICE_DAYS int
	// Seed
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

// IsProduction reports whether GO_ENV selects the production profile.
func (e *EnviornmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", 8000)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "facet.db")
	v.SetDefault("JWT_ISSUER", "facet-departamentos")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("STORAGE_BACKEND", "local")
	v.SetDefault("DO_SPACES_REGION", "nyc3")
	v.SetDefault("CRON_ENABLED", true)
	v.SetDefault("DESIGNATION_NOTICE_DAYS", 30)

	return v
}

func Get() (*EnviornmentVariable, error) {
	v := newViper()

	mediaURL := v.GetString("MEDIA_URL")
	if !strings.HasPrefix(mediaURL, "/") {
		mediaURL = "/" + mediaURL
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV: v.GetString("GO_ENV"),
		PORT:   v.GetInt("PORT"),
		// Database
		DB_DRIVER:    strings.ToLower(v.GetString("DB_DRIVER")),
		DB_USER_NAME: v.GetString("DB_USER_NAME"),
		DB_PASSWORD:  v.GetString("DB_PASSWORD"),
		DB_NAME:      v.GetString("DB_NAME"),
		DB_HOST:      v.GetString("DB_HOST"),
		DB_PORT:      v.GetString("DB_PORT"),
		DB_SSL_MODE:  v.GetString("DB_SSL_MODE"),
		SQLITE_PATH:  v.GetString("SQLITE_PATH"),
		// JWT
		JWT_SECRET:      v.GetString("JWT_SECRET"),
		JWT_ISSUER:      v.GetString("JWT_ISSUER"),
		JWT_ACCESS_TTL:  v.GetDuration("JWT_ACCESS_TTL"),
		JWT_REFRESH_TTL: v.GetDuration("JWT_REFRESH_TTL"),
		// Redis
		REDIS_URL: v.GetString("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     splitList(v.GetString("ALLOWED_ORIGINS")),
		RATE_LIMIT_REQUESTS: v.GetInt("RATE_LIMIT_REQUESTS"),
		PAGE_SIZE:           v.GetInt("PAGE_SIZE"),
		// Media
		MEDIA_URL:            mediaURL,
		MEDIA_ROOT:           v.GetString("MEDIA_ROOT"),
		STORAGE_BACKEND:      strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DO_SPACES_ACCESS_KEY: v.GetString("DO_SPACES_ACCESS_KEY"),
		DO_SPACES_SECRET_KEY: v.GetString("DO_SPACES_SECRET_KEY"),
		DO_SPACES_BUCKET:     v.GetString("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:     v.GetString("DO_SPACES_REGION"),
		DO_SPACES_ENDPOINT:   v.GetString("DO_SPACES_ENDPOINT"),
		// Cron
		CRON_ENABLED:            v.GetBool("CRON_ENABLED"),
		DESIGNATION_NOTICE_DAYS: v.GetInt("DESIGNATION_NOTICE_DAYS"),
		// Seed
		ADMIN_EMAIL:    v.GetString("ADMIN_EMAIL"),
		ADMIN_PASSWORD: v.GetString("ADMIN_PASSWORD"),
	}

	if envVariables.DB_DRIVER != "postgres" && envVariables.DB_DRIVER != "sqlite" {
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if envVariables.PAGE_SIZE <= 0 {
		envVariables.PAGE_SIZE = 10
	}

	return envVariables, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
