package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/api"
	"github.com/facet-unt/departamentos-api/config"
	"github.com/facet-unt/departamentos-api/database"
	"github.com/facet-unt/departamentos-api/router"
	"github.com/facet-unt/departamentos-api/services"
	"github.com/facet-unt/departamentos-api/services/cron"
	"github.com/facet-unt/departamentos-api/services/storage"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/cache"
	"github.com/facet-unt/departamentos-api/utils/logger"
	"github.com/facet-unt/departamentos-api/utils/middleware"
)

// Runtime is what both the server and facetctl build from the environment
type Runtime struct {
	Env   *config.EnviornmentVariable
	Log   *zap.Logger
	Store *database.GORMStore
}

// LoadEnv reads .env and the process environment and installs the logger.
func LoadEnv() (*config.EnviornmentVariable, *zap.Logger, error) {
	if err := config.LoadENV(); err != nil {
		return nil, nil, err
	}
	env, err := config.Get()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(env.GO_ENV)
	if err != nil {
		return nil, nil, err
	}
	logger.SetGlobal(log)
	return env, log, nil
}

// Open loads the environment and connects to the database.
func Open() (*Runtime, error) {
	env, log, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	store, err := database.StartGORM(env, log)
	if err != nil {
		log.Error("check that the database is running",
			zap.String("driver", env.DB_DRIVER),
			zap.String("host", env.DB_HOST),
			zap.String("hint", "make docker-up, or DB_DRIVER=sqlite for a local file"),
		)
		return nil, err
	}
	return &Runtime{Env: env, Log: log, Store: store}, nil
}

// Close releases the database and flushes the logger.
func (r *Runtime) Close() {
	if err := r.Store.Close(); err != nil {
		r.Log.Warn("failed to close database", zap.Error(err))
	}
	_ = r.Log.Sync()
}

// NewStorage picks the media backend named by STORAGE_BACKEND.
func NewStorage(env *config.EnviornmentVariable) (storage.Storage, error) {
	switch env.STORAGE_BACKEND {
	case "spaces":
		return storage.NewSpacesStorage(storage.SpacesConfig{
			AccessKey: env.DO_SPACES_ACCESS_KEY,
			SecretKey: env.DO_SPACES_SECRET_KEY,
			Bucket:    env.DO_SPACES_BUCKET,
			Region:    env.DO_SPACES_REGION,
			Endpoint:  env.DO_SPACES_ENDPOINT,
		})
	case "local", "":
		return storage.NewLocalStorage(env.MEDIA_ROOT, env.MEDIA_URL)
	}
	return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", env.STORAGE_BACKEND)
}

// NewCache connects to REDIS_URL, falling back to process memory.
func NewCache(env *config.EnviornmentVariable, log *zap.Logger) cache.Store {
	if env.REDIS_URL == "" {
		log.Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryCache()
	}
	redisCache, err := cache.NewRedisCache(env.REDIS_URL, "facet:")
	if err != nil {
		log.Warn("failed to connect to Redis, using in-memory cache", zap.Error(err))
		return cache.NewMemoryCache()
	}
	return redisCache
}

// NewJWTManager builds the token manager. A secret is mandatory.
func NewJWTManager(env *config.EnviornmentVariable) (*auth.JWTManager, error) {
	if env.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	return auth.NewJWTManager(auth.JWTConfig{
		Secret:        env.JWT_SECRET,
		Expiry:        env.JWT_ACCESS_TTL,
		RefreshExpiry: env.JWT_REFRESH_TTL,
		Issuer:        env.JWT_ISSUER,
	}), nil
}

// SecurityConfig maps the HTTP settings onto the middleware config.
func SecurityConfig(env *config.EnviornmentVariable) middleware.SecurityConfig {
	return middleware.SecurityConfig{
		AllowedOrigins:    env.ALLOWED_ORIGINS,
		RateLimitRequests: env.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   time.Minute,
		AccessLog:         env.GO_ENV != "test",
	}
}

func SetupAndRunServer() error {
	rt, err := Open()
	if err != nil {
		return err
	}
	defer rt.Close()
	env, log := rt.Env, rt.Log

	if err := rt.Store.Init(); err != nil {
		log.Error("failed to run migrations", zap.Error(err))
		return err
	}
	db := rt.Store.DB()

	media, err := NewStorage(env)
	if err != nil {
		return err
	}
	jwtManager, err := NewJWTManager(env)
	if err != nil {
		return err
	}
	notifications := services.NewNotificationService(db, log)

	// Cron jobs are optional, a failure to schedule only logs
	var cronManager *cron.CronManager
	if env.CRON_ENABLED {
		cronManager = cron.NewCronManager(db, log, notifications, cron.Config{
			NoticeWindow: time.Duration(env.DESIGNATION_NOTICE_DAYS) * 24 * time.Hour,
		})
		if err := cronManager.Start(); err != nil {
			log.Warn("failed to start cron jobs", zap.Error(err))
			cronManager = nil
		}
	}
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT), log)

	opts := router.Options{
		Deps: router.Deps{
			DB:            db,
			Storage:       media,
			Notifications: notifications,
			PageSize:      env.PAGE_SIZE,
		},
		Store:    rt.Store,
		JWT:      jwtManager,
		Cache:    NewCache(env, log),
		Log:      log,
		Metrics:  registry,
		Security: SecurityConfig(env),
		MediaURL: env.MEDIA_URL,
	}
	if local, ok := media.(*storage.LocalStorage); ok {
		opts.MediaRoot = local.Root()
	}
	if err := router.SetupRoutes(server.GetEngine(), opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
