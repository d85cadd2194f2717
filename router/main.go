package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/facet-unt/departamentos-api/database"
	"github.com/facet-unt/departamentos-api/handlers"
	admin_handlers "github.com/facet-unt/departamentos-api/handlers/admin"
	auth_handlers "github.com/facet-unt/departamentos-api/handlers/auth"
	docs_handlers "github.com/facet-unt/departamentos-api/handlers/docs"
	"github.com/facet-unt/departamentos-api/utils/auth"
	"github.com/facet-unt/departamentos-api/utils/cache"
	"github.com/facet-unt/departamentos-api/utils/middleware"
	"github.com/facet-unt/departamentos-api/utils/response"
)

// Options wires the dispatcher
type Options struct {
	Deps
	Store    database.Storage
	JWT      *auth.JWTManager
	Cache    cache.Store // nil disables the login lockout
	Log      *zap.Logger
	Metrics  *prometheus.Registry // nil disables /metrics
	Security middleware.SecurityConfig

	MediaURL  string
	MediaRoot string // media is served from disk only when set
}

// Combined merges the per-domain registries: usuarios, roles, then
// departamentos. The first registration of a prefix wins.
func Combined(d Deps) *DefaultRouter {
	r := NewDefaultRouter()
	r.Extend(UsuariosRouter(d), RolesRouter(d), DepartamentosRouter(d))
	return r
}

// SetupRoutes mounts every route of the API and the catch-all 404
func SetupRoutes(app *fiber.App, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	db := opts.DB

	middleware.SetupSecurity(app, opts.Security)

	if opts.Metrics != nil {
		app.Use(middleware.NewMetrics(opts.Metrics).Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	app.Get("/ping", handlers.HandleCheckHealth(opts.Store))

	authMiddleware := middleware.NewAuthMiddleware(opts.JWT, db)

	var bruteForceProtection *middleware.BruteForceProtection
	if opts.Cache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(opts.Cache, log)
	} else {
		log.Warn("no cache configured, login brute force protection is disabled")
	}
	authHandler := auth_handlers.NewAuthHandler(db, opts.JWT, bruteForceProtection)

	login := []fiber.Handler{authHandler.Login}
	if bruteForceProtection != nil {
		login = append([]fiber.Handler{bruteForceProtection.CheckAndRecordAttempt()}, login...)
	}

	optional := func(Route) fiber.Handler { return authMiddleware.Optional() }
	audit := func(r Route) fiber.Handler {
		return middleware.AuditLog(db, log, r.Prefix)
	}

	// Admin console
	site := admin_handlers.NewDefaultSite(db)
	site.Mount(app.Group("/admin"), authMiddleware.Required(), authMiddleware.RequireStaff())

	// Browsable API login and logout views
	app.Post("/auth/login", login...)
	app.Post("/auth/logout", authMiddleware.Required(), authHandler.Logout)

	// Usuarios routes and the token endpoints
	loginGroup := app.Group("/login")
	loginGroup.Post("/token", login...)
	loginGroup.Post("/token/refresh", authHandler.RefreshToken)
	loginGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	loginGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	loginGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	UsuariosRouter(opts.Deps).Mount(loginGroup, optional, audit)

	// Schema and documentation UIs
	combined := Combined(opts.Deps)
	docs, err := docs_handlers.NewDocsHandler(docs_handlers.Build(docs_handlers.DefaultInfo, DocResources("/facet", combined), AuthEndpoints()))
	if err != nil {
		return err
	}
	app.Get("/api/swagger.json", docs.JSON)
	app.Get("/api/swagger.yaml", docs.YAML)
	app.Get("/api/swagger", docs.SwaggerUI)
	app.Get("/api/redoc", docs.Redoc)
	app.Get("/api", combined.RootAt("/facet"))

	// Departamentos, usuarios and roles
	combined.Mount(app.Group("/facet"), optional, audit)

	if opts.MediaRoot != "" {
		app.Static(opts.MediaURL, opts.MediaRoot, fiber.Static{Browse: false})
	}

	app.Use(response.RouteNotFound)
	return nil
}
