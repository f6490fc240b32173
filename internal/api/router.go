package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ecoquest/sustainability-api/internal/api/handler"
	"github.com/ecoquest/sustainability-api/internal/api/middleware"
	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

// Deps lists everything the router wires into handlers.
type Deps struct {
	Log zerolog.Logger

	Tokens ports.TokenVerifier
	Users  middleware.PrincipalLookup

	Auth       ports.AuthService
	UserAdmin  ports.UserService
	Tasks      ports.TaskService
	Categories ports.CatalogService[domain.Category]
	Missions   ports.CatalogService[domain.Mission]
	Rewards    ports.CatalogService[domain.Reward]
	Caches     ports.CacheAdmin

	HealthChecks map[string]handler.CheckFunc

	// AuthRateLimit throttles login and registration per client IP. The zero
	// value disables it.
	AuthRateLimit middleware.RateLimitConfig

	// Registry receives the HTTP metrics. Defaults to the global Prometheus
	// registry, which also holds the metrics package collectors.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// Client IPs come from the TCP peer; forwarding headers are client controlled.
	e.IPExtractor = echo.ExtractIPDirect()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(prometheusMiddleware(d.Registry))
	e.Use(middleware.Authenticate(d.Tokens, d.Users, d.Log))

	authed := middleware.RequireAuthenticated()
	admin := middleware.RequireAuthority(domain.AuthorityAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	var public []echo.MiddlewareFunc
	if d.AuthRateLimit.Enabled() {
		public = append(public, middleware.RateLimit(d.AuthRateLimit))
	}
	e.POST("/auth/register", authHandler.Register, public...)
	e.POST("/auth/login", authHandler.Login, public...)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Users ---
	userHandler := handler.NewUserHandler(d.UserAdmin)
	users := e.Group("/users", admin)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Tasks ---
	taskHandler := handler.NewTaskHandler(d.Tasks)
	tasks := e.Group("/tasks", authed)
	tasks.GET("", taskHandler.List)
	tasks.GET("/paginated", taskHandler.ListPaginated)
	tasks.GET("/:id", taskHandler.Get)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Catalog: reads for any principal, writes for admins ---
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	categories := e.Group("/categories", authed)
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Save, admin)
	categories.PUT("/:id", categoryHandler.Save, admin)
	categories.DELETE("/:id", categoryHandler.Delete, admin)

	missionHandler := handler.NewMissionHandler(d.Missions)
	missions := e.Group("/missions", authed)
	missions.GET("", missionHandler.List)
	missions.GET("/:id", missionHandler.Get)
	missions.POST("", missionHandler.Save, admin)
	missions.PUT("/:id", missionHandler.Save, admin)
	missions.DELETE("/:id", missionHandler.Delete, admin)

	rewardHandler := handler.NewRewardHandler(d.Rewards)
	rewards := e.Group("/rewards", authed)
	rewards.GET("", rewardHandler.List)
	rewards.GET("/:id", rewardHandler.Get)
	rewards.POST("", rewardHandler.Save, admin)
	rewards.PUT("/:id", rewardHandler.Save, admin)
	rewards.DELETE("/:id", rewardHandler.Delete, admin)

	// --- Cache administration ---
	cacheHandler := handler.NewCacheHandler(d.Caches)
	caches := e.Group("/cache", admin)
	caches.GET("", cacheHandler.Stats)
	caches.DELETE("/clear", cacheHandler.ClearAll)
	caches.DELETE("/:name", cacheHandler.Clear)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "ecoquest",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
