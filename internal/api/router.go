package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/evrikaedu/catalog-api/docs"
	"github.com/evrikaedu/catalog-api/internal/api/handler"
	"github.com/evrikaedu/catalog-api/internal/api/middleware"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log         zerolog.Logger
	AuthService ports.AuthService
	CardService ports.CardService
	// DB backs the readiness probe.
	DB handler.Pinger
	// Redis is optional; nil skips the redis readiness check.
	Redis       *redis.Client
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(deps.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(httpMetrics())

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	cardHandler := handler.NewCardHandler(deps.CardService)
	metadataHandler := handler.NewMetadataHandler()
	authMiddleware := middleware.Auth(deps.AuthService)
	adminOnly := middleware.RequireAdmin()

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)
	auth.POST("/logout", authHandler.Logout)

	// --- Card routes (reads are public, writes need an admin) ---
	cards := api.Group("/cards")
	cards.GET("", cardHandler.List)
	cards.GET("/:id", cardHandler.Get)
	cards.POST("", cardHandler.Create, authMiddleware, adminOnly)
	cards.PUT("/:id", cardHandler.Update, authMiddleware, adminOnly)
	cards.DELETE("/:id", cardHandler.Delete, authMiddleware, adminOnly)

	// --- Metadata ---
	meta := api.Group("/metadata")
	meta.GET("/age-groups", metadataHandler.AgeGroups)
	meta.GET("/skills", metadataHandler.Skills)
	meta.GET("/form-data", metadataHandler.FormData)
	meta.GET("/time-ranges", metadataHandler.TimeRanges)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

var (
	httpMetricsOnce sync.Once
	httpMetricsMW   echo.MiddlewareFunc
)

// httpMetrics registers the request collectors once per process.
func httpMetrics() echo.MiddlewareFunc {
	httpMetricsOnce.Do(func() {
		httpMetricsMW = echoprometheus.NewMiddleware("catalog")
	})
	return httpMetricsMW
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
