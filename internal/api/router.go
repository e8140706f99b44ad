package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inventory-app/inventory-api/docs"
	"github.com/inventory-app/inventory-api/internal/api/handler"
	"github.com/inventory-app/inventory-api/internal/api/middleware"
	"github.com/inventory-app/inventory-api/internal/core/domain"
	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/infrastructure/http/handlers"
)

// bodyLimit leaves room for a maximum-size image plus the other form fields.
const bodyLimit = "6M"

const msgImageTooLarge = "Image size must be <= 5MB"

// Dependencies are the wired services the router exposes.
type Dependencies struct {
	AuthService    ports.AuthService
	ProductService ports.ProductService
	Tokens         ports.TokenService
	Users          middleware.UserFinder
	UploadDir      string
	CORSOrigins    []string
	Readiness      []handlers.Dependency
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	productHandler := handler.NewProductHandler(deps.ProductService)
	authMiddleware := middleware.Auth(deps.Tokens, deps.Users, deps.Logger)

	// --- Auth routes ---
	auth := e.Group("/api/auth", echomiddleware.BodyLimit(bodyLimit))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/validate-token", authHandler.ValidateToken, authMiddleware)

	// --- Product routes (owner-scoped) ---
	api := e.Group("/api", productBodyLimit(bodyLimit), authMiddleware)
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Create)
	api.GET("/product/:id", productHandler.Get)
	api.PUT("/product/:id", productHandler.Update)
	api.DELETE("/product/:id", productHandler.Delete)

	// --- Product images ---
	e.Static("/uploads/products", deps.UploadDir)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// productBodyLimit enforces the body limit on product routes. Only an image
// can make a product request that large, so the rejection names that field.
func productBodyLimit(limit string) echo.MiddlewareFunc {
	limitBody := echomiddleware.BodyLimit(limit)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := limitBody(next)
		return func(c echo.Context) error {
			err := h(c)
			var he *echo.HTTPError
			if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
				return domain.NewFieldError("image", msgImageTooLarge)
			}
			return err
		}
	}
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
