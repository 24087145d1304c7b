package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bakehouse/internal/config"
	"bakehouse/internal/handler"
	"bakehouse/internal/metrics"
	"bakehouse/internal/middleware"
	"bakehouse/internal/model"
	"bakehouse/internal/ratelimit"
	"bakehouse/internal/web"
)

const bodyLimit = "12M"

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Recipe  *handler.RecipeHandler
	Gallery *handler.GalleryHandler
	Contact *handler.ContactHandler
	Upload  *handler.UploadHandler
	Web     *web.Handler
}

// Options carries the infrastructure the middleware chain depends on.
type Options struct {
	Authenticator  middleware.Authenticator
	Metrics        *metrics.Metrics
	RateLimitStore echomw.RateLimiterStore
	Logger         zerolog.Logger
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, h Handlers, opts Options) {
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(opts.Logger)
	e.Validator = NewValidator()

	e.Use(echomw.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Storage.Provider == "local" || cfg.Storage.Provider == "" {
		e.Static("/uploads", cfg.Storage.LocalPath)
	}

	var apiMiddleware []echo.MiddlewareFunc
	if opts.RateLimitStore != nil {
		apiMiddleware = append(apiMiddleware, ratelimit.Middleware(opts.RateLimitStore, nil))
	}
	api := e.Group("/api", apiMiddleware...)

	protect := middleware.Protect(opts.Authenticator)
	adminOnly := middleware.RestrictTo(model.RoleAdmin)

	api.GET("/health", handler.Health)

	// Auth
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me, protect)

	// Recipes
	api.GET("/recipes", h.Recipe.List)
	api.GET("/recipes/:id", h.Recipe.Get)
	api.POST("/recipes", h.Recipe.Create, protect)
	api.PUT("/recipes/:id", h.Recipe.Update, protect)
	api.DELETE("/recipes/:id", h.Recipe.Delete, protect)

	// Gallery
	api.GET("/gallery", h.Gallery.List)
	api.GET("/gallery/layout", h.Gallery.Layout)
	api.GET("/gallery/:id", h.Gallery.Get)
	api.POST("/gallery", h.Gallery.Create, protect, adminOnly)
	api.PUT("/gallery/:id", h.Gallery.Update, protect)
	api.DELETE("/gallery/:id", h.Gallery.Delete, protect)

	// Contact
	api.POST("/contact", h.Contact.Submit)
	api.GET("/contact", h.Contact.List, protect, adminOnly)
	api.GET("/contact/:id", h.Contact.Get, protect, adminOnly)
	api.PUT("/contact/:id", h.Contact.UpdateStatus, protect, adminOnly)
	api.DELETE("/contact/:id", h.Contact.Delete, protect, adminOnly)

	// Uploads
	api.POST("/uploads/recipe", h.Upload.UploadRecipeImage, protect)
	api.POST("/uploads/gallery", h.Upload.UploadGalleryImage, protect, adminOnly)
	api.DELETE("/uploads", h.Upload.DeleteImage, protect)

	if h.Web != nil {
		h.Web.Register(e)
	}
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			event := logger.Info()
			if v.Error != nil {
				event = logger.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator used for every request body.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
